package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
)

// CreateSubscription records a recurring charge.
func (s *SQLiteStorage) CreateSubscription(ctx context.Context, name string, amount float64, nextDate string) (*model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (name, amount, next_date) VALUES (?, ?, ?)`,
		name, amount, nextDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription ID: %w", err)
	}

	slog.Info("created subscription", "id", id, "name", name, "next_date", nextDate)
	return &model.Subscription{
		ID:       id,
		Name:     name,
		Amount:   amount,
		NextDate: nextDate,
	}, nil
}

// GetSubscriptions returns every subscription ordered by next renewal.
func (s *SQLiteStorage) GetSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.querySubscriptions(ctx,
		`SELECT id, name, amount, next_date FROM subscriptions ORDER BY next_date, id`)
}

// GetSubscriptionsDueBy returns subscriptions renewing on or before date.
// Dates compare as text, which orders correctly for YYYY-MM-DD values.
func (s *SQLiteStorage) GetSubscriptionsDueBy(ctx context.Context, date string) ([]model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.querySubscriptions(ctx,
		`SELECT id, name, amount, next_date FROM subscriptions
		WHERE next_date <= ?
		ORDER BY next_date, id`, date)
}

func (s *SQLiteStorage) querySubscriptions(ctx context.Context, query string, args ...any) ([]model.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []model.Subscription{}
	for rows.Next() {
		var (
			sub      model.Subscription
			name     sql.NullString
			amount   sql.NullFloat64
			nextDate sql.NullString
		)
		if err := rows.Scan(&sub.ID, &name, &amount, &nextDate); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		sub.Name = name.String
		sub.Amount = amount.Float64
		sub.NextDate = nextDate.String
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}
