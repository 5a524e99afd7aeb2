package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
)

// CreateBudget records a spending limit for a month. Several budgets for
// the same month may coexist.
func (s *SQLiteStorage) CreateBudget(ctx context.Context, month string, limit float64) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `INSERT INTO budgets (month, "limit") VALUES (?, ?)`, month, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget ID: %w", err)
	}

	slog.Info("created budget", "id", id, "month", month, "limit", limit)
	return &model.Budget{ID: id, Month: month, Limit: limit}, nil
}

// GetBudgets returns every budget ordered by month, then id.
func (s *SQLiteStorage) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, month, "limit" FROM budgets ORDER BY month, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []model.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// GetBudgetForMonth returns the earliest budget recorded for month, or nil
// when there is none. A missing budget is not an error.
func (s *SQLiteStorage) GetBudgetForMonth(ctx context.Context, month string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, month, "limit" FROM budgets WHERE month = ? ORDER BY id LIMIT 1`, month)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	return &b, nil
}

func scanBudget(row rowScanner) (model.Budget, error) {
	var (
		b     model.Budget
		month sql.NullString
		limit sql.NullFloat64
	)
	if err := row.Scan(&b.ID, &month, &limit); err != nil {
		return model.Budget{}, err
	}
	b.Month = month.String
	b.Limit = limit.Float64
	return b, nil
}
