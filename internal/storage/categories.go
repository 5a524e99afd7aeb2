package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
)

// CreateCategory inserts a category. Names need not be unique.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created category", "name", name, "id", id)
	return &model.Category{ID: id, Name: name}, nil
}

// GetCategories returns every category ordered by id.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var (
			cat  model.Category
			name sql.NullString
		)
		if err := rows.Scan(&cat.ID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Name = name.String
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategory returns the category with the given id or an error wrapping
// common.ErrNotFound.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		cat  model.Category
		name sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).Scan(&cat.ID, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	cat.Name = name.String
	return &cat, nil
}

// categoryExists is used by the optional category validation mode.
func categoryExists(ctx context.Context, q querier, id int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category %d: %w", id, err)
	}
	return exists, nil
}
