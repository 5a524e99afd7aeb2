package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
)

// CategoryReport sums expense amounts per category name. Categories with no
// expenses are left out and categories sharing a name are merged.
func (s *SQLiteStorage) CategoryReport(ctx context.Context) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT c.name, SUM(e.amount)
		FROM categories c
		JOIN expenses e ON c.id = e.category_id
		GROUP BY c.name
		ORDER BY c.name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category report: %w", err)
	}
	defer rows.Close()

	totals := []model.CategoryTotal{}
	for rows.Next() {
		var (
			name  sql.NullString
			total sql.NullFloat64
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, model.CategoryTotal{
			Name:  name.String,
			Total: total.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category report: %w", err)
	}

	slog.Debug("generated category report", "rows", len(totals))
	return totals, nil
}

// MonthlyTotal sums the amount of every expense whose date text begins with
// month. This is a plain string prefix test: "2024-013-01" counts toward
// "2024-01". No matching rows yields 0.
func (s *SQLiteStorage) MonthlyTotal(ctx context.Context, month string) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE substr(date, 1, length(?1)) = ?1`,
		month).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses for %s: %w", month, err)
	}

	return total, nil
}

// BudgetAlert compares a month's spending against its budget.
func (s *SQLiteStorage) BudgetAlert(ctx context.Context, month string) (*model.BudgetAlert, error) {
	total, err := s.MonthlyTotal(ctx, month)
	if err != nil {
		return nil, err
	}

	budget, err := s.GetBudgetForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	alert := model.ClassifyBudget(month, total, budget)
	slog.Debug("checked budget",
		"month", month,
		"total", total,
		"status", string(alert.Status))

	return &alert, nil
}
