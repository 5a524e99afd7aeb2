package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
)

const expenseColumns = `id, title, amount, date, category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (model.Expense, error) {
	var (
		exp        model.Expense
		title      sql.NullString
		amount     sql.NullFloat64
		date       sql.NullString
		categoryID sql.NullInt64
	)
	if err := row.Scan(&exp.ID, &title, &amount, &date, &categoryID); err != nil {
		return model.Expense{}, err
	}

	exp.Title = title.String
	exp.Amount = amount.Float64
	exp.Date = date.String
	if categoryID.Valid {
		id := categoryID.Int64
		exp.CategoryID = &id
	}
	return exp, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// CreateExpense inserts an expense. The date is stored verbatim and the
// category reference is only checked when category validation is enabled.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, title string, amount float64, date string, categoryID *int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	exp := model.Expense{
		Title:      title,
		Amount:     amount,
		Date:       date,
		CategoryID: categoryID,
	}
	if err := s.insertExpense(ctx, s.db, &exp); err != nil {
		return nil, err
	}

	slog.Info("created expense", "id", exp.ID, "title", title, "amount", amount, "date", date)
	return &exp, nil
}

// SaveExpenses inserts a batch of expenses in a single transaction and
// returns how many were written. Ids on the input are ignored.
func (s *SQLiteStorage) SaveExpenses(ctx context.Context, expenses []model.Expense) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(expenses) == 0 {
		return 0, nil
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range expenses {
			exp := expenses[i]
			if err := s.insertExpense(ctx, tx, &exp); err != nil {
				return fmt.Errorf("expense at index %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("saved expenses", "count", len(expenses))
	return len(expenses), nil
}

func (s *SQLiteStorage) insertExpense(ctx context.Context, q querier, exp *model.Expense) error {
	// Uncategorized expenses are always allowed.
	if s.validateCategories && exp.CategoryID != nil {
		exists, err := categoryExists(ctx, q, *exp.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: id %d", ErrCategoryNotFound, *exp.CategoryID)
		}
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO expenses (title, amount, date, category_id) VALUES (?, ?, ?, ?)`,
		exp.Title, exp.Amount, exp.Date, nullableID(exp.CategoryID))
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense ID: %w", err)
	}
	exp.ID = id
	return nil
}

// GetExpense returns the expense with the given id or an error wrapping
// common.ErrNotFound.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getExpense(ctx, s.db, id)
}

func getExpense(ctx context.Context, q querier, id int64) (*model.Expense, error) {
	row := q.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	exp, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}
	return &exp, nil
}

// UpdateExpense overwrites the title and amount of an existing expense.
// Date and category are left untouched.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id int64, title string, amount float64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var updated *model.Expense
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		exp, err := getExpense(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE expenses SET title = ?, amount = ? WHERE id = ?`,
			title, amount, id); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		exp.Title = title
		exp.Amount = amount
		updated = exp
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("updated expense", "id", id, "title", title, "amount", amount)
	return updated, nil
}

// DeleteExpense permanently removes an expense.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return notFound("expense", id)
	}

	slog.Info("deleted expense", "id", id)
	return nil
}

// FindExpensesByDate returns expenses whose date text equals date exactly.
func (s *SQLiteStorage) FindExpensesByDate(ctx context.Context, date string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE date = ? ORDER BY id`, date)
}

// ListExpenses returns every expense ordered by date, then id.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY date, id`)
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}
