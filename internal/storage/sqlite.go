package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/fintrack/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var _ service.Ledger = (*SQLiteStorage)(nil)

// InMemory is the path that opens a private, non-persistent database.
const InMemory = ":memory:"

// SQLiteStorage implements service.Ledger using SQLite.
type SQLiteStorage struct {
	db                 *sql.DB
	dbPath             string
	validateCategories bool
}

// Option configures optional SQLiteStorage behavior.
type Option func(*SQLiteStorage)

// WithCategoryValidation makes CreateExpense and SaveExpenses reject
// category ids that do not exist. Off by default: expenses may reference
// a category that was never created.
func WithCategoryValidation(enabled bool) Option {
	return func(s *SQLiteStorage) {
		s.validateCategories = enabled
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLiteStorage opens the database at dbPath, creating the file and its
// directory when absent. Call Migrate before use and Close when done.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != InMemory {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One session for the whole process; also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}
	for _, opt := range opts {
		opt(s)
	}

	slog.Debug("opened ledger database",
		"path", dbPath,
		"validate_categories", s.validateCategories)

	return s, nil
}

// Path returns the database path the storage was opened with.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
