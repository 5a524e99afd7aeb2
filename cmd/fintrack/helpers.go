package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/storage"
)

// FINTRACK_DATABASE_PATH -> database.path
var envKeyReplacer = strings.NewReplacer(".", "_")

// openStorage opens the configured ledger database without migrating it.
func openStorage() (*storage.SQLiteStorage, error) {
	cfg := config.LoadLedgerConfig()

	slog.Debug("Opening ledger", "path", cfg.Path, "validate_categories", cfg.ValidateCategories)

	store, err := storage.NewSQLiteStorage(cfg.Path, storage.WithCategoryValidation(cfg.ValidateCategories))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// initStorage opens the ledger and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := openStorage()
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func parseAmount(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, common.NewUserError(fmt.Sprintf("%s must be a number, got %q", field, raw), common.ErrValidation)
	}
	return v, nil
}

func parseID(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("%s must be a whole number, got %q", field, raw), common.ErrValidation)
	}
	return v, nil
}

func printLine(w io.Writer, line string) {
	fmt.Fprintln(w, line)
}

func printNotFound(w io.Writer, entity string, id int64) {
	printLine(w, cli.FormatError(fmt.Sprintf("%s %d not found", entity, id)))
}
