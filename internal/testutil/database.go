// Package testutil provides test utilities for the fintrack project.
// It offers migrated in-memory ledgers with seed data and proper cleanup.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/service"
	"github.com/Veraticus/fintrack/internal/storage"
)

// TestDB represents a test ledger with associated test utilities.
type TestDB struct {
	Ledger     service.Ledger
	t          *testing.T
	Categories map[string]int64
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup        func(context.Context, service.Ledger) error
	Categories         []string
	ValidateCategories bool
}

// SetupTestDB creates a new in-memory ledger seeded with the named categories.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, "Food", "Fuel")
//	foodID := db.MustCategoryID("Food")
func SetupTestDB(t *testing.T, categories ...string) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Categories: categories})
}

// SetupTestDBWithOptions creates a test ledger with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.InMemory,
		storage.WithCategoryValidation(opts.ValidateCategories))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{
		Ledger:     store,
		Categories: make(map[string]int64, len(opts.Categories)),
		t:          t,
	}

	for _, name := range opts.Categories {
		cat, err := store.CreateCategory(ctx, name)
		if err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
		db.Categories[name] = cat.ID
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustCategoryID returns the id of a seeded category or fails the test.
func (db *TestDB) MustCategoryID(name string) int64 {
	db.t.Helper()
	id, ok := db.Categories[name]
	if !ok {
		db.t.Fatalf("category %q was not seeded", name)
	}
	return id
}

// MustAddExpense records an expense or fails the test.
func (db *TestDB) MustAddExpense(title string, amount float64, date string, category string) *model.Expense {
	db.t.Helper()

	var categoryID *int64
	if category != "" {
		id := db.MustCategoryID(category)
		categoryID = &id
	}

	exp, err := db.Ledger.CreateExpense(context.Background(), title, amount, date, categoryID)
	if err != nil {
		db.t.Fatalf("failed to add expense %q: %v", title, err)
	}
	return exp
}
