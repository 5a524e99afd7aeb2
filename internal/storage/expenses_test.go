package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExpense_FoundByDate(t *testing.T) {
	tests := []struct {
		categoryID *int64
		name       string
		title      string
		date       string
		amount     float64
	}{
		{name: "with category", title: "Lunch", amount: 12.5, date: "2024-03-01", categoryID: int64Ptr(1)},
		{name: "without category", title: "Parking", amount: 3, date: "2024-03-01"},
		{name: "dangling category", title: "Gift", amount: 40, date: "2024-03-02", categoryID: int64Ptr(999)},
		{name: "unvalidated date text", title: "Odd", amount: 1, date: "someday"},
		{name: "zero amount", title: "Free sample", amount: 0, date: "2024-03-03"},
		{name: "negative amount", title: "Refund", amount: -5.25, date: "2024-03-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			ctx := context.Background()

			created, err := store.CreateExpense(ctx, tt.title, tt.amount, tt.date, tt.categoryID)
			require.NoError(t, err)
			assert.Positive(t, created.ID)

			found, err := store.FindExpensesByDate(ctx, tt.date)
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, *created, found[0])
			assert.Equal(t, tt.categoryID != nil, found[0].HasCategory())
		})
	}
}

func TestCreateExpense_CategoryValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing category", func(t *testing.T) {
		store := createTestStorage(t, WithCategoryValidation(true))

		_, err := store.CreateExpense(ctx, "Lunch", 10, "2024-03-01", int64Ptr(42))
		assert.ErrorIs(t, err, ErrCategoryNotFound)
		assert.ErrorIs(t, err, common.ErrValidation)

		all, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Empty(t, all, "rejected expenses must not be written")
	})

	t.Run("accepts existing category", func(t *testing.T) {
		store := createTestStorage(t, WithCategoryValidation(true))

		cat, err := store.CreateCategory(ctx, "Food")
		require.NoError(t, err)

		exp, err := store.CreateExpense(ctx, "Lunch", 10, "2024-03-01", &cat.ID)
		require.NoError(t, err)
		require.NotNil(t, exp.CategoryID)
		assert.Equal(t, cat.ID, *exp.CategoryID)
	})

	t.Run("accepts uncategorized expense", func(t *testing.T) {
		store := createTestStorage(t, WithCategoryValidation(true))

		exp, err := store.CreateExpense(ctx, "Parking", 4, "2024-03-01", nil)
		require.NoError(t, err)
		assert.Nil(t, exp.CategoryID)

		saved, err := store.SaveExpenses(ctx, []model.Expense{{Title: "Toll", Amount: 2, Date: "2024-03-02"}})
		require.NoError(t, err)
		assert.Equal(t, 1, saved)

		all, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestUpdateExpense(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Food")
	require.NoError(t, err)
	original, err := store.CreateExpense(ctx, "Lunch", 12, "2024-03-01", &cat.ID)
	require.NoError(t, err)

	updated, err := store.UpdateExpense(ctx, original.ID, "Dinner", 30)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", updated.Title)
	assert.Equal(t, 30.0, updated.Amount)
	assert.Equal(t, original.Date, updated.Date, "date must not change")
	assert.Equal(t, original.CategoryID, updated.CategoryID, "category must not change")

	stored, err := store.GetExpense(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)
}

func TestUpdateExpense_NotFoundLeavesStoreUnchanged(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	existing, err := store.CreateExpense(ctx, "Lunch", 12, "2024-03-01", nil)
	require.NoError(t, err)

	_, err = store.UpdateExpense(ctx, existing.ID+1, "Ghost", 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.True(t, common.IsNotFound(err))

	all, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *existing, all[0])
}

func TestDeleteExpense(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	keep, err := store.CreateExpense(ctx, "Keep", 1, "2024-03-01", nil)
	require.NoError(t, err)
	drop, err := store.CreateExpense(ctx, "Drop", 2, "2024-03-01", nil)
	require.NoError(t, err)

	require.NoError(t, store.DeleteExpense(ctx, drop.ID))

	_, err = store.GetExpense(ctx, drop.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = store.DeleteExpense(ctx, drop.ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "second delete reports not found")

	found, err := store.FindExpensesByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, keep.ID, found[0].ID)

	// Ids are never reused after a delete.
	next, err := store.CreateExpense(ctx, "Next", 3, "2024-03-01", nil)
	require.NoError(t, err)
	assert.Greater(t, next.ID, drop.ID)
}

func TestDeleteExpense_Missing(t *testing.T) {
	store := createTestStorage(t)

	err := store.DeleteExpense(context.Background(), 12345)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "expense 12345")
}

func TestFindExpensesByDate_ExactMatchOnly(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-01", "2024-03-01 ", "2024-03-011", "2024-03"} {
		_, err := store.CreateExpense(ctx, "e", 1, date, nil)
		require.NoError(t, err)
	}

	found, err := store.FindExpensesByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2024-03-01", found[0].Date)

	none, err := store.FindExpensesByDate(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSaveExpenses(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	batch := []model.Expense{
		{Title: "Coffee", Amount: 4.5, Date: "2024-01-15"},
		{Title: "Groceries", Amount: 125, Date: "2024-01-20", CategoryID: int64Ptr(7)},
	}

	n, err := store.SaveExpenses(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Coffee", all[0].Title)
	assert.Equal(t, "Groceries", all[1].Title)
	assert.Equal(t, int64(7), *all[1].CategoryID)

	n, err = store.SaveExpenses(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveExpenses_RollsBackOnValidationFailure(t *testing.T) {
	store := createTestStorage(t, WithCategoryValidation(true))
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Food")
	require.NoError(t, err)

	_, err = store.SaveExpenses(ctx, []model.Expense{
		{Title: "ok", Amount: 1, Date: "2024-01-01", CategoryID: &cat.ID},
		{Title: "bad", Amount: 2, Date: "2024-01-01", CategoryID: int64Ptr(cat.ID + 50)},
	})
	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "index 1")

	all, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "batch must be all-or-nothing")
}
