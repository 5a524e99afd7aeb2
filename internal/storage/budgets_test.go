package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBudget_DuplicateMonthsAllowed(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first, err := store.CreateBudget(ctx, "2024-03", 100)
	require.NoError(t, err)
	second, err := store.CreateBudget(ctx, "2024-03", 500)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	budgets, err := store.GetBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, 2)

	// The earliest budget for a month wins.
	got, err := store.GetBudgetForMonth(ctx, "2024-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 100.0, got.Limit)
}

func TestGetBudgetForMonth_NoneIsNil(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateBudget(ctx, "2024-04", 100)
	require.NoError(t, err)

	got, err := store.GetBudgetForMonth(ctx, "2024-03")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetBudgets_OrderedByMonth(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, month := range []string{"2024-05", "2024-01", "2024-03"} {
		_, err := store.CreateBudget(ctx, month, 10)
		require.NoError(t, err)
	}

	budgets, err := store.GetBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, "2024-01", budgets[0].Month)
	assert.Equal(t, "2024-03", budgets[1].Month)
	assert.Equal(t, "2024-05", budgets[2].Month)
}
