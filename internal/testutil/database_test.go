package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_SeedsCategories(t *testing.T) {
	db := SetupTestDB(t, "Food", "Fuel")

	cats, err := db.Ledger.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, cats[0].ID, db.MustCategoryID("Food"))
	assert.Equal(t, cats[1].ID, db.MustCategoryID("Fuel"))

	exp := db.MustAddExpense("Lunch", 12, "2024-03-01", "Food")
	require.NotNil(t, exp.CategoryID)
	assert.Equal(t, db.MustCategoryID("Food"), *exp.CategoryID)
}

func TestSetupTestDBWithOptions(t *testing.T) {
	var setupRan bool
	db := SetupTestDBWithOptions(t, TestDBOptions{
		ValidateCategories: true,
		CustomSetup: func(ctx context.Context, l service.Ledger) error {
			setupRan = true
			_, err := l.CreateBudget(ctx, "2024-03", 100)
			return err
		},
	})
	assert.True(t, setupRan)

	dangling := int64(99)
	_, err := db.Ledger.CreateExpense(context.Background(), "x", 1, "2024-03-01", &dangling)
	assert.True(t, errors.Is(err, common.ErrValidation))

	budgets, err := db.Ledger.GetBudgets(context.Background())
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
}
