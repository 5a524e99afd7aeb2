package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMenu(t *testing.T, db *testutil.TestDB, input string) string {
	t.Helper()

	var out bytes.Buffer
	menu := NewMenu(db.Ledger, strings.NewReader(input), &out)
	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func TestMenu_AddCategoryAndExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)

	output := runMenu(t, db, strings.Join([]string{
		"1", "Food",
		"2", "Lunch", "12.5", "2024-01-15", "1",
		"9",
	}, "\n")+"\n")

	assert.Contains(t, output, `Added category "Food" (ID 1)`)
	assert.Contains(t, output, `Added expense "Lunch" for 12.50 (ID 1)`)
	assert.Contains(t, output, "Goodbye!")

	exp, err := db.Ledger.GetExpense(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, exp.CategoryID)
	assert.Equal(t, int64(1), *exp.CategoryID)
}

func TestMenu_RepromptsOnMalformedAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)

	output := runMenu(t, db, "2\nCoffee\nfive\n5\n2024-02-01\n\n9\n")

	assert.Contains(t, output, `"five" is not a number`)
	assert.Contains(t, output, `Added expense "Coffee" for 5.00`)

	exp, err := db.Ledger.GetExpense(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, exp.CategoryID)
}

func TestMenu_UpdateAndDeleteNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	output := runMenu(t, db, "3\n42\nTitle\n1\n4\n42\n9\n")

	assert.Equal(t, 2, strings.Count(output, "Expense 42 not found"))
}

func TestMenu_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t, "Food")
	exp := db.MustAddExpense("Lunch", 10, "2024-01-15", "Food")

	output := runMenu(t, db, "3\n1\nDinner\n20\n4\n1\n9\n")

	assert.Contains(t, output, `Updated expense 1: "Dinner" 20.00`)
	assert.Contains(t, output, "Deleted expense 1")

	_, err := db.Ledger.GetExpense(context.Background(), exp.ID)
	assert.Error(t, err)
}

func TestMenu_SearchByDate(t *testing.T) {
	db := testutil.SetupTestDB(t, "Food")
	db.MustAddExpense("Lunch", 10, "2024-01-15", "Food")
	db.MustAddExpense("Dinner", 25, "2024-01-16", "")

	output := runMenu(t, db, "5\n2024-01-15\n5\n2024-03-01\n9\n")

	assert.Contains(t, output, "Lunch")
	assert.NotContains(t, output, "Dinner")
	assert.Contains(t, output, "No expenses on 2024-03-01")
}

func TestMenu_CategoryReport(t *testing.T) {
	db := testutil.SetupTestDB(t, "Food", "Fuel")
	db.MustAddExpense("Lunch", 10, "2024-01-15", "Food")
	db.MustAddExpense("Dinner", 15.5, "2024-01-16", "Food")

	output := runMenu(t, db, "6\n9\n")

	assert.Contains(t, output, "CATEGORY")
	assert.Regexp(t, `Food\s+25\.50`, output)
	assert.NotContains(t, output, "Fuel")
}

func TestMenu_CategoryReportEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	output := runMenu(t, db, "6\n9\n")

	assert.Contains(t, output, "No categorized expenses yet")
}

func TestMenu_BudgetAlert(t *testing.T) {
	tests := []struct {
		name     string
		setup    string
		expected string
	}{
		{name: "no budget", setup: "", expected: model.AlertNoBudget.String()},
		{name: "within budget", setup: "7\n2024-01\n500\n", expected: model.AlertWithinBudget.String()},
		{name: "exceeded", setup: "7\n2024-01\n100\n", expected: model.AlertExceeded.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			db.MustAddExpense("Rent", 150, "2024-01-01", "")

			output := runMenu(t, db, tt.setup+"8\n2024-01\n9\n")

			assert.Contains(t, output, tt.expected)
		})
	}
}

func TestMenu_ValidationErrorsKeepLooping(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{ValidateCategories: true})

	output := runMenu(t, db, "2\nLunch\n10\n2024-01-15\n99\n1\nFood\n9\n")

	assert.Contains(t, output, "category does not exist")
	assert.Contains(t, output, `Added category "Food"`)
}

func TestMenu_EndOfInputExits(t *testing.T) {
	db := testutil.SetupTestDB(t)

	output := runMenu(t, db, "1\n")

	assert.Contains(t, output, "Category name")
	assert.NotContains(t, output, "Goodbye!")
}

type fixedChooser struct {
	picks []int
}

func (f *fixedChooser) Choose(_ context.Context, _ string, _ []string) (int, error) {
	if len(f.picks) == 0 {
		return 0, errors.New("no more picks")
	}
	pick := f.picks[0]
	f.picks = f.picks[1:]
	return pick, nil
}

func TestMenu_WithChooser(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var out bytes.Buffer
	chooser := &fixedChooser{picks: []int{int(ActionAddCategory), int(ActionExit)}}
	menu := NewMenu(db.Ledger, strings.NewReader("Travel\n"), &out, WithChooser(chooser))

	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), `Added category "Travel"`)
	assert.NotContains(t, out.String(), "Choose an option")
}

func TestMenu_ChooserErrorIsReturned(t *testing.T) {
	db := testutil.SetupTestDB(t)

	menu := NewMenu(db.Ledger, strings.NewReader(""), &bytes.Buffer{}, WithChooser(&fixedChooser{}))

	assert.EqualError(t, menu.Run(context.Background()), "no more picks")
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Add category", ActionAddCategory.String())
	assert.Equal(t, "Exit", ActionExit.String())
	assert.Equal(t, "Action(99)", Action(99).String())
	assert.Len(t, MenuLabels(), 9)
}
