// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/fintrack/internal/model"
)

// Ledger defines the contract for the finance ledger persistence layer.
// Lookups of missing ids return an error wrapping common.ErrNotFound.
type Ledger interface {
	// Category operations
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)

	// Expense operations
	CreateExpense(ctx context.Context, title string, amount float64, date string, categoryID *int64) (*model.Expense, error)
	SaveExpenses(ctx context.Context, expenses []model.Expense) (int, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id int64, title string, amount float64) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	FindExpensesByDate(ctx context.Context, date string) ([]model.Expense, error)
	ListExpenses(ctx context.Context) ([]model.Expense, error)

	// Subscription operations
	CreateSubscription(ctx context.Context, name string, amount float64, nextDate string) (*model.Subscription, error)
	GetSubscriptions(ctx context.Context) ([]model.Subscription, error)
	GetSubscriptionsDueBy(ctx context.Context, date string) ([]model.Subscription, error)

	// Budget operations
	CreateBudget(ctx context.Context, month string, limit float64) (*model.Budget, error)
	GetBudgets(ctx context.Context) ([]model.Budget, error)
	GetBudgetForMonth(ctx context.Context, month string) (*model.Budget, error)

	// Reports
	CategoryReport(ctx context.Context) ([]model.CategoryTotal, error)
	MonthlyTotal(ctx context.Context, month string) (float64, error)
	BudgetAlert(ctx context.Context, month string) (*model.BudgetAlert, error)

	// Maintenance
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter publishes a ledger report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}

// Report is a point-in-time snapshot of the ledger for export.
type Report struct {
	GeneratedAt    time.Time
	Alert          *model.BudgetAlert
	Categories     []model.Category
	CategoryTotals []model.CategoryTotal
	Expenses       []model.Expense
	Subscriptions  []model.Subscription
	Budgets        []model.Budget
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
