package model

import "fmt"

// Budget is a spending ceiling for one month.
// Several budgets may exist for the same month.
type Budget struct {
	Month string // YYYY-MM
	ID    int64
	Limit float64
}

// AlertStatus classifies a month's spending against its budget.
type AlertStatus string

const (
	// AlertNoBudget means no budget was set for the month.
	AlertNoBudget AlertStatus = "no_budget"
	// AlertWithinBudget means spending is at or below the limit.
	AlertWithinBudget AlertStatus = "within_budget"
	// AlertExceeded means spending is above the limit.
	AlertExceeded AlertStatus = "exceeded"
)

// BudgetAlert is the outcome of checking a month against its budget.
// Total is always populated, even when no budget exists.
type BudgetAlert struct {
	Budget *Budget
	Month  string
	Status AlertStatus
	Total  float64
}

// ClassifyBudget compares a month's total with an optional budget.
func ClassifyBudget(month string, total float64, budget *Budget) BudgetAlert {
	alert := BudgetAlert{
		Month:  month,
		Total:  total,
		Budget: budget,
	}

	switch {
	case budget == nil:
		alert.Status = AlertNoBudget
	case total > budget.Limit:
		alert.Status = AlertExceeded
	default:
		alert.Status = AlertWithinBudget
	}

	return alert
}

// Remaining returns how much of the budget is left. Negative when exceeded.
func (a BudgetAlert) Remaining() float64 {
	if a.Budget == nil {
		return 0
	}
	return a.Budget.Limit - a.Total
}

// String renders the status the way the CLI reports it.
func (s AlertStatus) String() string {
	switch s {
	case AlertNoBudget:
		return "No budget set for this month"
	case AlertWithinBudget:
		return "Within budget"
	case AlertExceeded:
		return "Budget exceeded"
	default:
		return fmt.Sprintf("unknown status %q", string(s))
	}
}
