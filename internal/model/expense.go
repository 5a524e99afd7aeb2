package model

// DateLayout is the textual layout expense and subscription dates are stored in.
const DateLayout = "2006-01-02"

// MonthLayout is the textual layout budget months are stored in.
const MonthLayout = "2006-01"

// Expense represents a single recorded spend.
type Expense struct {
	CategoryID *int64 // May reference a category that does not exist
	Title      string
	Date       string // YYYY-MM-DD, stored verbatim
	ID         int64
	Amount     float64
}

// HasCategory reports whether the expense carries a category reference.
func (e *Expense) HasCategory() bool {
	return e.CategoryID != nil
}
