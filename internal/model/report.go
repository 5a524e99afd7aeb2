package model

// CategoryTotal is one row of the category spending report.
type CategoryTotal struct {
	Name  string
	Total float64
}
