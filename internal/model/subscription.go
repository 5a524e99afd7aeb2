package model

// Subscription is a recurring charge with the date it next renews.
type Subscription struct {
	Name     string
	NextDate string // YYYY-MM-DD
	ID       int64
	Amount   float64
}
