package model

// Category groups expenses under a user-chosen name.
// Names are not unique; two categories may share a name.
type Category struct {
	Name string
	ID   int64
}
