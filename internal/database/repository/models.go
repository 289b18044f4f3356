package repository

import "time"

// Author represents an author row. Identity is the store-assigned id;
// the display name is optional.
type Author struct {
	ID   int64
	Name *string
}

// DisplayName returns the name shown in lists and pickers.
func (a Author) DisplayName() string {
	if a.Name == nil || *a.Name == "" {
		return "Unnamed Author"
	}
	return *a.Name
}

// Book represents a book row. Added is set once at creation and kept
// unchanged through edits.
type Book struct {
	ID       int64
	Title    string
	Price    *float64
	Bought   *time.Time
	Finished *time.Time
	Added    *time.Time
	AuthorID *int64
}

// BookWithAuthor pairs a book with its author as resolved at query
// time. A missing or dangling foreign key resolves to a nil Author,
// never an error.
type BookWithAuthor struct {
	Book   Book
	Author *Author
}
