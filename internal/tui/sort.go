package tui

import (
	"sort"
	"strings"

	"bookshelf/internal/database/repository"
)

// SortField selects the ordering axis for the book list.
type SortField string

const (
	SortTitle     SortField = "title"
	SortAuthor    SortField = "author"
	SortPrice     SortField = "price"
	SortDateAdded SortField = "dateAdded"
)

// Label returns the name shown in the sort header.
func (f SortField) Label() string {
	switch f {
	case SortAuthor:
		return "Author"
	case SortPrice:
		return "Price"
	case SortDateAdded:
		return "Date Added"
	default:
		return "Title"
	}
}

// SortDirection selects the polarity of the order.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

func (d SortDirection) Label() string {
	if d == SortDescending {
		return "Z-A, High to Low"
	}
	return "A-Z, Low to High"
}

// The default-key functions below name the policy for absent values so
// it stays visible and testable, instead of being buried in ad hoc
// nil checks inside the comparator.

func titleSortKey(bw repository.BookWithAuthor) string {
	return strings.ToLower(bw.Book.Title)
}

// authorSortKey keys books with no author (or an unnamed one) as the
// empty string, so they come first in ascending order.
func authorSortKey(bw repository.BookWithAuthor) string {
	if bw.Author == nil || bw.Author.Name == nil {
		return ""
	}
	return strings.ToLower(*bw.Author.Name)
}

// priceSortKey keys a priceless book as 0: it sorts as free, not last.
func priceSortKey(bw repository.BookWithAuthor) float64 {
	if bw.Book.Price == nil {
		return 0
	}
	return *bw.Book.Price
}

// addedLess orders missing added dates after every present one. The
// whole order is then reversed for descending, which puts missing
// dates first there. Longstanding behaviour; keep it.
func addedLess(a, b repository.BookWithAuthor) bool {
	switch {
	case a.Book.Added != nil && b.Book.Added != nil:
		return a.Book.Added.Before(*b.Book.Added)
	case a.Book.Added != nil:
		return true
	default:
		return false
	}
}

// SortBooks orders books in place, stably, by the chosen field.
// Descending is the exact reverse of the ascending order rather than a
// separately derived comparator, so the two directions are mirrors.
func SortBooks(books []repository.BookWithAuthor, field SortField, dir SortDirection) {
	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		switch field {
		case SortAuthor:
			return authorSortKey(a) < authorSortKey(b)
		case SortPrice:
			return priceSortKey(a) < priceSortKey(b)
		case SortDateAdded:
			return addedLess(a, b)
		default:
			return titleSortKey(a) < titleSortKey(b)
		}
	})
	if dir == SortDescending {
		for i, j := 0, len(books)-1; i < j; i, j = i+1, j-1 {
			books[i], books[j] = books[j], books[i]
		}
	}
}
