package tui

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"bookshelf/internal/database/repository"
)

// FilterBooks returns the subset of books matching query by title,
// author name, or price. Callers never pass an empty query: an empty
// search deactivates filtering instead of matching everything.
func FilterBooks(books []repository.BookWithAuthor, query string) []repository.BookWithAuthor {
	q := strings.ToLower(query)
	out := make([]repository.BookWithAuthor, 0, len(books))
	for _, bw := range books {
		if matchesQuery(bw, q) {
			out = append(out, bw)
		}
	}
	return out
}

func matchesQuery(bw repository.BookWithAuthor, q string) bool {
	if strings.Contains(strings.ToLower(bw.Book.Title), q) {
		return true
	}
	if bw.Author != nil && bw.Author.Name != nil &&
		strings.Contains(strings.ToLower(*bw.Author.Name), q) {
		return true
	}
	return bw.Book.Price != nil && priceMatches(*bw.Book.Price, q)
}

// priceMatches supports prefix search on the canonical decimal form,
// so "41" matches both 41 and 41.99. A query that is not a number
// falls back to substring containment.
func priceMatches(price float64, query string) bool {
	priceStr := formatPrice(price)
	if n, err := strconv.ParseFloat(query, 64); err == nil {
		return strings.HasPrefix(priceStr, formatPrice(n)) || price == n
	}
	return strings.Contains(priceStr, query)
}

// formatPrice is the canonical decimal text for a price, with no
// trailing zeros: 41.99 -> "41.99", 5.00 -> "5".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// ClosestTitle finds the nearest title by edit distance, used to
// suggest a correction when a search matched nothing.
func ClosestTitle(books []repository.BookWithAuthor, query string) (string, bool) {
	q := strings.ToLower(query)
	best := ""
	bestDist := -1
	for _, bw := range books {
		d := levenshtein.ComputeDistance(strings.ToLower(bw.Book.Title), q)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = bw.Book.Title
		}
	}
	return best, bestDist >= 0
}
