package tui

import (
	"testing"

	"bookshelf/internal/database/repository"
)

func TestFilterBooksByTitle(t *testing.T) {
	books := []repository.BookWithAuthor{
		bookTitled("The Go Programming Language"),
		bookTitled("Rust in Action"),
	}
	got := FilterBooks(books, "go prog")
	assertOrder(t, got, "The Go Programming Language")
}

func TestFilterBooksByAuthorName(t *testing.T) {
	books := []repository.BookWithAuthor{
		bookByAuthor("Dune", "Frank Herbert"),
		bookByAuthor("Foundation", "Isaac Asimov"),
		bookTitled("Orphan"),
	}
	got := FilterBooks(books, "herb")
	assertOrder(t, got, "Dune")
}

func TestFilterBooksCaseInsensitive(t *testing.T) {
	books := []repository.BookWithAuthor{bookTitled("MOBY DICK")}
	got := FilterBooks(books, "moby")
	assertOrder(t, got, "MOBY DICK")
}

func TestFilterBooksNilAuthorNeverMatches(t *testing.T) {
	books := []repository.BookWithAuthor{bookTitled("Orphan")}
	if got := FilterBooks(books, "herbert"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", titlesOf(got))
	}
}

func TestPriceMatchesPrefix(t *testing.T) {
	cases := []struct {
		price float64
		query string
		want  bool
	}{
		{41.99, "41", true},
		{41.99, "41.9", true},
		{41.99, "41.99", true},
		{41.99, "42", false},
		{5, "5", true},
		{5.99, "5", true},
		{12.5, "12.5", true},
		{100, "10", true},
	}
	for _, tc := range cases {
		if got := priceMatches(tc.price, tc.query); got != tc.want {
			t.Errorf("priceMatches(%v, %q) = %v, want %v", tc.price, tc.query, got, tc.want)
		}
	}
}

func TestPriceMatchesNonNumericFallback(t *testing.T) {
	// "." is not a number but still matches by containment in the
	// canonical form.
	if !priceMatches(41.99, ".") {
		t.Fatal("expected containment fallback to match")
	}
	if priceMatches(41.99, "1.2.3") {
		t.Fatal("non-numeric query absent from the canonical form must not match")
	}
	// ".99" parses as a number, so it goes down the prefix path and
	// must not match 41.99.
	if priceMatches(41.99, ".99") {
		t.Fatal("numeric query must use prefix semantics, not containment")
	}
}

func TestFilterBooksMatchesPrice(t *testing.T) {
	books := []repository.BookWithAuthor{
		bookPriced("Expensive", 41.99),
		bookPriced("Cheap", 4.2),
		bookTitled("Priceless"),
	}
	got := FilterBooks(books, "41")
	assertOrder(t, got, "Expensive")
}

func TestFormatPriceCanonical(t *testing.T) {
	cases := map[float64]string{
		41.99: "41.99",
		5:     "5",
		0.5:   "0.5",
	}
	for in, want := range cases {
		if got := formatPrice(in); got != want {
			t.Errorf("formatPrice(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestClosestTitle(t *testing.T) {
	books := []repository.BookWithAuthor{
		bookTitled("Dune"),
		bookTitled("Foundation"),
	}
	title, ok := ClosestTitle(books, "dunne")
	if !ok || title != "Dune" {
		t.Fatalf("got %q, %v", title, ok)
	}
}

func TestClosestTitleEmptyCollection(t *testing.T) {
	if _, ok := ClosestTitle(nil, "anything"); ok {
		t.Fatal("expected no suggestion from an empty collection")
	}
}
