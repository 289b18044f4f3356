package tui

import (
	"errors"
	"testing"
	"time"
)

func TestParsePrice(t *testing.T) {
	if p, err := parsePrice(""); err != nil || p != nil {
		t.Fatalf("empty price: %v, %v", p, err)
	}
	if p, err := parsePrice("  "); err != nil || p != nil {
		t.Fatalf("blank price: %v, %v", p, err)
	}
	p, err := parsePrice("41.99")
	if err != nil || p == nil || *p != 41.99 {
		t.Fatalf("valid price: %v, %v", p, err)
	}
	if _, err := parsePrice("abc"); !errors.Is(err, errInvalidPrice) {
		t.Fatalf("want errInvalidPrice, got %v", err)
	}
	if _, err := parsePrice("12.3.4"); !errors.Is(err, errInvalidPrice) {
		t.Fatalf("want errInvalidPrice, got %v", err)
	}
}

// Malformed dates are dropped, not rejected.
func TestParseDateTimeLenient(t *testing.T) {
	if got := parseDateTime("not a date"); got != nil {
		t.Fatalf("malformed date should clear, got %v", got)
	}
	if got := parseDateTime(""); got != nil {
		t.Fatalf("empty date should clear, got %v", got)
	}
	got := parseDateTime("2024-03-15 10:30:00")
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFormatDateTimeRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	text := formatDateTime(&ts)
	back := parseDateTime(text)
	if back == nil || !back.Equal(ts) {
		t.Fatalf("round trip failed: %q -> %v", text, back)
	}
	if formatDateTime(nil) != "" {
		t.Fatal("nil time should format empty")
	}
}

func TestFormatPricePtr(t *testing.T) {
	if formatPricePtr(nil) != "" {
		t.Fatal("nil price should format empty")
	}
	p := 5.0
	if got := formatPricePtr(&p); got != "5" {
		t.Fatalf("got %q, want %q", got, "5")
	}
}

func TestBookFormFocusCycle(t *testing.T) {
	f := newBookForm("", "", "", "")
	if f.onAuthor() {
		t.Fatal("initial focus should be the title field")
	}
	for i := 0; i < fieldAuthor; i++ {
		f.focusNext(1)
	}
	if !f.onAuthor() {
		t.Fatalf("focus = %d, want author field", f.focus)
	}
	f.focusNext(1)
	if f.focus != fieldTitle {
		t.Fatalf("focus = %d, want wrap to title", f.focus)
	}
	f.focusNext(-1)
	if !f.onAuthor() {
		t.Fatalf("focus = %d, want author via reverse wrap", f.focus)
	}
}

func TestBookFormValues(t *testing.T) {
	f := newBookForm("Dune", "9.99", "2024-01-01 00:00:00", "")
	title, price, bought, finished := f.values()
	if title != "Dune" || price != "9.99" || bought != "2024-01-01 00:00:00" || finished != "" {
		t.Fatalf("values = %q %q %q %q", title, price, bought, finished)
	}
}
