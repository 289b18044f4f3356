package tui

import (
	"testing"

	"bookshelf/internal/database/repository"
)

func namedAuthor(id int64, name string) repository.Author {
	return repository.Author{ID: id, Name: &name}
}

func testPicker(names ...string) *Picker[repository.Author] {
	authors := make([]repository.Author, 0, len(names))
	for i, n := range names {
		authors = append(authors, namedAuthor(int64(i+1), n))
	}
	return NewPicker(authorOptionID, authorOptionLabel, authors)
}

func TestPickerToggleClearsTerm(t *testing.T) {
	p := testPicker("Herbert", "Asimov")
	p.Toggle()
	p.Search("her")
	p.Toggle()
	if p.IsOpen() {
		t.Fatal("picker should be closed")
	}
	if p.Term() != "" {
		t.Fatalf("term not cleared: %q", p.Term())
	}
	p.Toggle()
	if got := len(p.Visible()); got != 2 {
		t.Fatalf("reopened picker shows %d options, want 2", got)
	}
}

func TestPickerSelectClosesAndClears(t *testing.T) {
	p := testPicker("Herbert", "Asimov")
	p.Toggle()
	p.Search("asi")
	item, ok := p.CurrentItem()
	if !ok {
		t.Fatal("expected a visible item")
	}
	p.Select(item)
	if p.IsOpen() || p.Term() != "" {
		t.Fatalf("select must close and clear: open=%v term=%q", p.IsOpen(), p.Term())
	}
	sel, ok := p.Selected()
	if !ok || sel.ID != 2 {
		t.Fatalf("selected = %+v, %v", sel, ok)
	}
}

func TestPickerSearchKeepsSelection(t *testing.T) {
	p := testPicker("Herbert", "Asimov")
	p.SetSelected(namedAuthor(1, "Herbert"))
	p.Toggle()
	p.Search("zzz")
	if sel, ok := p.Selected(); !ok || sel.ID != 1 {
		t.Fatalf("selection changed during search: %+v, %v", sel, ok)
	}
	if got := len(p.Visible()); got != 0 {
		t.Fatalf("visible = %d, want 0", got)
	}
}

func TestPickerSetOptionsKeepsSelection(t *testing.T) {
	p := testPicker("Herbert")
	p.SetSelected(namedAuthor(1, "Herbert"))
	p.SetOptions([]repository.Author{namedAuthor(2, "Asimov")})
	if sel, ok := p.Selected(); !ok || sel.ID != 1 {
		t.Fatalf("selection lost on SetOptions: %+v, %v", sel, ok)
	}
}

func TestPickerIsSelectedByIdentity(t *testing.T) {
	p := testPicker("Smith", "Smith")
	p.SetSelected(namedAuthor(2, "Smith"))
	if p.IsSelected(namedAuthor(1, "Smith")) {
		t.Fatal("same label, different id must not be selected")
	}
	if !p.IsSelected(namedAuthor(2, "Smith")) {
		t.Fatal("matching id must be selected")
	}
}

func TestPickerHandleKeyTypingFilters(t *testing.T) {
	p := testPicker("Herbert", "Asimov", "Le Guin")
	p.Toggle()
	p.HandleKey("a")
	p.HandleKey("s")
	if got := len(p.Visible()); got != 1 {
		t.Fatalf("visible = %d, want 1", got)
	}
	p.HandleKey("backspace")
	if p.Term() != "a" {
		t.Fatalf("term = %q, want %q", p.Term(), "a")
	}
}

func TestPickerHandleKeyEnterSelects(t *testing.T) {
	p := testPicker("Herbert", "Asimov")
	p.Toggle()
	p.HandleKey("down")
	if got := p.HandleKey("enter"); got != PickerSelected {
		t.Fatalf("action = %v, want PickerSelected", got)
	}
	if sel, ok := p.Selected(); !ok || sel.ID != 2 {
		t.Fatalf("selected = %+v, %v", sel, ok)
	}
}

func TestPickerHandleKeyEscClosesWithoutSelecting(t *testing.T) {
	p := testPicker("Herbert")
	p.Toggle()
	p.HandleKey("h")
	if got := p.HandleKey("esc"); got != PickerClosed {
		t.Fatalf("action = %v, want PickerClosed", got)
	}
	if p.IsOpen() || p.Term() != "" {
		t.Fatal("esc must close and clear the term")
	}
	if _, ok := p.Selected(); ok {
		t.Fatal("esc must not select")
	}
}

func TestPickerCursorClampedToVisible(t *testing.T) {
	p := testPicker("Herbert", "Asimov", "Le Guin")
	p.Toggle()
	p.HandleKey("down")
	p.HandleKey("down")
	p.Search("le")
	item, ok := p.CurrentItem()
	if !ok || item.ID != 3 {
		t.Fatalf("current = %+v, %v", item, ok)
	}
}

func TestPickerClearSelected(t *testing.T) {
	p := testPicker("Herbert")
	p.SetSelected(namedAuthor(1, "Herbert"))
	p.ClearSelected()
	if _, ok := p.Selected(); ok {
		t.Fatal("selection should be cleared")
	}
	if got := p.SelectedLabel("(none)"); got != "(none)" {
		t.Fatalf("label = %q", got)
	}
}
