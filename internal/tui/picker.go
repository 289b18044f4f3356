package tui

import "strings"

// Picker is an incrementally-filtered single-select list, generic over
// any item type with a stable identity and a display label. The
// visible subset is always recomputed from the full option list and
// the live term; nothing is cached.
type Picker[T any] struct {
	id    func(T) int64
	label func(T) string

	options  []T
	selected T
	hasSel   bool
	open     bool
	term     string
	cursor   int
}

// PickerAction reports what a key press did.
type PickerAction int

const (
	PickerNone PickerAction = iota
	PickerMoved
	PickerSelected
	PickerClosed
)

func NewPicker[T any](id func(T) int64, label func(T) string, options []T) *Picker[T] {
	p := &Picker[T]{id: id, label: label}
	p.SetOptions(options)
	return p
}

// SetOptions replaces the candidate list. The selection is untouched.
func (p *Picker[T]) SetOptions(options []T) {
	p.options = append([]T(nil), options...)
	p.clampCursor()
}

func (p *Picker[T]) IsOpen() bool { return p.open }

func (p *Picker[T]) Term() string { return p.term }

func (p *Picker[T]) Cursor() int { return p.cursor }

// Toggle flips open/closed. Closing always clears the live term.
func (p *Picker[T]) Toggle() {
	p.open = !p.open
	if !p.open {
		p.term = ""
	}
	p.cursor = 0
}

// Search replaces the live term. The selection is unaffected.
func (p *Picker[T]) Search(term string) {
	p.term = term
	p.cursor = 0
	p.clampCursor()
}

// Select sets the selection and closes the widget, clearing the term.
func (p *Picker[T]) Select(item T) {
	p.selected = item
	p.hasSel = true
	p.open = false
	p.term = ""
	p.cursor = 0
}

func (p *Picker[T]) SetSelected(item T) {
	p.selected = item
	p.hasSel = true
}

func (p *Picker[T]) ClearSelected() {
	var zero T
	p.selected = zero
	p.hasSel = false
}

func (p *Picker[T]) Selected() (T, bool) {
	return p.selected, p.hasSel
}

// IsSelected compares by identity: two items with the same label but
// different ids are distinct.
func (p *Picker[T]) IsSelected(item T) bool {
	return p.hasSel && p.id(p.selected) == p.id(item)
}

// SelectedLabel returns the selected item's label, or placeholder when
// nothing is selected.
func (p *Picker[T]) SelectedLabel(placeholder string) string {
	if !p.hasSel {
		return placeholder
	}
	return p.label(p.selected)
}

// Visible returns the candidates whose label contains the live term,
// case-insensitively. An empty term yields the full list.
func (p *Picker[T]) Visible() []T {
	if p.term == "" {
		return append([]T(nil), p.options...)
	}
	term := strings.ToLower(p.term)
	out := make([]T, 0, len(p.options))
	for _, item := range p.options {
		if strings.Contains(strings.ToLower(p.label(item)), term) {
			out = append(out, item)
		}
	}
	return out
}

// CurrentItem returns the candidate under the cursor.
func (p *Picker[T]) CurrentItem() (T, bool) {
	visible := p.Visible()
	if len(visible) == 0 {
		var zero T
		return zero, false
	}
	idx := p.cursor
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	return visible[idx], true
}

// HandleKey processes a key press while the picker is open. Movement
// is arrow-only so letters like "j" and "k" stay typeable in the term.
func (p *Picker[T]) HandleKey(keyName string) PickerAction {
	switch keyName {
	case "up":
		if p.cursor > 0 {
			p.cursor--
			return PickerMoved
		}
		return PickerNone
	case "down":
		if p.cursor < len(p.Visible())-1 {
			p.cursor++
			return PickerMoved
		}
		return PickerNone
	case "enter":
		item, ok := p.CurrentItem()
		if !ok {
			return PickerNone
		}
		p.Select(item)
		return PickerSelected
	case "esc":
		p.open = false
		p.term = ""
		p.cursor = 0
		return PickerClosed
	case "backspace":
		if len(p.term) > 0 {
			p.Search(p.term[:len(p.term)-1])
		}
		return PickerNone
	default:
		if isPrintableASCIIKey(keyName) {
			p.Search(p.term + keyName)
		}
		return PickerNone
	}
}

func (p *Picker[T]) clampCursor() {
	maxIdx := len(p.Visible()) - 1
	if maxIdx < 0 {
		p.cursor = 0
	} else if p.cursor > maxIdx {
		p.cursor = maxIdx
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
