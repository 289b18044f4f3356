package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// dateTimeFormat is the fixed entry pattern for the bought/finished
// date fields.
const dateTimeFormat = "2006-01-02 15:04:05"

var errInvalidPrice = errors.New("Invalid price format")

// parsePrice validates the price field. Empty means absent; anything
// else must parse as a decimal number or the save is rejected.
func parsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errInvalidPrice
	}
	return &p, nil
}

// parseDateTime is lenient: text that does not match the fixed
// pattern is treated as an empty field, not an error.
func parseDateTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateTimeFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateTimeFormat)
}

func formatPricePtr(p *float64) string {
	if p == nil {
		return ""
	}
	return formatPrice(*p)
}

// Book form field indexes. fieldAuthor is the picker pseudo-field at
// the end of the tab cycle.
const (
	fieldTitle = iota
	fieldPrice
	fieldBought
	fieldFinished
	fieldAuthor
	fieldCount
)

// bookForm holds the transient text inputs for creating or editing a
// book.
type bookForm struct {
	inputs []textinput.Model
	focus  int
}

func newBookForm(title, price, bought, finished string) bookForm {
	labels := []string{"Title", "Price", "Bought (YYYY-MM-DD HH:MM:SS)", "Finished (YYYY-MM-DD HH:MM:SS)"}
	values := []string{title, price, bought, finished}
	inputs := make([]textinput.Model, 0, len(labels))
	for i, label := range labels {
		inp := textinput.New()
		inp.Prompt = label + ": "
		inp.SetValue(values[i])
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return bookForm{inputs: inputs}
}

func (f *bookForm) onAuthor() bool { return f.focus == fieldAuthor }

func (f *bookForm) focusNext(dir int) {
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Blur()
	}
	f.focus = (f.focus + dir + fieldCount) % fieldCount
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Focus()
	}
}

func (f *bookForm) update(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *bookForm) values() (title, price, bought, finished string) {
	return f.inputs[fieldTitle].Value(),
		f.inputs[fieldPrice].Value(),
		f.inputs[fieldBought].Value(),
		f.inputs[fieldFinished].Value()
}

func newNameInput(value string) textinput.Model {
	inp := textinput.New()
	inp.Prompt = "Name: "
	inp.SetValue(value)
	inp.Focus()
	return inp
}
