package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"bookshelf/internal/database/repository"
)

// styles
var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func (a *App) View() string {
	if !a.ready {
		if a.errText != "" {
			return titleStyle.Render("Bookshelf") + "\n" + a.errText + "\n[q] Quit"
		}
		return titleStyle.Render("Bookshelf") + "\nopening database..."
	}

	var body string
	switch {
	case a.mode == modeConfirmDelete:
		body = a.renderConfirmDelete()
	case a.tab == tabBooks && (a.mode == modeCreating || a.mode == modeEditing):
		body = a.renderBookForm()
	case a.tab == tabBooks:
		body = a.renderBooks()
	case a.mode == modeCreating || a.mode == modeEditing:
		body = a.renderAuthorForm()
	case a.mode == modeDetail:
		body = a.renderAuthorDetail()
	default:
		body = a.renderAuthors()
	}
	if a.errText != "" {
		body += "\nerror: " + a.errText
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) renderTabs() string {
	books, authors := "Books", "Authors"
	if a.tab == tabBooks {
		books = titleStyle.Render(books)
	} else {
		authors = titleStyle.Render(authors)
	}
	return books + " | " + authors
}

func (a *App) renderBooks() string {
	out := a.renderTabs() + "\n"
	out += fmt.Sprintf("Sort: %s (%s)\n", a.sortField.Label(), a.sortDir.Label())
	if a.searchFocused {
		out += a.searchInput.View() + "\n"
	} else if a.searching {
		out += fmt.Sprintf("Filter: %q\n", a.searchTerm)
	}

	books := a.visibleBooks()
	if len(books) == 0 {
		out += "No books found\n"
	}
	for i, bw := range books {
		marker := " "
		if i == a.bookCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-40s  %-24s  %8s  %s\n",
			marker,
			bw.Book.Title,
			a.authorLabel(bw.Author),
			a.priceLabel(bw.Book.Price),
			a.dateLabel(bw.Book.Added),
		)
	}
	out += "[n] New  [e] Edit  [d] Delete  [/] Search  [s] Sort field  [o] Sort direction  [tab] Authors  [q] Quit"
	return out
}

func (a *App) renderBookForm() string {
	heading := "New Book"
	if a.mode == modeEditing {
		heading = "Edit Book"
	}
	out := titleStyle.Render(heading) + "\n"
	for _, inp := range a.form.inputs {
		out += inp.View() + "\n"
	}

	marker := " "
	if a.form.onAuthor() {
		marker = "▶"
	}
	out += fmt.Sprintf("%s Author: %s\n", marker, a.authorPicker.SelectedLabel("(none)"))
	if a.authorPicker.IsOpen() {
		out += a.renderPicker()
	}
	if a.form.onAuthor() && !a.authorPicker.IsOpen() {
		out += "[enter] Pick author  [backspace] Clear author  [tab] Next field  [esc] Cancel"
	} else {
		out += "[tab] Next field  [enter] Save  [esc] Cancel"
	}
	return out
}

func (a *App) renderPicker() string {
	out := "  Search: " + a.authorPicker.Term() + "\n"
	visible := a.authorPicker.Visible()
	if len(visible) == 0 {
		out += "  (no matching authors)\n"
	}
	for i, author := range visible {
		marker := " "
		if i == a.authorPicker.Cursor() {
			marker = "▶"
		}
		sel := " "
		if a.authorPicker.IsSelected(author) {
			sel = "*"
		}
		out += fmt.Sprintf("  %s%s %s\n", marker, sel, author.DisplayName())
	}
	out += "  [enter] Select  [esc] Close\n"
	return out
}

func (a *App) renderAuthors() string {
	out := a.renderTabs() + "\n"
	if len(a.authors) == 0 {
		out += "No authors found\n"
	}
	stats := CalcAuthorStats(a.books)
	for i, author := range a.authors {
		marker := " "
		if i == a.authorCursor {
			marker = "▶"
		}
		s := stats[author.ID]
		out += fmt.Sprintf("%s %-32s  bought %d  unbought %d  finished %d\n",
			marker, author.DisplayName(), s.Bought, s.NotBought, s.Finished)
	}
	out += "[n] New  [e] Edit  [d] Delete  [enter] Details  [tab] Books  [q] Quit"
	return out
}

func (a *App) renderAuthorForm() string {
	heading := "New Author"
	if a.mode == modeEditing {
		heading = "Edit Author"
	}
	out := titleStyle.Render(heading) + "\n"
	out += a.nameInput.View() + "\n"
	out += "[enter] Save  [esc] Cancel"
	return out
}

func (a *App) renderAuthorDetail() string {
	name := "(unknown)"
	if a.currentAuthor != nil {
		name = a.currentAuthor.DisplayName()
	}
	out := titleStyle.Render(name) + "\n"
	if a.currentAuthor != nil {
		s := CalcAuthorStats(a.authorBooks)[a.currentAuthor.ID]
		out += fmt.Sprintf("bought %d  unbought %d  finished %d\n", s.Bought, s.NotBought, s.Finished)
	}
	if len(a.authorBooks) == 0 {
		out += "No books found\n"
	}
	for _, bw := range a.authorBooks {
		out += fmt.Sprintf("- %-40s  %8s  %s\n",
			bw.Book.Title,
			a.priceLabel(bw.Book.Price),
			a.dateLabel(bw.Book.Added),
		)
	}
	out += "[esc] Back  [d] Delete author  [q] Quit"
	return out
}

func (a *App) renderConfirmDelete() string {
	kind := "book"
	if a.tab == tabAuthors {
		kind = "author"
	}
	return titleStyle.Render(fmt.Sprintf("Delete %s?", kind)) +
		fmt.Sprintf("\n%s\n[y] Yes  [n] No", a.confirmName)
}

func (a *App) authorLabel(author *repository.Author) string {
	if author == nil {
		return "(no author)"
	}
	return author.DisplayName()
}

func (a *App) priceLabel(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%s%.2f", a.cfg.UI.CurrencySymbol, *p)
}

func (a *App) dateLabel(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(a.cfg.UI.DateFormat)
}
