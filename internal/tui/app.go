package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/config"
	"bookshelf/internal/database"
	"bookshelf/internal/database/repository"
)

type tab string

const (
	tabBooks   tab = "books"
	tabAuthors tab = "authors"
)

// mode is the workflow state of the active tab. Exactly one mode is
// active at a time; entering a transient mode replaces the previous
// one without exit side effects.
type mode string

const (
	modeViewing       mode = "viewing"
	modeCreating      mode = "creating"
	modeEditing       mode = "editing"
	modeDetail        mode = "detail"
	modeConfirmDelete mode = "confirmDelete"
)

// Repos is the persistence collaborator, handed to the App once the
// store is open.
type Repos struct {
	Authors *repository.AuthorRepo
	Books   *repository.BookRepo
}

// App owns all mutable UI state. Update is the single reducer: every
// input event lands here, mutates state, and returns follow-up
// commands whose completions re-enter Update as new messages. State is
// never mutated from anywhere else.
type App struct {
	ctx   context.Context
	cfg   config.Config
	repos Repos
	ready bool

	// openStore is swapped out by tests.
	openStore func() (Repos, error)

	tab  tab
	mode mode

	sortField SortField
	sortDir   SortDirection

	searchInput   textinput.Model
	searchFocused bool
	searchTerm    string // last-executed query, survives reloads
	searching     bool
	filtered      []repository.BookWithAuthor

	books        []repository.BookWithAuthor
	bookCursor   int
	currentBook  *repository.BookWithAuthor
	form         bookForm
	authorPicker *Picker[repository.Author]

	authors       []repository.Author
	authorCursor  int
	currentAuthor *repository.Author
	nameInput     textinput.Model
	authorBooks   []repository.BookWithAuthor

	confirmID   int64
	confirmName string

	// per-operation-kind request sequence numbers
	booksSeq       uint64
	authorsSeq     uint64
	authorBooksSeq uint64

	// single overwriting error slot
	errText string
	status  string
}

func authorOptionID(a repository.Author) int64     { return a.ID }
func authorOptionLabel(a repository.Author) string { return a.DisplayName() }

func New(ctx context.Context, cfg config.Config) *App {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title, author, or price"

	a := &App{
		ctx:          ctx,
		cfg:          cfg,
		tab:          tabBooks,
		mode:         modeViewing,
		sortField:    parseSortField(cfg.UI.SortField),
		sortDir:      parseSortDirection(cfg.UI.SortDirection),
		searchInput:  search,
		authorPicker: NewPicker(authorOptionID, authorOptionLabel, nil),
	}
	a.openStore = a.defaultOpenStore
	return a
}

func parseSortField(s string) SortField {
	switch SortField(s) {
	case SortAuthor, SortPrice, SortDateAdded:
		return SortField(s)
	default:
		return SortTitle
	}
}

func parseSortDirection(s string) SortDirection {
	if SortDirection(s) == SortDescending {
		return SortDescending
	}
	return SortAscending
}

func (a *App) Init() tea.Cmd {
	return a.connectCmd()
}

// connectCmd establishes the store off the reducer. Failure is fatal
// to all persistence work but is surfaced as a persistent UI error
// rather than a crash.
func (a *App) connectCmd() tea.Cmd {
	open := a.openStore
	return func() tea.Msg {
		repos, err := open()
		return connectedMsg{repos: repos, err: err}
	}
}

func (a *App) defaultOpenStore() (Repos, error) {
	path := a.cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Repos{}, fmt.Errorf("create data dir: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return Repos{}, fmt.Errorf("open database: %w", err)
	}
	if err := database.MigrateUp(db); err != nil {
		_ = db.Close()
		return Repos{}, fmt.Errorf("migrate: %w", err)
	}
	return Repos{
		Authors: repository.NewAuthorRepo(db),
		Books:   repository.NewBookRepo(db),
	}, nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)

	case connectedMsg:
		if m.err != nil {
			a.errText = "database unavailable: " + m.err.Error()
			return a, nil
		}
		a.repos = m.repos
		a.ready = true
		// independent loads; completions may arrive in either order
		return a, tea.Batch(a.loadBooksCmd(), a.loadAuthorsCmd())

	case booksLoadedMsg:
		if m.seq != a.booksSeq {
			return a, nil // superseded reload
		}
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.books = m.books
		a.refreshBookView()
		a.clampBookCursor()
		return a, nil

	case authorsLoadedMsg:
		if m.seq != a.authorsSeq {
			return a, nil
		}
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.authors = m.authors
		a.authorPicker.SetOptions(m.authors)
		if a.authorCursor >= len(a.authors) {
			a.authorCursor = 0
		}
		return a, nil

	case authorBooksLoadedMsg:
		if m.seq != a.authorBooksSeq {
			return a, nil
		}
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.authorBooks = m.books
		return a, nil

	case bookSavedMsg:
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.mode = modeViewing
		a.currentBook = nil
		return a, a.loadBooksCmd()

	case authorSavedMsg:
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.mode = modeViewing
		a.currentAuthor = nil
		// books display the joined author name; re-resolve it too
		return a, tea.Batch(a.loadAuthorsCmd(), a.loadBooksCmd())

	case bookDeletedMsg:
		// Return to the list and reload even when the delete failed,
		// so the UI is never stranded in a dead confirmation state.
		if m.err != nil {
			a.errText = m.err.Error()
		}
		a.mode = modeViewing
		return a, a.loadBooksCmd()

	case authorDeletedMsg:
		if m.err != nil {
			a.errText = m.err.Error()
		}
		a.mode = modeViewing
		a.currentAuthor = nil
		return a, tea.Batch(a.loadAuthorsCmd(), a.loadBooksCmd())

	case prefsSavedMsg:
		if m.err != nil {
			a.errText = m.err.Error()
		}
		return a, nil
	}
	return a, nil
}

// key handling

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.ready {
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}
	switch a.mode {
	case modeConfirmDelete:
		return a.handleConfirmKey(m)
	case modeCreating, modeEditing:
		if a.tab == tabBooks {
			return a.handleBookFormKey(m)
		}
		return a.handleAuthorFormKey(m)
	case modeDetail:
		return a.handleDetailKey(m)
	}
	if a.tab == tabBooks {
		return a.handleBooksViewingKey(m)
	}
	return a.handleAuthorsViewingKey(m)
}

func (a *App) handleBooksViewingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searchFocused {
		return a.handleSearchKey(m)
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		return a, a.switchTab(tabAuthors)
	case "/":
		a.searchFocused = true
		a.searchInput.Focus()
		return a, textinput.Blink
	case "up", "k":
		if a.bookCursor > 0 {
			a.bookCursor--
		}
	case "down", "j":
		if a.bookCursor < len(a.visibleBooks())-1 {
			a.bookCursor++
		}
	case "s":
		a.sortField = nextSortField(a.sortField)
		a.refreshBookView()
		a.clampBookCursor()
		return a, a.savePrefsCmd()
	case "o":
		if a.sortDir == SortAscending {
			a.sortDir = SortDescending
		} else {
			a.sortDir = SortAscending
		}
		a.refreshBookView()
		a.clampBookCursor()
		return a, a.savePrefsCmd()
	case "n":
		a.mode = modeCreating
		a.currentBook = nil
		a.form = newBookForm("", "", "", "")
		a.authorPicker = NewPicker(authorOptionID, authorOptionLabel, a.authors)
		a.errText = ""
		// the picker needs a fresh candidate list
		return a, a.loadAuthorsCmd()
	case "e", "enter":
		books := a.visibleBooks()
		if len(books) == 0 {
			return a, nil
		}
		bw := books[a.bookCursor]
		a.mode = modeEditing
		a.currentBook = &bw
		a.form = newBookForm(
			bw.Book.Title,
			formatPricePtr(bw.Book.Price),
			formatDateTime(bw.Book.Bought),
			formatDateTime(bw.Book.Finished),
		)
		a.authorPicker = NewPicker(authorOptionID, authorOptionLabel, a.authors)
		if bw.Author != nil {
			a.authorPicker.SetSelected(*bw.Author)
		}
		a.errText = ""
		return a, a.loadAuthorsCmd()
	case "d":
		books := a.visibleBooks()
		if len(books) == 0 {
			return a, nil
		}
		bw := books[a.bookCursor]
		a.mode = modeConfirmDelete
		a.confirmID = bw.Book.ID
		a.confirmName = bw.Book.Title
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		a.performSearch()
		a.searchFocused = false
		a.searchInput.Blur()
		return a, nil
	case "esc":
		a.searchFocused = false
		a.searchInput.Blur()
		a.clearSearch()
		a.refreshBookView()
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(m)
	return a, cmd
}

// performSearch executes the typed query. An empty query deactivates
// filtering entirely rather than matching everything.
func (a *App) performSearch() {
	query := a.searchInput.Value()
	if query == "" {
		a.clearSearch()
		a.refreshBookView()
		return
	}
	a.searching = true
	a.searchTerm = query
	a.refreshBookView()
	a.bookCursor = 0
	if len(a.filtered) == 0 {
		if title, ok := ClosestTitle(a.books, query); ok {
			a.status = fmt.Sprintf("no matches for %q - closest title: %q", query, title)
			return
		}
	}
	a.status = ""
}

func (a *App) clearSearch() {
	a.searchInput.SetValue("")
	a.searchTerm = ""
	a.searching = false
	a.filtered = nil
	a.status = ""
}

func (a *App) handleAuthorsViewingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		return a, a.switchTab(tabBooks)
	case "up", "k":
		if a.authorCursor > 0 {
			a.authorCursor--
		}
	case "down", "j":
		if a.authorCursor < len(a.authors)-1 {
			a.authorCursor++
		}
	case "n":
		a.mode = modeCreating
		a.currentAuthor = nil
		a.nameInput = newNameInput("")
		a.errText = ""
		return a, textinput.Blink
	case "e":
		if len(a.authors) == 0 {
			return a, nil
		}
		author := a.authors[a.authorCursor]
		a.mode = modeEditing
		a.currentAuthor = &author
		name := ""
		if author.Name != nil {
			name = *author.Name
		}
		a.nameInput = newNameInput(name)
		a.errText = ""
		return a, textinput.Blink
	case "enter", "v":
		if len(a.authors) == 0 {
			return a, nil
		}
		author := a.authors[a.authorCursor]
		a.mode = modeDetail
		a.currentAuthor = &author
		a.authorBooks = nil
		return a, a.loadAuthorBooksCmd(author.ID)
	case "d":
		if len(a.authors) == 0 {
			return a, nil
		}
		author := a.authors[a.authorCursor]
		a.mode = modeConfirmDelete
		a.confirmID = author.ID
		a.confirmName = author.DisplayName()
	}
	return a, nil
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "b":
		a.mode = modeViewing
		a.currentAuthor = nil
		a.authorBooks = nil
		return a, a.loadAuthorsCmd()
	case "d":
		if a.currentAuthor == nil {
			return a, nil
		}
		a.mode = modeConfirmDelete
		a.confirmID = a.currentAuthor.ID
		a.confirmName = a.currentAuthor.DisplayName()
	}
	return a, nil
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y", "enter":
		id := a.confirmID
		if a.tab == tabBooks {
			return a, a.deleteBookCmd(id)
		}
		return a, a.deleteAuthorCmd(id)
	case "n", "N", "esc":
		a.mode = modeViewing
	}
	return a, nil
}

func (a *App) handleBookFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.authorPicker.IsOpen() {
		a.authorPicker.HandleKey(m.String())
		return a, nil
	}
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		// cancel issues no persistence call; the list is still current
		a.mode = modeViewing
		a.currentBook = nil
		return a, nil
	case "tab":
		a.form.focusNext(1)
		return a, nil
	case "shift+tab":
		a.form.focusNext(-1)
		return a, nil
	case "enter":
		if a.form.onAuthor() {
			a.authorPicker.Toggle()
			return a, nil
		}
		return a, a.saveBook()
	case "backspace", "delete":
		if a.form.onAuthor() {
			a.authorPicker.ClearSelected()
			return a, nil
		}
	}
	if a.form.onAuthor() {
		return a, nil
	}
	return a, a.form.update(m)
}

// saveBook validates the form and issues the write. A malformed price
// blocks the save locally; malformed dates are dropped silently.
func (a *App) saveBook() tea.Cmd {
	title, priceText, boughtText, finishedText := a.form.values()

	price, err := parsePrice(priceText)
	if err != nil {
		a.errText = err.Error()
		return nil
	}
	bought := parseDateTime(boughtText)
	finished := parseDateTime(finishedText)

	// set once at creation, carried through edits untouched
	var added *time.Time
	if a.currentBook != nil && a.currentBook.Book.Added != nil {
		added = a.currentBook.Book.Added
	} else {
		now := database.Now()
		added = &now
	}

	var authorID *int64
	if sel, ok := a.authorPicker.Selected(); ok {
		id := sel.ID
		authorID = &id
	}

	book := repository.Book{
		Title:    title,
		Price:    price,
		Bought:   bought,
		Finished: finished,
		Added:    added,
		AuthorID: authorID,
	}

	// Capture the target id now: the reducer may move on while the
	// write is in flight, and the request must not retarget.
	var id *int64
	if a.currentBook != nil {
		v := a.currentBook.Book.ID
		id = &v
	}
	a.errText = ""
	return a.saveBookCmd(id, book)
}

func (a *App) handleAuthorFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.mode = modeViewing
		a.currentAuthor = nil
		return a, nil
	case "enter":
		// empty input means "no name", stored as NULL rather than ""
		var name *string
		if v := strings.TrimSpace(a.nameInput.Value()); v != "" {
			name = &v
		}
		var id *int64
		if a.currentAuthor != nil {
			v := a.currentAuthor.ID
			id = &v
		}
		a.errText = ""
		return a, a.saveAuthorCmd(id, name)
	}
	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(m)
	return a, cmd
}

// derived view state

// refreshBookView re-applies the sort and, when active, the stored
// search after the underlying collection changes. Search runs first,
// then sort, so the two always compose the same way.
func (a *App) refreshBookView() {
	SortBooks(a.books, a.sortField, a.sortDir)
	if a.searching {
		a.filtered = FilterBooks(a.books, a.searchTerm)
		SortBooks(a.filtered, a.sortField, a.sortDir)
	} else {
		a.filtered = nil
	}
}

func (a *App) visibleBooks() []repository.BookWithAuthor {
	if a.searching {
		return a.filtered
	}
	return a.books
}

func (a *App) clampBookCursor() {
	if a.bookCursor >= len(a.visibleBooks()) {
		a.bookCursor = 0
	}
}

func (a *App) switchTab(t tab) tea.Cmd {
	a.tab = t
	a.mode = modeViewing
	a.currentBook = nil
	a.currentAuthor = nil
	a.clearSearch()
	a.searchFocused = false
	a.searchInput.Blur()
	if t == tabBooks {
		return a.loadBooksCmd()
	}
	return a.loadAuthorsCmd()
}

func nextSortField(f SortField) SortField {
	switch f {
	case SortTitle:
		return SortAuthor
	case SortAuthor:
		return SortPrice
	case SortPrice:
		return SortDateAdded
	default:
		return SortTitle
	}
}

// commands

func (a *App) loadBooksCmd() tea.Cmd {
	a.booksSeq++
	seq := a.booksSeq
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		books, err := repos.Books.List(ctx)
		return booksLoadedMsg{seq: seq, books: books, err: err}
	}
}

func (a *App) loadAuthorsCmd() tea.Cmd {
	a.authorsSeq++
	seq := a.authorsSeq
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		authors, err := repos.Authors.List(ctx)
		return authorsLoadedMsg{seq: seq, authors: authors, err: err}
	}
}

func (a *App) loadAuthorBooksCmd(authorID int64) tea.Cmd {
	a.authorBooksSeq++
	seq := a.authorBooksSeq
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		books, err := repos.Books.ListByAuthor(ctx, authorID)
		return authorBooksLoadedMsg{seq: seq, books: books, err: err}
	}
}

func (a *App) saveBookCmd(id *int64, book repository.Book) tea.Cmd {
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		var err error
		if id != nil {
			err = repos.Books.Update(ctx, *id, book)
		} else {
			_, err = repos.Books.Create(ctx, book)
		}
		return bookSavedMsg{err: err}
	}
}

func (a *App) saveAuthorCmd(id *int64, name *string) tea.Cmd {
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		var err error
		if id != nil {
			err = repos.Authors.Update(ctx, *id, name)
		} else {
			_, err = repos.Authors.Create(ctx, name)
		}
		return authorSavedMsg{err: err}
	}
}

func (a *App) deleteBookCmd(id int64) tea.Cmd {
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		count, err := repos.Books.Delete(ctx, id)
		return bookDeletedMsg{count: count, err: err}
	}
}

// savePrefsCmd persists the current sort preference so the next launch
// starts where this one left off.
func (a *App) savePrefsCmd() tea.Cmd {
	a.cfg.UI.SortField = string(a.sortField)
	a.cfg.UI.SortDirection = string(a.sortDir)
	cfg := a.cfg
	return func() tea.Msg {
		return prefsSavedMsg{err: config.Save(cfg)}
	}
}

func (a *App) deleteAuthorCmd(id int64) tea.Cmd {
	ctx, repos := a.ctx, a.repos
	return func() tea.Msg {
		count, err := repos.Authors.Delete(ctx, id)
		return authorDeletedMsg{count: count, err: err}
	}
}
