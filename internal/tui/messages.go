package tui

import "bookshelf/internal/database/repository"

// Completion messages delivered back into Update by the persistence
// collaborator. Load results carry the sequence number of the request
// that produced them, so a superseded reload can never overwrite
// newer state.

type connectedMsg struct {
	repos Repos
	err   error
}

type booksLoadedMsg struct {
	seq   uint64
	books []repository.BookWithAuthor
	err   error
}

type authorsLoadedMsg struct {
	seq     uint64
	authors []repository.Author
	err     error
}

type authorBooksLoadedMsg struct {
	seq   uint64
	books []repository.BookWithAuthor
	err   error
}

type bookSavedMsg struct{ err error }

type authorSavedMsg struct{ err error }

type bookDeletedMsg struct {
	count int64
	err   error
}

type authorDeletedMsg struct {
	count int64
	err   error
}

type prefsSavedMsg struct{ err error }
