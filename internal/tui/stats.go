package tui

import "bookshelf/internal/database/repository"

// BookStats summarises one author's shelf.
type BookStats struct {
	Bought    int
	NotBought int
	Finished  int
}

// CalcAuthorStats tallies per-author counts from the loaded book
// collection. Books without an author are not counted.
func CalcAuthorStats(books []repository.BookWithAuthor) map[int64]BookStats {
	stats := make(map[int64]BookStats)
	for _, bw := range books {
		if bw.Book.AuthorID == nil {
			continue
		}
		s := stats[*bw.Book.AuthorID]
		if bw.Book.Bought != nil {
			s.Bought++
		} else {
			s.NotBought++
		}
		if bw.Book.Finished != nil {
			s.Finished++
		}
		stats[*bw.Book.AuthorID] = s
	}
	return stats
}
