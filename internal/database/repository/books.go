package repository

import (
	"context"
	"database/sql"
	"errors"
)

const bookColumns = `b.id, b.title, b.price, b.bought, b.finished, b.added, b.author_id, a.id, a.name`

// BookRepo handles books. List queries resolve each book's author in
// the same statement; the pairing is a point-in-time join, so callers
// reload after author mutations.
type BookRepo struct {
	db *sql.DB
}

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{db: db} }

func (r *BookRepo) List(ctx context.Context) ([]BookWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+bookColumns+`
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id
	ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// ListByAuthor returns the books whose foreign key equals authorID.
// Zero rows is a normal result.
func (r *BookRepo) ListByAuthor(ctx context.Context, authorID int64) ([]BookWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+bookColumns+`
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id
	WHERE b.author_id = ?
	ORDER BY b.id`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

func (r *BookRepo) Get(ctx context.Context, id int64) (*BookWithAuthor, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+bookColumns+`
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id
	WHERE b.id = ?`, id)
	bw, err := scanBookWithAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bw, nil
}

func (r *BookRepo) Create(ctx context.Context, b Book) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO books(title, price, bought, finished, added, author_id)
	VALUES(?, ?, ?, ?, ?, ?)`,
		b.Title, b.Price, b.Bought, b.Finished, b.Added, b.AuthorID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *BookRepo) Update(ctx context.Context, id int64, b Book) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE books
	SET title = ?, price = ?, bought = ?, finished = ?, added = ?, author_id = ?
	WHERE id = ?`,
		b.Title, b.Price, b.Bought, b.Finished, b.Added, b.AuthorID, id)
	return err
}

func (r *BookRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectBooks(rows *sql.Rows) ([]BookWithAuthor, error) {
	var out []BookWithAuthor
	for rows.Next() {
		bw, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

// scanner handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBookWithAuthor(row scanner) (BookWithAuthor, error) {
	var bw BookWithAuthor
	var price sql.NullFloat64
	var bought, finished, added sql.NullTime
	var authorFK, authorID sql.NullInt64
	var authorName sql.NullString
	if err := row.Scan(&bw.Book.ID, &bw.Book.Title, &price, &bought, &finished, &added,
		&authorFK, &authorID, &authorName); err != nil {
		return BookWithAuthor{}, err
	}
	if price.Valid {
		bw.Book.Price = &price.Float64
	}
	if bought.Valid {
		bw.Book.Bought = &bought.Time
	}
	if finished.Valid {
		bw.Book.Finished = &finished.Time
	}
	if added.Valid {
		bw.Book.Added = &added.Time
	}
	if authorFK.Valid {
		bw.Book.AuthorID = &authorFK.Int64
	}
	if authorID.Valid {
		author := Author{ID: authorID.Int64}
		if authorName.Valid {
			author.Name = &authorName.String
		}
		bw.Author = &author
	}
	return bw, nil
}
