package repository

import (
	"context"
	"database/sql"
	"errors"
)

// AuthorRepo handles authors.
type AuthorRepo struct {
	db *sql.DB
}

func NewAuthorRepo(db *sql.DB) *AuthorRepo { return &AuthorRepo{db: db} }

func (r *AuthorRepo) List(ctx context.Context) ([]Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM authors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AuthorRepo) Get(ctx context.Context, id int64) (*Author, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM authors WHERE id = ?`, id)
	a, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepo) Create(ctx context.Context, name *string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO authors(name) VALUES(?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *AuthorRepo) Update(ctx context.Context, id int64, name *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE authors SET name = ? WHERE id = ?`, name, id)
	return err
}

// Delete removes an author and reports how many rows went away.
// Books referencing the author keep existing; their foreign key is
// cleared by the schema.
func (r *AuthorRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAuthor(row scanner) (Author, error) {
	var a Author
	var name sql.NullString
	if err := row.Scan(&a.ID, &name); err != nil {
		return Author{}, err
	}
	if name.Valid {
		a.Name = &name.String
	}
	return a, nil
}
