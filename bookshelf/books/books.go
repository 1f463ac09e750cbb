package books

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new book repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates a new book
func (r *Repository) Create(ctx context.Context, req CreateBookRequest) (*Book, error) {
	var book Book

	err := r.db.QueryRow(ctx, queryCreate, req.Title, req.Author, req.Description).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &book, nil
}

// lists all books, optionally filtered by a search term matched
// against title, author and description
func (r *Repository) List(ctx context.Context, search string) ([]Book, error) {
	var rows pgx.Rows
	var err error

	if search == "" {
		rows, err = r.db.Query(ctx, queryList)
	} else {
		rows, err = r.db.Query(ctx, querySearch, search)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booksList := []Book{}

	for rows.Next() {
		var book Book

		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		booksList = append(booksList, book)
	}

	return booksList, rows.Err()
}

// gets a single book by ID; returns pgx.ErrNoRows when absent
func (r *Repository) Get(ctx context.Context, bookID string) (*Book, error) {
	var book Book

	err := r.db.QueryRow(ctx, queryGet, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &book, nil
}

// updates a book; unset fields keep their current values
func (r *Repository) Update(ctx context.Context, bookID string, req UpdateBookRequest) (*Book, error) {
	var book Book

	err := r.db.QueryRow(ctx, queryUpdate, req.Title, req.Author, req.Description, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &book, nil
}

// deletes a book; returns pgx.ErrNoRows when it does not exist
func (r *Repository) Delete(ctx context.Context, bookID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, bookID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
