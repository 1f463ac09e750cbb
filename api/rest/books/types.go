package books

import (
	"context"

	"codeberg.org/bookshelf/server/bookshelf/books"
)

// BookStore is the book repository consumed by the handlers
type BookStore interface {
	Create(ctx context.Context, req books.CreateBookRequest) (*books.Book, error)
	List(ctx context.Context, search string) ([]books.Book, error)
	Get(ctx context.Context, bookID string) (*books.Book, error)
	Update(ctx context.Context, bookID string, req books.UpdateBookRequest) (*books.Book, error)
	Delete(ctx context.Context, bookID string) error
}

// ListResponse wraps a book list
type ListResponse struct {
	Books []books.Book `json:"books"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
