package books

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles book database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a book in the catalog
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// contains data for creating a book
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=300"`
	Author      string `json:"author" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// contains data for updating a book; nil fields are left unchanged
type UpdateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=300"`
	Author      *string `json:"author" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}
