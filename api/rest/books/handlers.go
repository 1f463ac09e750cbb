package books

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/bookshelf/server/bookshelf/books"
	"codeberg.org/bookshelf/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// CreateBookHandler godoc
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param request body books.CreateBookRequest true "Book data"
// @Success 201 {object} books.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/books [post]
// @Security BearerAuth
func CreateBookHandler(store BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req books.CreateBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "title and author are required", err)
			return
		}

		book, err := store.Create(c.Request.Context(), req)
		if err != nil {
			errors.InternalError(c, "failed to create book", err)
			return
		}

		c.JSON(http.StatusCreated, book)
	}
}

// ListBooksHandler godoc
// @Summary List books
// @Description List all books, optionally filtered by a search term matched against title, author and description
// @Tags books
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} ListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/books [get]
// @Security BearerAuth
func ListBooksHandler(store BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		booksList, err := store.List(c.Request.Context(), c.Query("search"))
		if err != nil {
			errors.InternalError(c, "failed to list books", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Books: booksList})
	}
}

// GetBookHandler godoc
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} books.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/books/{id} [get]
// @Security BearerAuth
func GetBookHandler(store BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := errors.ValidatePathUUID(c, "id", "book")
		if !ok {
			return
		}

		book, err := store.Get(c.Request.Context(), bookID)
		if err != nil {
			if stderrors.Is(err, pgx.ErrNoRows) {
				errors.NotFound(c, "book")
				return
			}

			errors.InternalError(c, "failed to fetch book", err)
			return
		}

		c.JSON(http.StatusOK, book)
	}
}

// UpdateBookHandler godoc
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body books.UpdateBookRequest true "Fields to update"
// @Success 200 {object} books.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/books/{id} [put]
// @Security BearerAuth
func UpdateBookHandler(store BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := errors.ValidatePathUUID(c, "id", "book")
		if !ok {
			return
		}

		var req books.UpdateBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		book, err := store.Update(c.Request.Context(), bookID, req)
		if err != nil {
			if stderrors.Is(err, pgx.ErrNoRows) {
				errors.NotFound(c, "book")
				return
			}

			errors.InternalError(c, "failed to update book", err)
			return
		}

		c.JSON(http.StatusOK, book)
	}
}

// DeleteBookHandler godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/books/{id} [delete]
// @Security BearerAuth
func DeleteBookHandler(store BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := errors.ValidatePathUUID(c, "id", "book")
		if !ok {
			return
		}

		err := store.Delete(c.Request.Context(), bookID)
		if err != nil {
			if stderrors.Is(err, pgx.ErrNoRows) {
				errors.NotFound(c, "book")
				return
			}

			errors.InternalError(c, "failed to delete book", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "book deleted successfully"})
	}
}

// ExampleBooksHandler godoc
// @Summary List example books
// @Description Static sample list for the reading view
// @Tags books
// @Produce json
// @Success 200 {array} books.Book
// @Router /api/example-books [get]
// @Security BearerAuth
func ExampleBooksHandler() gin.HandlerFunc {
	exampleBooks := []books.Book{
		{ID: "1", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Description: "A classic novel."},
		{ID: "2", Title: "1984", Author: "George Orwell", Description: "A dystopian masterpiece."},
		{ID: "3", Title: "To Kill a Mockingbird", Author: "Harper Lee", Description: "A powerful story."},
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, exampleBooks)
	}
}
