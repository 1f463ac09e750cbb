package books

import (
	"codeberg.org/bookshelf/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all book routes; everything here sits behind the access gate
func RegisterRoutes(router *gin.Engine, store BookStore, tokens *auth.TokenService) {
	api := router.Group("/api")
	api.Use(auth.Middleware(tokens))
	{
		api.GET("/books", ListBooksHandler(store))
		api.POST("/books", CreateBookHandler(store))
		api.GET("/books/:id", GetBookHandler(store))
		api.PUT("/books/:id", UpdateBookHandler(store))
		api.DELETE("/books/:id", DeleteBookHandler(store))
		api.GET("/example-books", ExampleBooksHandler())
	}
}
