package auth

import (
	"codeberg.org/bookshelf/server/internal/auth"
	"codeberg.org/bookshelf/server/internal/config"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes. credentialLimiter guards the
// endpoints that accept a password.
func RegisterRoutes(
	router *gin.Engine,
	store UserStore,
	tokens *auth.TokenService,
	cfg *config.Config,
	credentialLimiter gin.HandlerFunc,
) {
	api := router.Group("/api")
	{
		api.POST("/register", credentialLimiter, RegisterHandler(store))
		api.POST("/login", credentialLimiter, LoginHandler(store, tokens))
		api.GET("/me", auth.Middleware(tokens), CurrentUserHandler(store))
	}

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(store, tokens, cfg))
	}
}
