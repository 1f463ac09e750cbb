package main

import (
	"time"

	"codeberg.org/bookshelf/server/api/rest/auth"
	"codeberg.org/bookshelf/server/api/rest/books"
	"codeberg.org/bookshelf/server/api/rest/health"
	"codeberg.org/bookshelf/server/internal/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// credential endpoints allow this many attempts per IP per window
const (
	credentialRateLimit  = 10
	credentialRateWindow = time.Minute
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{server.config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", health.Handler)

	credentialLimiter := ratelimit.NewCredentialLimiter(credentialRateLimit, credentialRateWindow)

	auth.RegisterRoutes(router, server.userRepo, server.tokens, server.config, credentialLimiter)
	books.RegisterRoutes(router, server.bookRepo, server.tokens)
}
