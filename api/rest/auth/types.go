package auth

import (
	"context"

	"codeberg.org/bookshelf/server/bookshelf/users"
)

// UserStore is the credential store consumed by the auth handlers
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByID(ctx context.Context, userID string) (*users.User, error)
	FindOrCreateByProvider(ctx context.Context, provider, providerID, email string) (*users.User, error)
}

// RegisterRequest for creating a local account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest for local credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse returned after successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
