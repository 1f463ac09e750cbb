package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims carried by a bearer token
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens with a static signing
// secret loaded once at startup.
type TokenService struct {
	secret []byte
}
