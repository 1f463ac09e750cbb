package auth

import (
	"strings"

	"codeberg.org/bookshelf/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// Middleware is the access gate for protected routes: it verifies the
// bearer token and attaches the authenticated subject to the context.
// A missing credential is 401; a credential that fails verification
// (bad signature, malformed, expired) is 403. The check is purely
// cryptographic, no store lookup happens here.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			errors.Unauthorized(c, "access denied, no token provided")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			errors.Forbidden(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// extracts the authenticated subject email set by Middleware
func CurrentEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("user_email")
	if !exists {
		return "", false
	}

	return email.(string), true
}

// pulls the token out of an Authorization header; returns false when
// no credential is present at all
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
