package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, tokens *TokenService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", Middleware(tokens), func(c *gin.Context) {
		email, ok := CurrentEmail(c)
		require.True(t, ok, "middleware must populate the subject on success")
		c.JSON(http.StatusOK, gin.H{"email": email})
	})

	return router
}

func doProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestMiddleware_MissingHeader(t *testing.T) {
	router := newProtectedRouter(t, newTestTokenService(t))

	w := doProtected(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code, "absent credential is 401, not 403")
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(t, newTestTokenService(t))

	// no extractable bearer token means no credential was presented
	for _, header := range []string{"Bearer", "Bearer ", "token-without-scheme"} {
		w := doProtected(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q carries no credential", header)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	router := newProtectedRouter(t, newTestTokenService(t))

	w := doProtected(router, "Bearer not-a-real-token")

	assert.Equal(t, http.StatusForbidden, w.Code, "present but invalid credential is 403")
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	tokens := newTestTokenService(t)
	router := newProtectedRouter(t, tokens)

	claims := Claims{
		Email: "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-16 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doProtected(router, "Bearer "+expired)

	// expiry and forgery are deliberately indistinguishable to the client
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddleware_ValidToken(t *testing.T) {
	tokens := newTestTokenService(t)
	router := newProtectedRouter(t, tokens)

	token, err := tokens.Issue("test@example.com")
	require.NoError(t, err)

	w := doProtected(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@example.com")
}

func TestMiddleware_WrongSecretToken(t *testing.T) {
	other, err := NewTokenService("some-other-secret")
	require.NoError(t, err)

	forged, err := other.Issue("test@example.com")
	require.NoError(t, err)

	router := newProtectedRouter(t, newTestTokenService(t))

	w := doProtected(router, "Bearer "+forged)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
