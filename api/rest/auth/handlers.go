package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"slices"

	"codeberg.org/bookshelf/server/bookshelf/users"
	"codeberg.org/bookshelf/server/internal/auth"
	"codeberg.org/bookshelf/server/internal/config"
	"codeberg.org/bookshelf/server/internal/errors"
	"codeberg.org/bookshelf/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

// RegisterHandler godoc
// @Summary Register a local account
// @Description Create a new account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/register [post]
func RegisterHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			errors.InternalError(c, "an error occurred during registration", err)
			return
		}

		// uniqueness is arbitrated by the store constraint, not a
		// read-then-write check, so concurrent registrations race safely
		if _, err := store.Create(c.Request.Context(), req.Email, hash); err != nil {
			if stderrors.Is(err, users.ErrEmailTaken) {
				errors.Conflict(c, "user already exists")
				return
			}

			errors.InternalError(c, "an error occurred during registration", err)
			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: "user registered successfully"})
	}
}

// LoginHandler godoc
// @Summary Login with email and password
// @Description Verify credentials and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/login [post]
func LoginHandler(store UserStore, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := store.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if stderrors.Is(err, pgx.ErrNoRows) {
				// unknown email reads the same as a wrong password
				errors.Unauthorized(c, "invalid credentials")
				return
			}

			errors.InternalError(c, "an error occurred during login", err)
			return
		}

		// federated-only accounts have no usable password
		if user.PasswordHash == nil || !auth.CheckPassword(req.Password, *user.PasswordHash) {
			errors.Unauthorized(c, "invalid credentials")
			return
		}

		token, err := tokens.Issue(req.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin the OAuth flow with the specified provider (google, github)
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/{provider} [get]
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !isValidProvider(provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description Complete the OAuth flow, reconcile the profile with the user store and redirect to the frontend with a bearer token. Failures redirect to the login page, never to a JSON error.
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 302 {string} string "Redirect to frontend"
// @Router /auth/{provider}/callback [get]
func CallbackHandler(store UserStore, tokens *auth.TokenService, cfg *config.Config) gin.HandlerFunc {
	failureURL := cfg.FrontendURL + "/login"

	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			logger.ErrorErr(err, "oauth code exchange failed", "provider", provider)
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		subject, err := reconcileFederatedUser(c.Request.Context(), store, gothUser)
		if err != nil {
			logger.ErrorErr(err, "failed to reconcile oauth user", "provider", provider)
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		token, err := tokens.Issue(subject)
		if err != nil {
			logger.ErrorErr(err, "failed to generate token", "provider", provider)
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		c.Redirect(http.StatusTemporaryRedirect,
			cfg.FrontendURL+"/dashboard?token="+url.QueryEscape(token))
	}
}

// CurrentUserHandler godoc
// @Summary Get current user
// @Description Get the authenticated user's record
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/me [get]
// @Security BearerAuth
func CurrentUserHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, exists := auth.CurrentEmail(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		// the subject is the account email, or the record id for
		// federated accounts whose provider withheld the email
		user, err := store.FindByEmail(c.Request.Context(), subject)
		if stderrors.Is(err, pgx.ErrNoRows) {
			user, err = store.FindByID(c.Request.Context(), subject)
		}

		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// matches the provider profile to an existing or newly created user
// record, keyed on the provider subject id, never on email. Returns the
// token subject: the account email when known, otherwise the record id,
// so every token still names exactly one account.
func reconcileFederatedUser(ctx context.Context, store UserStore, profile goth.User) (string, error) {
	user, err := store.FindOrCreateByProvider(ctx, profile.Provider, profile.UserID, profile.Email)
	if err != nil {
		return "", err
	}

	if user.Email == nil {
		return user.ID, nil
	}

	return *user.Email, nil
}

func isValidProvider(provider string) bool {
	validProviders := []string{"google", "github"}
	return slices.Contains(validProviders, provider)
}
