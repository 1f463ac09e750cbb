package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"codeberg.org/bookshelf/server/bookshelf/users"
	"codeberg.org/bookshelf/server/internal/auth"
	"codeberg.org/bookshelf/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory UserStore with the same contract as the pgx repository
type fakeUserStore struct {
	mu          sync.Mutex
	users       []*users.User
	unavailable bool
}

var errStoreUnavailable = errors.New("store unavailable")

func (s *fakeUserStore) Create(_ context.Context, email, passwordHash string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unavailable {
		return nil, errStoreUnavailable
	}

	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			return nil, users.ErrEmailTaken
		}
	}

	user := &users.User{
		ID:           uuid.NewString(),
		Email:        &email,
		PasswordHash: &passwordHash,
	}
	s.users = append(s.users, user)

	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unavailable {
		return nil, errStoreUnavailable
	}

	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}

	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) FindByID(_ context.Context, userID string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unavailable {
		return nil, errStoreUnavailable
	}

	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}

	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) FindOrCreateByProvider(_ context.Context, provider, providerID, email string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unavailable {
		return nil, errStoreUnavailable
	}

	for _, u := range s.users {
		if u.Provider != nil && *u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			return u, nil
		}
	}

	// mirror the unique email constraint of the real store
	if email != "" {
		for _, u := range s.users {
			if u.Email != nil && *u.Email == email {
				return nil, users.ErrEmailTaken
			}
		}
	}

	user := &users.User{
		ID:         uuid.NewString(),
		Provider:   &provider,
		ProviderID: &providerID,
	}
	if email != "" {
		user.Email = &email
	}
	s.users = append(s.users, user)

	return user, nil
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-key-for-testing")
	require.NoError(t, err)

	return tokens
}

func newAuthRouter(t *testing.T, store UserStore, tokens *auth.TokenService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{FrontendURL: "http://localhost:3000"}

	router := gin.New()
	router.POST("/api/register", RegisterHandler(store))
	router.POST("/api/login", LoginHandler(store, tokens))
	router.GET("/api/me", auth.Middleware(tokens), CurrentUserHandler(store))
	router.GET("/auth/:provider", BeginAuthHandler())
	router.GET("/auth/:provider/callback", CallbackHandler(store, tokens, cfg))

	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body) //nolint:errcheck // test fixture

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRegister_Success(t *testing.T) {
	store := &fakeUserStore{}
	router := newAuthRouter(t, store, newTestTokenService(t))

	w := postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "pw1234"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, store.count())

	// the stored credential must be a hash, never the plaintext
	user, err := store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "pw1234", *user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := &fakeUserStore{}
	router := newAuthRouter(t, store, newTestTokenService(t))

	first := postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "pw1234"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "other-pass"})

	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "conflict")
	assert.Equal(t, 1, store.count(), "duplicate register must not create a second record")
}

func TestRegister_MissingFields(t *testing.T) {
	store := &fakeUserStore{}
	router := newAuthRouter(t, store, newTestTokenService(t))

	for _, body := range []gin.H{
		{},
		{"email": "a@x.com"},
		{"password": "pw1234"},
		{"email": "not-an-email", "password": "pw1234"},
	} {
		w := postJSON(router, "/api/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v must be rejected", body)
	}

	assert.Equal(t, 0, store.count())
}

func TestRegister_StoreUnavailable(t *testing.T) {
	store := &fakeUserStore{unavailable: true}
	router := newAuthRouter(t, store, newTestTokenService(t))

	w := postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "pw1234"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, store.count())
}

func TestLogin_Success(t *testing.T) {
	store := &fakeUserStore{}
	tokens := newTestTokenService(t)
	router := newAuthRouter(t, store, tokens)

	require.Equal(t, http.StatusCreated,
		postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "pw1234"}).Code)

	w := postJSON(router, "/api/login", gin.H{"email": "a@x.com", "password": "pw1234"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := &fakeUserStore{}
	router := newAuthRouter(t, store, newTestTokenService(t))

	require.Equal(t, http.StatusCreated,
		postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "pw1234"}).Code)

	w := postJSON(router, "/api/login", gin.H{"email": "a@x.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	router := newAuthRouter(t, &fakeUserStore{}, newTestTokenService(t))

	w := postJSON(router, "/api/login", gin.H{"email": "nobody@x.com", "password": "pw1234"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_FederatedOnlyAccount(t *testing.T) {
	store := &fakeUserStore{}
	router := newAuthRouter(t, store, newTestTokenService(t))

	_, err := store.FindOrCreateByProvider(context.Background(), "google", "sub-1", "fed@x.com")
	require.NoError(t, err)

	// an account without a password hash can never pass local login
	w := postJSON(router, "/api/login", gin.H{"email": "fed@x.com", "password": "anything"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_StoreUnavailable(t *testing.T) {
	store := &fakeUserStore{unavailable: true}
	router := newAuthRouter(t, store, newTestTokenService(t))

	w := postJSON(router, "/api/login", gin.H{"email": "a@x.com", "password": "pw1234"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCurrentUser(t *testing.T) {
	store := &fakeUserStore{}
	tokens := newTestTokenService(t)
	router := newAuthRouter(t, store, tokens)

	require.Equal(t, http.StatusCreated,
		postJSON(router, "/api/register", gin.H{"email": "a@x.com", "password": "pw1234"}).Code)

	token, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestBeginAuth_InvalidProvider(t *testing.T) {
	router := newAuthRouter(t, &fakeUserStore{}, newTestTokenService(t))

	req := httptest.NewRequest(http.MethodGet, "/auth/myspace", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallback_ExchangeFailureRedirects(t *testing.T) {
	router := newAuthRouter(t, &fakeUserStore{}, newTestTokenService(t))

	// no handshake session exists, so the code exchange must fail;
	// the client gets a redirect to the login page, never a JSON error
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "http://localhost:3000/login", w.Header().Get("Location"))
}

func TestReconcileFederatedUser_CreatesOnce(t *testing.T) {
	store := &fakeUserStore{}
	profile := goth.User{Provider: "google", UserID: "sub-42", Email: "fed@x.com"}

	subject, err := reconcileFederatedUser(context.Background(), store, profile)
	require.NoError(t, err)
	assert.Equal(t, "fed@x.com", subject)
	assert.Equal(t, 1, store.count())

	// second callback for the same subject id reuses the record
	subject, err = reconcileFederatedUser(context.Background(), store, profile)
	require.NoError(t, err)
	assert.Equal(t, "fed@x.com", subject)
	assert.Equal(t, 1, store.count(), "record count must be unchanged")
}

func TestReconcileFederatedUser_MissingEmail(t *testing.T) {
	store := &fakeUserStore{}
	profile := goth.User{Provider: "google", UserID: "sub-noemail"}

	subject, err := reconcileFederatedUser(context.Background(), store, profile)

	// accounts without a provider email are still created, keyed on
	// the federated id alone; the record id becomes the token subject
	require.NoError(t, err)
	require.Equal(t, 1, store.count())

	user, lookupErr := store.FindByID(context.Background(), subject)
	require.NoError(t, lookupErr)
	assert.Nil(t, user.Email)
}

func TestReconcileFederatedUser_MissingEmailDistinctSubjects(t *testing.T) {
	store := &fakeUserStore{}

	aliceSubject, err := reconcileFederatedUser(context.Background(), store,
		goth.User{Provider: "google", UserID: "alice-sub"})
	require.NoError(t, err)

	bobSubject, err := reconcileFederatedUser(context.Background(), store,
		goth.User{Provider: "google", UserID: "bob-sub"})
	require.NoError(t, err)

	// a token must name exactly one account even when the provider
	// withheld both emails
	assert.NotEmpty(t, aliceSubject)
	assert.NotEmpty(t, bobSubject)
	assert.NotEqual(t, aliceSubject, bobSubject)
	assert.Equal(t, 2, store.count())
}

func TestCurrentUser_FederatedWithoutEmail(t *testing.T) {
	store := &fakeUserStore{}
	tokens := newTestTokenService(t)
	router := newAuthRouter(t, store, tokens)

	subject, err := reconcileFederatedUser(context.Background(), store,
		goth.User{Provider: "google", UserID: "sub-noemail"})
	require.NoError(t, err)

	token, err := tokens.Issue(subject)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// an id subject resolves through FindByID
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), subject)
}

func TestReconcileFederatedUser_NeverMergesByEmail(t *testing.T) {
	store := &fakeUserStore{}

	_, err := reconcileFederatedUser(context.Background(), store,
		goth.User{Provider: "google", UserID: "sub-1", Email: "same@x.com"})
	require.NoError(t, err)

	// the same email from a different provider subject must not be
	// silently attached to the existing account; the store constraint
	// rejects it and the callback turns that into a failure redirect
	_, err = reconcileFederatedUser(context.Background(), store,
		goth.User{Provider: "github", UserID: "sub-1", Email: "same@x.com"})

	assert.Error(t, err)
	assert.Equal(t, 1, store.count())
}
