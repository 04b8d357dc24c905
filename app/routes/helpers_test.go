package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/app/auth"
	"quill/app/mailer"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/services"
	"quill/logging"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	handler http.Handler
	store   *repositories.Store
	tokens  *auth.TokenIssuer
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T, limiter *middleware.RateLimiter) *testApp {
	t.Helper()
	log := logging.Discard()
	store := repositories.NewBadgerStore(setupTestDB(t))

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenIssuer("routes-secret", time.Hour)
	accounts := services.NewAccountService(store.Users, hasher, tokens, auth.NewVerificationTokens(time.Hour),
		mailer.NewLogMailer(log), log, services.AccountOptions{BaseURL: "http://localhost:5000/api/users"})

	handler := SetupRoutes(Deps{
		Accounts:    accounts,
		Admins:      services.NewAdminService(store.Users, store.Admins, accounts, hasher, tokens, log),
		Posts:       services.NewPostService(store.Posts, store.Comments),
		Comments:    services.NewCommentService(store.Comments, store.Posts),
		Tokens:      tokens,
		Limiter:     limiter,
		CORSOrigins: []string{"*"},
		Log:         log,
	})
	return &testApp{handler: handler, store: store, tokens: tokens}
}

// do sends a JSON request through the full handler chain.
func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) signupAndLogin(t *testing.T, email string) (userID, token string) {
	t.Helper()
	w := a.do(t, "POST", "/api/users/signup", map[string]string{
		"name": "A", "firstName": "B", "email": email, "country": "US", "password": "pw1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, "POST", "/api/users/login", map[string]string{"email": email, "password": "pw1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.User.ID, res.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}
