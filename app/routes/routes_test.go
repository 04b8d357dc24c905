package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/app/middleware"
	"quill/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginForeignEdit(t *testing.T) {
	app := setupTestRouter(t, nil)

	w := app.do(t, "POST", "/api/users/signup", map[string]string{
		"name": "A", "firstName": "B", "email": "a@x.com", "country": "US", "password": "pw1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = app.do(t, "POST", "/api/users/login", map[string]string{"email": "a@x.com", "password": "pw1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	subject, err := app.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, subject)

	// Post 123 belongs to someone else.
	foreign := &models.Post{ID: "123", Title: "Theirs", Content: "Not yours", UserID: "someone-else", CreatedAt: time.Now()}
	require.NoError(t, app.store.Posts.Create(context.Background(), foreign))

	w = app.do(t, "PUT", "/api/posts/123", map[string]string{"title": "Mine now"}, login.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := app.store.Posts.GetByID(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "Theirs", stored.Title)
}

func TestVerifyEmailRoute(t *testing.T) {
	app := setupTestRouter(t, nil)
	userID, _ := app.signupAndLogin(t, "verify@x.com")

	user, err := app.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, user.VerificationToken)

	w := app.do(t, "GET", "/api/users/verify-email/"+user.VerificationToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "GET", "/api/users/verify-email/"+user.VerificationToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	user, err = app.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestPostAndCommentRoutes(t *testing.T) {
	app := setupTestRouter(t, nil)
	_, ownerToken := app.signupAndLogin(t, "owner@x.com")
	_, readerToken := app.signupAndLogin(t, "reader@x.com")

	w := app.do(t, "POST", "/api/posts/create", map[string]string{"title": "Hello", "content": "World"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "POST", "/api/posts/create", map[string]string{"title": "Hello", "content": "World"}, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "POST", "/api/posts/create", map[string]string{"title": "Hello", "content": "World"}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Post models.Post `json:"post"`
	}
	decode(t, w, &created)
	postID := created.Post.ID

	w = app.do(t, "POST", "/api/comments/"+postID, map[string]string{"comment": "First!"}, readerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, "POST", "/api/comments/missing", map[string]string{"comment": "Lost"}, readerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, "GET", "/api/posts/"+postID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var shown models.Post
	decode(t, w, &shown)
	require.Len(t, shown.Comments, 1)
	assert.Equal(t, "First!", shown.Comments[0].Text)

	w = app.do(t, "GET", "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Posts []models.Post `json:"posts"`
		Page  int           `json:"page"`
	}
	decode(t, w, &listed)
	assert.Equal(t, 1, listed.Page)
	assert.Len(t, listed.Posts, 1)

	w = app.do(t, "DELETE", "/api/posts/"+postID, nil, readerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, "PUT", "/api/posts/"+postID, map[string]string{"content": "Everyone"}, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "DELETE", "/api/posts/"+postID, nil, ownerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "GET", "/api/comments/"+postID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	comments, err := app.store.Comments.ListByPost(context.Background(), postID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestAdminRoutes(t *testing.T) {
	app := setupTestRouter(t, nil)
	bossID, _ := app.signupAndLogin(t, "boss@x.com")
	plebID, plebToken := app.signupAndLogin(t, "pleb@x.com")
	require.NoError(t, app.store.Admins.Create(context.Background(), models.NewAdmin(bossID)))

	w := app.do(t, "POST", "/api/admins/add", map[string]string{"userId": plebID}, plebToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	_, err := app.store.Admins.GetByUserID(context.Background(), plebID)
	assert.Error(t, err)

	w = app.do(t, "GET", "/api/admins/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, "POST", "/api/admins/login", map[string]string{"email": "boss@x.com", "password": "pw1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)

	w = app.do(t, "POST", "/api/admins/add", map[string]string{"userId": plebID}, login.Token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, "GET", "/api/admins/users", nil, plebToken)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.PublicUser
	decode(t, w, &users)
	assert.Len(t, users, 2)
}

func TestInfrastructureRoutes(t *testing.T) {
	app := setupTestRouter(t, middleware.NewRateLimiter(3, time.Hour))

	t.Run("health", func(t *testing.T) {
		w := app.do(t, "GET", "/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("unknown route is JSON 404", func(t *testing.T) {
		w := app.do(t, "GET", "/api/nope", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/posts/create", nil)
		req.Header.Set("Origin", "https://blog.example.com")
		w := httptest.NewRecorder()
		app.handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rate limited", func(t *testing.T) {
		// Preflight is answered before the limiter, so two requests were counted.
		w := app.do(t, "GET", "/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.do(t, "GET", "/health", nil, "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})
}
