package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quill/app/auth"
	"quill/app/mailer"
	"quill/app/middleware"
	"quill/app/models"
	"quill/app/repositories/mock"
	"quill/app/services"
	"quill/logging"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testControllers struct {
	users    *mock.UserRepository
	admins   *mock.AdminRepository
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	accounts *services.AccountService
	adminSvc *services.AdminService
	postSvc  *services.PostService

	user    *UserController
	post    *PostController
	comment *CommentController
	admin   *AdminController
}

func setupControllers(t *testing.T) *testControllers {
	t.Helper()
	log := logging.Discard()
	tc := &testControllers{
		users:    mock.NewUserRepository(),
		admins:   mock.NewAdminRepository(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
	}
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenIssuer("controller-secret", time.Hour)
	tc.accounts = services.NewAccountService(tc.users, hasher, tokens, auth.NewVerificationTokens(time.Hour),
		mailer.NewLogMailer(log), log, services.AccountOptions{BaseURL: "http://localhost:5000/api/users"})
	tc.adminSvc = services.NewAdminService(tc.users, tc.admins, tc.accounts, hasher, tokens, log)
	tc.postSvc = services.NewPostService(tc.posts, tc.comments)

	tc.user = NewUserController(tc.accounts, log)
	tc.post = NewPostController(tc.postSvc, log)
	tc.comment = NewCommentController(services.NewCommentService(tc.comments, tc.posts), log)
	tc.admin = NewAdminController(tc.adminSvc, log)
	return tc
}

func (tc *testControllers) signup(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := tc.accounts.Signup(context.Background(), models.SignupRequest{
		Name: "A", FirstName: "B", Email: email, Country: "US", Password: "pw1",
	})
	require.NoError(t, err)
	return user
}

func (tc *testControllers) createPost(t *testing.T, ownerID string) *models.Post {
	t.Helper()
	post, err := tc.postSvc.CreatePost(context.Background(), ownerID, models.CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	return post
}

// request builds a request with optional route vars and an authenticated user.
func request(method, path, body, userID string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
