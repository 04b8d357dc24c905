package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"quill/app/auth"
	"quill/app/mailer"
	"quill/app/models"
	"quill/app/repositories/mock"
	"quill/logging"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type testEnv struct {
	users      *mock.UserRepository
	admins     *mock.AdminRepository
	posts      *mock.PostRepository
	comments   *mock.CommentRepository
	mail       *fakeMailer
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenIssuer
	vtokens    *auth.VerificationTokens
	accounts   *AccountService
	admin      *AdminService
	postSvc    *PostService
	commentSvc *CommentService
}

func newTestEnv(t *testing.T, opts AccountOptions) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    mock.NewUserRepository(),
		admins:   mock.NewAdminRepository(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
		mail:     &fakeMailer{},
		hasher:   auth.NewPasswordHasher(bcrypt.MinCost),
		tokens:   auth.NewTokenIssuer("test-secret", time.Hour),
		vtokens:  auth.NewVerificationTokens(time.Hour),
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:5000/api/users"
	}
	log := logging.Discard()
	env.accounts = NewAccountService(env.users, env.hasher, env.tokens, env.vtokens, env.mail, log, opts)
	env.admin = NewAdminService(env.users, env.admins, env.accounts, env.hasher, env.tokens, log)
	env.postSvc = NewPostService(env.posts, env.comments)
	env.commentSvc = NewCommentService(env.comments, env.posts)
	return env
}

func signupRequest(email string) models.SignupRequest {
	return models.SignupRequest{Name: "A", FirstName: "B", Email: email, Country: "US", Password: "pw1"}
}

func (env *testEnv) signup(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := env.accounts.Signup(context.Background(), signupRequest(email))
	require.NoError(t, err)
	return user
}

func (env *testEnv) makeAdmin(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, env.admins.Create(context.Background(), models.NewAdmin(userID)))
}
