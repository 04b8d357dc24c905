package services

import (
	"context"
	"errors"
	"fmt"

	"quill/app/mailer"
	"quill/app/models"
	"quill/app/repositories"
	"quill/logging"
)

// MailPolicy decides what signup does when the verification mail fails.
type MailPolicy string

const (
	// MailBestEffort logs the failure and keeps the new account.
	MailBestEffort MailPolicy = "best-effort"
	// MailRollback deletes the new account and fails the signup.
	MailRollback MailPolicy = "rollback"
)

// AccountOptions are the policy switches for registration and login.
type AccountOptions struct {
	// BaseURL prefixes verification links: <BaseURL>/verify-email/<token>.
	BaseURL              string
	RequireVerifiedEmail bool
	AutoVerify           bool
	MailPolicy           MailPolicy
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  models.LoginProfile
}

// AccountService handles registration, email verification and login.
type AccountService struct {
	users    repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	vtokens  VerificationTokenGenerator
	verifier *VerificationService
	mail     mailer.Mailer
	log      logging.Logger
	opts     AccountOptions
}

func NewAccountService(
	users repositories.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	vtokens VerificationTokenGenerator,
	mail mailer.Mailer,
	log logging.Logger,
	opts AccountOptions,
) *AccountService {
	if opts.MailPolicy == "" {
		opts.MailPolicy = MailBestEffort
	}
	return &AccountService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		vtokens:  vtokens,
		verifier: NewVerificationService(users),
		mail:     mail,
		log:      log.With("service", "account"),
		opts:     opts,
	}
}

// Signup registers a new user and sends the verification mail.
func (s *AccountService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fail(ErrConflict, "User already exists.")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		FirstName:    req.FirstName,
		Email:        email,
		Country:      req.Country,
		PasswordHash: hash,
	}
	user.BeforeCreate()
	if s.opts.AutoVerify {
		user.IsVerified = true
	} else {
		token, expiry := s.vtokens.Generate()
		user.SetVerificationToken(token, expiry)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fail(ErrConflict, "User already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if user.IsVerified {
		return user, nil
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.log.Error(ctx, "verification mail failed", "user_id", user.ID, "error", err)
		if s.opts.MailPolicy == MailRollback {
			if derr := s.users.Delete(ctx, user.ID); derr != nil {
				s.log.Error(ctx, "rollback of unverified user failed", "user_id", user.ID, "error", derr)
			}
			return nil, fmt.Errorf("send verification mail: %w", err)
		}
	}
	return user, nil
}

// VerificationLink is the URL mailed to a new user.
func (s *AccountService) VerificationLink(token string) string {
	return fmt.Sprintf("%s/verify-email/%s", s.opts.BaseURL, token)
}

func (s *AccountService) sendVerification(ctx context.Context, user *models.User) error {
	msg := mailer.VerificationMessage(user.Email, user.FirstName, s.VerificationLink(user.VerificationToken))
	return s.mail.Send(ctx, msg)
}

// VerifyEmail consumes a verification token.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	return s.verifier.Consume(ctx, token)
}

// Authenticate checks an email and password pair. Unknown emails and wrong
// passwords fail the same way. When verified email is required, an
// unverified account is refused after its password checks out. Both the
// user and the admin login go through here.
func (s *AccountService) Authenticate(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	invalid := fail(ErrInvalidCredentials, "Invalid email or password.")
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, invalid
	}
	if s.opts.RequireVerifiedEmail && !user.IsVerified {
		return nil, fail(ErrForbidden, "Please verify your email before logging in.")
	}
	return user, nil
}

// Login authenticates the user and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, User: user.Profile()}, nil
}
