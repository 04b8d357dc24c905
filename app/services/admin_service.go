package services

import (
	"context"
	"errors"
	"fmt"

	"quill/app/models"
	"quill/app/repositories"
	"quill/logging"
)

// AdminService manages admin membership. The admins collection is the only
// record of who is an administrator.
type AdminService struct {
	users    repositories.UserRepository
	admins   repositories.AdminRepository
	accounts *AccountService
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      logging.Logger
}

func NewAdminService(
	users repositories.UserRepository,
	admins repositories.AdminRepository,
	accounts *AccountService,
	hasher PasswordHasher,
	tokens TokenIssuer,
	log logging.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		admins:   admins,
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.With("service", "admin"),
	}
}

// IsAdmin reports whether an admin record exists for userID.
func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	_, err := s.admins.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	return true, nil
}

func (s *AdminService) requireAdmin(ctx context.Context, actorID string) error {
	ok, err := s.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fail(ErrForbidden, "Access denied. Not an admin")
	}
	return nil
}

// Login authenticates like a user login, then requires admin membership.
func (s *AdminService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.accounts.Authenticate(ctx, req)
	if err != nil {
		return "", err
	}
	if err := s.requireAdmin(ctx, user.ID); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Promote makes targetUserID an admin. The bool is false when the target
// already was one, in which case the existing record is returned.
func (s *AdminService) Promote(ctx context.Context, actorID, targetUserID string) (*models.Admin, bool, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, false, err
	}
	if targetUserID == "" {
		return nil, false, fail(ErrValidation, "userId is required")
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, false, fail(ErrNotFound, "User not found")
		}
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	admin, created, err := s.ensureAdmin(ctx, targetUserID)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.Info(ctx, "user promoted to admin", "actor_id", actorID, "user_id", targetUserID)
	}
	return admin, created, nil
}

func (s *AdminService) ensureAdmin(ctx context.Context, userID string) (*models.Admin, bool, error) {
	admin := models.NewAdmin(userID)
	err := s.admins.Create(ctx, admin)
	if err == nil {
		return admin, true, nil
	}
	if !errors.Is(err, repositories.ErrDuplicate) {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}

	existing, err := s.admins.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("get admin: %w", err)
	}
	return existing, false, nil
}

// ListUsers returns every registered user. Admin only.
func (s *AdminService) ListUsers(ctx context.Context, actorID string) ([]models.PublicUser, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// SeedAdmin creates a verified user for req when the email is unknown and
// makes that user an admin. Running it again changes nothing.
func (s *AdminService) SeedAdmin(ctx context.Context, req models.SignupRequest) (*models.Admin, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		hash, herr := s.hasher.Hash(req.Password)
		if herr != nil {
			return nil, fmt.Errorf("hash password: %w", herr)
		}
		user = &models.User{
			Name:         req.Name,
			FirstName:    req.FirstName,
			Email:        req.Email,
			Country:      req.Country,
			PasswordHash: hash,
			IsVerified:   true,
		}
		user.BeforeCreate()
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create admin user: %w", err)
		}
		s.log.Info(ctx, "admin user created", "email", user.Email)
	case err != nil:
		return nil, fmt.Errorf("look up email: %w", err)
	}

	admin, _, err := s.ensureAdmin(ctx, user.ID)
	return admin, err
}
