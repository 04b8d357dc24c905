package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

// VerificationService confirms email addresses.
type VerificationService struct {
	users repositories.UserRepository
	now   func() time.Time
}

func NewVerificationService(users repositories.UserRepository) *VerificationService {
	return &VerificationService{users: users, now: time.Now}
}

// Consume marks the user holding token as verified and clears the token.
// Unknown, already used and expired tokens all fail with
// ErrInvalidOrExpiredToken.
func (s *VerificationService) Consume(ctx context.Context, token string) (*models.User, error) {
	invalid := fail(ErrInvalidOrExpiredToken, "Invalid or expired token.")

	user, err := s.users.GetByVerificationToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("find user by token: %w", err)
	}

	if !user.VerificationPending(token, s.now()) {
		return nil, invalid
	}

	user.MarkVerified()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("mark user verified: %w", err)
	}
	return user, nil
}
