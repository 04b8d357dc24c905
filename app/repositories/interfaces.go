package repositories

import (
	"context"
	"errors"

	"quill/app/models"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would break a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the interface for user data access.
// Create and Update return ErrDuplicate when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// AdminRepository stores admin membership, at most one record per user.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUserID(ctx context.Context, userID string) (*models.Admin, error)
	List(ctx context.Context) ([]*models.Admin, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	DeleteByPost(ctx context.Context, postID string) error
}

// Store groups the repositories a backend provides.
type Store struct {
	Users    UserRepository
	Admins   AdminRepository
	Posts    PostRepository
	Comments CommentRepository
}
