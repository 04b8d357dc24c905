package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	now         func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// AddComment attaches a comment by actorID to an existing post. Anyone
// authenticated may comment.
func (s *CommentService) AddComment(ctx context.Context, actorID, postID string, req models.CommentRequest) (*models.Comment, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	post, err := s.requirePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := models.NewComment(post, actorID, req.Comment, s.now())
	if err != nil {
		return nil, err
	}
	if err := comment.Validate(); err != nil {
		return nil, fail(ErrValidation, err.Error())
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	if _, err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) requirePost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}
