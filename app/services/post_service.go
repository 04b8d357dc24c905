package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	now         func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

// CreatePost creates a new blog post owned by authorID
func (s *PostService) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		UserID:    authorID,
		CreatedAt: s.now(),
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, fail(ErrValidation, err.Error())
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	post.Comments = comments

	return post, nil
}

// ListPosts retrieves a paginated list of posts, newest first
func (s *PostService) ListPosts(ctx context.Context, page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	offset := (page - 1) * perPage
	posts, err := s.postRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	for _, post := range posts {
		comments, err := s.commentRepo.ListByPost(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments for post %s: %w", post.ID, err)
		}
		post.Comments = comments
	}

	return posts, nil
}

// EditPost applies the non-empty fields of req. Only the owner may edit.
func (s *PostService) EditPost(ctx context.Context, actorID, postID string, req models.EditPostRequest) (*models.Post, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(actorID) {
		return nil, fail(ErrForbidden, "You are not authorized to edit this post")
	}

	post.ApplyEdit(req.Title, req.Content, s.now())
	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, postNotFound()
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost deletes a post and all its comments. Only the owner may delete.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(actorID) {
		return fail(ErrForbidden, "You are not authorized to delete this post")
	}

	// The post goes first: comments left behind by a failure below are
	// unreachable, while a post stripped of its comments would not be.
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return postNotFound()
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

func (s *PostService) findPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func postNotFound() error {
	return fail(ErrNotFound, "Post not found")
}
