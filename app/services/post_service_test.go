package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quill/app/models"
	"quill/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// failingDeletes is a post store whose deletes always fail.
type failingDeletes struct {
	*mock.PostRepository
}

func (failingDeletes) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func TestPostService(t *testing.T) {
	env := newTestEnv(t, AccountOptions{})
	service := env.postSvc
	ctx := context.Background()

	post, err := service.CreatePost(ctx, "owner", models.CreatePostRequest{Title: "Test Post", Content: "Body"})
	require.NoError(t, err)

	t.Run("create post", func(t *testing.T) {
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "owner", post.UserID)
		assert.False(t, post.CreatedAt.IsZero())
	})

	t.Run("get post", func(t *testing.T) {
		got, err := service.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Test Post", got.Title)
		assert.Empty(t, got.Comments)
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := service.GetPost(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner edits only given fields", func(t *testing.T) {
		edited, err := service.EditPost(ctx, "owner", post.ID, models.EditPostRequest{Title: strPtr("Updated Title"), Content: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", edited.Title)
		assert.Equal(t, "Body", edited.Content)
		assert.False(t, edited.UpdatedAt.Before(edited.CreatedAt))

		stored, err := env.posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", stored.Title)
	})

	t.Run("non-owner cannot edit", func(t *testing.T) {
		before, err := env.posts.GetByID(ctx, post.ID)
		require.NoError(t, err)

		_, err = service.EditPost(ctx, "intruder", post.ID, models.EditPostRequest{Title: strPtr("Hacked")})
		assert.ErrorIs(t, err, ErrForbidden)

		after, err := env.posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("admins get no ownership override", func(t *testing.T) {
		env.makeAdmin(t, "admin-user")
		_, err := service.EditPost(ctx, "admin-user", post.ID, models.EditPostRequest{Title: strPtr("Admin edit")})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("edit missing post", func(t *testing.T) {
		_, err := service.EditPost(ctx, "owner", "missing", models.EditPostRequest{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := service.DeletePost(ctx, "intruder", post.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = env.posts.GetByID(ctx, post.ID)
		assert.NoError(t, err)
	})

	t.Run("owner deletes post and its comments", func(t *testing.T) {
		_, err := env.commentSvc.AddComment(ctx, "reader", post.ID, models.CommentRequest{Comment: "Nice"})
		require.NoError(t, err)

		require.NoError(t, service.DeletePost(ctx, "owner", post.ID))

		_, err = service.GetPost(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, env.comments.Count())

		assert.ErrorIs(t, service.DeletePost(ctx, "owner", post.ID), ErrNotFound)
	})
}

func TestPostServiceList(t *testing.T) {
	env := newTestEnv(t, AccountOptions{})
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		i := i
		env.postSvc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := env.postSvc.CreatePost(ctx, "owner", models.CreatePostRequest{Title: "List Test Post", Content: "Content"})
		require.NoError(t, err)
	}

	posts, err := env.postSvc.ListPosts(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))

	posts, err = env.postSvc.ListPosts(ctx, 2, 3)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = env.postSvc.ListPosts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
}

func TestPostServiceValidation(t *testing.T) {
	env := newTestEnv(t, AccountOptions{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreatePostRequest
	}{
		{"empty title", models.CreatePostRequest{Content: "Valid content"}},
		{"empty content", models.CreatePostRequest{Title: "Valid Title"}},
		{"title too long", models.CreatePostRequest{Title: strings.Repeat("a", 201), Content: "Valid content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.postSvc.CreatePost(ctx, "owner", tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestDeletePostKeepsCommentsWhenPostDeleteFails(t *testing.T) {
	env := newTestEnv(t, AccountOptions{})
	ctx := context.Background()
	service := NewPostService(failingDeletes{env.posts}, env.comments)

	post, err := service.CreatePost(ctx, "owner", models.CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	_, err = env.commentSvc.AddComment(ctx, "reader", post.ID, models.CommentRequest{Comment: "Nice"})
	require.NoError(t, err)

	err = service.DeletePost(ctx, "owner", post.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = service.GetPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, env.comments.Count())
}
