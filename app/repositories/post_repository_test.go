package repositories

import (
	"testing"
	"time"

	"quill/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("create and get post", func(t *testing.T) {
		post := newTestPost("owner-1", "First", base)
		require.NoError(t, repo.Create(ctx, post))

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", got.Title)
		assert.Equal(t, "owner-1", got.UserID)
		assert.True(t, base.Equal(got.CreatedAt))
	})

	t.Run("update post", func(t *testing.T) {
		post := newTestPost("owner-1", "Original", base.Add(time.Minute))
		require.NoError(t, repo.Create(ctx, post))

		title := "Updated"
		post.ApplyEdit(&title, nil, base.Add(time.Hour))
		require.NoError(t, repo.Update(ctx, post))

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.Title)
		assert.Equal(t, "content of Original", got.Content)
		assert.True(t, base.Add(time.Hour).Equal(got.UpdatedAt))
	})

	t.Run("update missing post", func(t *testing.T) {
		err := repo.Update(ctx, &models.Post{ID: "missing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete post", func(t *testing.T) {
		post := newTestPost("owner-2", "Doomed", base.Add(2*time.Minute))
		require.NoError(t, repo.Create(ctx, post))

		require.NoError(t, repo.Delete(ctx, post.ID))
		_, err := repo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, post.ID), ErrNotFound)
	})
}

func TestPostRepositoryListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, repo.Create(ctx, newTestPost("owner", title, base.Add(time.Duration(i)*time.Hour))))
	}

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "newest", page[0].Title)
	assert.Equal(t, "middle", page[1].Title)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "oldest", page[0].Title)

	page, err = repo.List(ctx, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}
