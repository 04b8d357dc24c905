package repositories

import (
	"testing"
	"time"

	"quill/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComment(postID, text string, createdAt time.Time) *models.Comment {
	c, _ := models.NewComment(&models.Post{ID: postID}, "commenter", text, createdAt)
	return c
}

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerCommentRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTestComment("post-a", "second", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newTestComment("post-a", "first", base)))
	require.NoError(t, repo.Create(ctx, newTestComment("post-b", "other", base)))

	t.Run("list by post returns oldest first", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, "post-a")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Text)
		assert.Equal(t, "second", comments[1].Text)
	})

	t.Run("list for post without comments", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, "post-z")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("delete by post leaves other posts alone", func(t *testing.T) {
		require.NoError(t, repo.DeleteByPost(ctx, "post-a"))

		comments, err := repo.ListByPost(ctx, "post-a")
		require.NoError(t, err)
		assert.Empty(t, comments)

		comments, err = repo.ListByPost(ctx, "post-b")
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}
