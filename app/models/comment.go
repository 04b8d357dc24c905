package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var errBlankComment = errors.New("comment cannot be blank")

// NewComment builds a comment by authorID on post, stamped at now.
func NewComment(post *Post, authorID, text string, now time.Time) (*Comment, error) {
	if post == nil {
		return nil, errors.New("comment needs a parent post")
	}
	c := &Comment{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		PostID:    post.ID,
		UserID:    authorID,
		CreatedAt: now,
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return c, nil
}

// Validate enforces the struct tags and rejects whitespace-only text.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return errBlankComment
	}
	if c.CreatedAt.IsZero() {
		return errors.New("createdAt cannot be zero")
	}
	return Validate(c)
}
