package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := Validate(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("createdAt cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
}

// OwnedBy reports whether userID is the post's owner.
func (p *Post) OwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}

// ApplyEdit overwrites title and content only when a non-empty value is
// given, and refreshes UpdatedAt.
func (p *Post) ApplyEdit(title, content *string, now time.Time) {
	if title != nil && *title != "" {
		p.Title = *title
	}
	if content != nil && *content != "" {
		p.Content = *content
	}
	p.UpdatedAt = now
}
