package models

import (
	"time"

	"github.com/google/uuid"
)

// NewAdmin builds an admin record for userID.
func NewAdmin(userID string) *Admin {
	return &Admin{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

func (a *Admin) Validate() error {
	return Validate(a)
}
