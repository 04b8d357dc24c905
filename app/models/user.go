package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NormalizeEmail lowercases and trims an address so uniqueness checks
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return Validate(u)
}

// BeforeCreate assigns an id and creation time and normalizes the email.
func (u *User) BeforeCreate() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.Email = NormalizeEmail(u.Email)
}

// SetVerificationToken stores a pending verification token.
func (u *User) SetVerificationToken(token string, expiry time.Time) {
	u.VerificationToken = token
	u.TokenExpiry = &expiry
}

// VerificationPending reports whether token matches the stored token and
// has not yet expired at now.
func (u *User) VerificationPending(token string, now time.Time) bool {
	if u.VerificationToken == "" || u.VerificationToken != token {
		return false
	}
	return u.TokenExpiry != nil && u.TokenExpiry.After(now)
}

// MarkVerified flips the verified flag and clears the token fields.
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.VerificationToken = ""
	u.TokenExpiry = nil
}

// Public returns the client-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		FirstName:  u.FirstName,
		Email:      u.Email,
		Country:    u.Country,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// Profile returns the summary sent back on login.
func (u *User) Profile() LoginProfile {
	return LoginProfile{ID: u.ID, Name: u.Name, Email: u.Email}
}
