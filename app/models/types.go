package models

import "time"

// User is a registered account. PasswordHash and VerificationToken are
// persisted but never sent to clients; use Public for responses.
type User struct {
	ID                string     `json:"id" bson:"_id" validate:"required"`
	Name              string     `json:"name" bson:"name" validate:"required,max=100"`
	FirstName         string     `json:"firstName" bson:"firstName" validate:"required,max=100"`
	Email             string     `json:"email" bson:"email" validate:"required,email"`
	Country           string     `json:"country" bson:"country" validate:"required,max=100"`
	PasswordHash      string     `json:"password" bson:"password" validate:"required"`
	IsVerified        bool       `json:"isVerified" bson:"isVerified"`
	VerificationToken string     `json:"verificationToken,omitempty" bson:"verificationToken,omitempty"`
	TokenExpiry       *time.Time `json:"tokenExpiry,omitempty" bson:"tokenExpiry,omitempty"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt" validate:"required"`
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FirstName  string    `json:"firstName"`
	Email      string    `json:"email"`
	Country    string    `json:"country"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LoginProfile is the short user summary returned with a login token.
type LoginProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Admin marks a user as administrator. One record per user.
type Admin struct {
	ID        string    `json:"id" bson:"_id" validate:"required"`
	UserID    string    `json:"user" bson:"user" validate:"required"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" validate:"required"`
}

// Post represents a blog post with comments.
type Post struct {
	ID        string     `json:"id" bson:"_id" validate:"required"`
	Title     string     `json:"title" bson:"title" validate:"required,max=200"`
	Content   string     `json:"content" bson:"content" validate:"required"`
	UserID    string     `json:"user" bson:"user" validate:"required"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt" validate:"required"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
	Comments  []*Comment `json:"comments,omitempty" bson:"-" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        string    `json:"id" bson:"_id" validate:"required"`
	Text      string    `json:"comment" bson:"comment" validate:"required,max=1000"`
	PostID    string    `json:"post" bson:"post" validate:"required"`
	UserID    string    `json:"user" bson:"user" validate:"required"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" validate:"required"`
}
