package models

// SignupRequest is the body of POST /users/signup.
type SignupRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Country   string `json:"country" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest is shared by user and admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// EditPostRequest carries optional fields; nil or empty keeps the stored value.
type EditPostRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

type PromoteRequest struct {
	UserID string `json:"userId" validate:"required"`
}
