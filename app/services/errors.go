package services

import (
	"errors"

	"quill/app/models"
)

// Error kinds. Every failure a service reports to a caller unwraps to one
// of these; anything else is an internal error.
var (
	ErrValidation            = errors.New("validation failed")
	ErrConflict              = errors.New("conflict")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// Error pairs an error kind with the message shown to the client.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func fail(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// validate runs struct validation and reports failures as ErrValidation.
func validate(v any) error {
	if err := models.Validate(v); err != nil {
		return fail(ErrValidation, err.Error())
	}
	return nil
}
