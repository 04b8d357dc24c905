package services

import "time"

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// VerificationTokenGenerator mints email verification tokens.
type VerificationTokenGenerator interface {
	Generate() (token string, expiry time.Time)
}
