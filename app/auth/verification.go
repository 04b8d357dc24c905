package auth

import (
	"time"

	"github.com/google/uuid"
)

// DefaultVerificationTTL is how long an email verification link works.
const DefaultVerificationTTL = time.Hour

// VerificationTokens mints single-use email verification tokens.
type VerificationTokens struct {
	ttl time.Duration
	Now func() time.Time
}

func NewVerificationTokens(ttl time.Duration) *VerificationTokens {
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	return &VerificationTokens{ttl: ttl, Now: time.Now}
}

// Generate returns a random token and its expiry.
func (v *VerificationTokens) Generate() (string, time.Time) {
	return uuid.NewString(), v.Now().Add(v.ttl)
}
