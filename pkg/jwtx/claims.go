package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a session assertion stays valid. There is no
// refresh or revocation, expiry is the only way a session ends.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Claims are the session claims. Subject is the account id.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
}

// NewSessionClaims builds claims issued at now and expiring after ttl.
func NewSessionClaims(subject, email string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Email: email,
	}
}

// ValidateExpiry reports ErrExpired once now is past exp. A token without
// exp is rejected as invalid, sessions are always time bound.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
