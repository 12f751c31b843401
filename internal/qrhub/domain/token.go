package domain

import (
	"crypto/subtle"
	"errors"
	"time"
)

var (
	ErrTokenNotPending = errors.New("domain: no token pending")
	ErrTokenExpired    = errors.New("domain: token expired")
	ErrTokenMismatch   = errors.New("domain: token mismatch")
)

// PendingToken is a one-time code waiting to be presented, used for both
// email verification and password reset.
type PendingToken struct {
	Code      string
	ExpiresAt time.Time
}

// Check validates a presented code. A nil or empty token is NotPending;
// expiry wins over a wrong code so callers never learn whether an expired
// code was correct.
func (t *PendingToken) Check(code string, now time.Time) error {
	if t == nil || t.Code == "" {
		return ErrTokenNotPending
	}
	if !now.Before(t.ExpiresAt) {
		return ErrTokenExpired
	}
	if subtle.ConstantTimeCompare([]byte(t.Code), []byte(code)) != 1 {
		return ErrTokenMismatch
	}
	return nil
}

// Expired reports whether the token can no longer be redeemed.
func (t *PendingToken) Expired(now time.Time) bool {
	return t != nil && !now.Before(t.ExpiresAt)
}

// tokenFromFields rebuilds a token from the flat document fields. Expiry is
// stored in unix milliseconds.
func tokenFromFields(code string, expiresMillis int64) *PendingToken {
	if code == "" {
		return nil
	}
	return &PendingToken{Code: code, ExpiresAt: time.UnixMilli(expiresMillis).UTC()}
}

func tokenToFields(t *PendingToken) (string, int64) {
	if t == nil {
		return "", 0
	}
	return t.Code, t.ExpiresAt.UnixMilli()
}
