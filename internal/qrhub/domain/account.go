package domain

import (
	"strings"
	"time"
)

const KindAccount = "account"

// Account is a user record. ID equals Email and doubles as the partition
// key. The flat verification/reset fields keep documents readable by the
// older backend; use the Pending* accessors instead of touching them.
type Account struct {
	ID       string `json:"id"`
	Kind     string `json:"type,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Birthday string `json:"birthday,omitempty"`

	// PasswordHash is argon2id, or a legacy bcrypt/plaintext value until
	// the next successful login rehashes it.
	PasswordHash string `json:"password"`
	Verified     bool   `json:"verified"`

	VerificationCode    string `json:"verificationCode,omitempty"`
	VerificationExpires int64  `json:"verificationExpires,omitempty"`
	ResetCode           string `json:"resetCode,omitempty"`
	ResetExpires        int64  `json:"resetExpires,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`

	// ETag is the store version this copy was read at.
	ETag string `json:"-"`
}

// NormalizeEmail is applied to every email before it is used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Account) PendingVerification() *PendingToken {
	return tokenFromFields(a.VerificationCode, a.VerificationExpires)
}

func (a *Account) SetPendingVerification(t *PendingToken) {
	a.VerificationCode, a.VerificationExpires = tokenToFields(t)
}

func (a *Account) PendingReset() *PendingToken {
	return tokenFromFields(a.ResetCode, a.ResetExpires)
}

func (a *Account) SetPendingReset(t *PendingToken) {
	a.ResetCode, a.ResetExpires = tokenToFields(t)
}

// MarkVerified flips the verified flag and drops the pending code.
func (a *Account) MarkVerified(now time.Time) {
	a.Verified = true
	a.SetPendingVerification(nil)
	a.UpdatedAt = now
}

// ClearExpiredTokens drops pending tokens whose window has closed and
// reports whether anything changed.
func (a *Account) ClearExpiredTokens(now time.Time) bool {
	changed := false
	if t := a.PendingVerification(); t.Expired(now) {
		a.SetPendingVerification(nil)
		changed = true
	}
	if t := a.PendingReset(); t.Expired(now) {
		a.SetPendingReset(nil)
		changed = true
	}
	if changed {
		a.UpdatedAt = now
	}
	return changed
}
