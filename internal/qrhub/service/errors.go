package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrSamePassword       = errors.New("new password matches the current one")
	ErrProjectNotFound    = errors.New("project not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("record was modified concurrently")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMailDelivery       = errors.New("mail delivery failed")
	ErrInvalidTarget      = errors.New("invalid custom data target")
	ErrUpstream           = errors.New("upstream failure")
)

// writeErr maps store sentinels returned by a conditional write.
func writeErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrPreconditionFailed):
		return ErrConflict
	case errors.Is(err, store.ErrNotFound):
		return notFound
	}
	return fmt.Errorf("write: %w", err)
}
