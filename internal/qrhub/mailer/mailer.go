// Package mailer delivers one-time codes by email.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/qrhub/pkg/cryptox"
)

type Kind string

const (
	KindVerification Kind = "verification"
	KindReset        Kind = "reset"
)

// Message is a code notification for a single recipient.
type Message struct {
	To   string
	Code string
	Kind Kind
}

var ErrInvalidMessage = errors.New("mailer: invalid message")

// Mailer delivers a Message or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Render returns the subject and plain text body for msg.
func Render(msg Message) (subject, body string, err error) {
	if msg.To == "" || msg.Code == "" {
		return "", "", ErrInvalidMessage
	}

	minutes := int(cryptox.CodeTTL / time.Minute)
	switch msg.Kind {
	case KindVerification:
		subject = "Verify Your Email - Legend Cookhouse"
		body = fmt.Sprintf("Your 6-digit verification code is: %s\n\nThis code will expire in %d minutes.", msg.Code, minutes)
	case KindReset:
		subject = "Password Reset Code - Legend Cookhouse"
		body = fmt.Sprintf("Your password reset code is: %s\n\nThis code will expire in %d minutes.", msg.Code, minutes)
	default:
		return "", "", fmt.Errorf("%w: kind %q", ErrInvalidMessage, msg.Kind)
	}
	return subject, body, nil
}
