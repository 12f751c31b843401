package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/mailer"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	subject, body, err := mailer.Render(mailer.Message{To: "a@x.com", Code: "123456", Kind: mailer.KindVerification})
	require.NoError(t, err)
	require.Equal(t, "Verify Your Email - Legend Cookhouse", subject)
	require.Contains(t, body, "123456")
	require.Contains(t, body, "10 minutes")

	subject, _, err = mailer.Render(mailer.Message{To: "a@x.com", Code: "654321", Kind: mailer.KindReset})
	require.NoError(t, err)
	require.Equal(t, "Password Reset Code - Legend Cookhouse", subject)

	_, _, err = mailer.Render(mailer.Message{To: "a@x.com", Code: "1", Kind: "promo"})
	require.ErrorIs(t, err, mailer.ErrInvalidMessage)

	_, _, err = mailer.Render(mailer.Message{Kind: mailer.KindReset})
	require.ErrorIs(t, err, mailer.ErrInvalidMessage)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := mailer.LogMailer{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, m.Send(context.Background(), mailer.Message{To: "a@x.com", Code: "111222", Kind: mailer.KindReset}))
	require.Contains(t, buf.String(), "code=111222")
	require.Contains(t, buf.String(), "to=a@x.com")
}

func TestMemory(t *testing.T) {
	m := &mailer.Memory{}
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, mailer.Message{To: "a@x.com", Code: "111111", Kind: mailer.KindVerification}))
	require.NoError(t, m.Send(ctx, mailer.Message{To: "a@x.com", Code: "222222", Kind: mailer.KindVerification}))

	last, ok := m.Last("a@x.com", mailer.KindVerification)
	require.True(t, ok)
	require.Equal(t, "222222", last.Code)

	_, ok = m.Last("a@x.com", mailer.KindReset)
	require.False(t, ok)

	m.Err = errors.New("relay down")
	require.Error(t, m.Send(ctx, mailer.Message{To: "a@x.com", Code: "333333", Kind: mailer.KindReset}))
	require.Equal(t, 2, m.Count())
}

func TestNewSMTPValidation(t *testing.T) {
	_, err := mailer.NewSMTP(mailer.SMTPConfig{})
	require.Error(t, err)

	_, err = mailer.NewSMTP(mailer.SMTPConfig{Host: "smtp.example.com"})
	require.Error(t, err)

	s, err := mailer.NewSMTP(mailer.SMTPConfig{Host: "smtp.example.com", Username: "bot@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, s)
}
