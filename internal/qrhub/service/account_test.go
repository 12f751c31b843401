package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/mailer"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/cryptox"
)

func register(t *testing.T, f *fixture, email, password string) string {
	t.Helper()
	_, err := f.accounts.Register(context.Background(), RegisterInput{Name: "A", Email: email, Password: password})
	require.NoError(t, err)
	msg, ok := f.mail.Last(domain.NormalizeEmail(email), mailer.KindVerification)
	require.True(t, ok)
	return msg.Code
}

func TestRegisterVerifyLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	code := register(t, f, " A@X.com ", "p")

	acct, err := f.store.Accounts().Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, acct.Verified)
	require.Equal(t, code, acct.PendingVerification().Code)
	require.Equal(t, cryptox.SchemeArgon2id, cryptox.SchemeOf(acct.PasswordHash))

	_, err = f.accounts.Authenticate(ctx, "a@x.com", "p")
	require.ErrorIs(t, err, ErrNotVerified)

	require.NoError(t, f.accounts.VerifyEmail(ctx, "a@x.com", code))

	acct, err = f.store.Accounts().Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, acct.Verified)
	require.Nil(t, acct.PendingVerification())

	token, got, err := f.accounts.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "a@x.com", got.ID)

	claims, err := f.accounts.Issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Subject)
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p"})
	require.ErrorIs(t, err, ErrInvalidInput)

	register(t, f, "a@x.com", "p")
	_, err = f.accounts.Register(ctx, RegisterInput{Name: "B", Email: "A@x.com", Password: "q"})
	require.ErrorIs(t, err, ErrAccountExists)
}

func TestRegisterKeepsAccountWhenMailFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mail.Err = errors.New("relay down")

	acct, err := f.accounts.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "p"})
	require.ErrorIs(t, err, ErrMailDelivery)
	require.Equal(t, "a@x.com", acct.ID)

	f.mail.Err = nil
	require.NoError(t, f.accounts.ResendVerification(ctx, "a@x.com"))
	_, ok := f.mail.Last("a@x.com", mailer.KindVerification)
	require.True(t, ok)
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	code := register(t, f, "a@x.com", "p")

	require.NoError(t, f.accounts.VerifyEmail(ctx, "a@x.com", code))
	require.ErrorIs(t, f.accounts.VerifyEmail(ctx, "a@x.com", code), ErrAlreadyVerified)
	require.ErrorIs(t, f.accounts.VerifyEmail(ctx, "b@x.com", code), ErrAccountNotFound)
}

func TestVerifyEmailRejectsWrongAndExpiredCodes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	code := register(t, f, "a@x.com", "p")

	err := f.accounts.VerifyEmail(ctx, "a@x.com", "000000x")
	require.ErrorIs(t, err, ErrInvalidCode)
	require.ErrorIs(t, err, domain.ErrTokenMismatch)

	f.clock.Advance(cryptox.CodeTTL)
	err = f.accounts.VerifyEmail(ctx, "a@x.com", code)
	require.ErrorIs(t, err, ErrInvalidCode)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestAuthenticateDoesNotRevealAccounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	code := register(t, f, "a@x.com", "p")
	require.NoError(t, f.accounts.VerifyEmail(ctx, "a@x.com", code))

	_, errMissing := f.accounts.Authenticate(ctx, "nobody@x.com", "p")
	_, errWrong := f.accounts.Authenticate(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, errMissing, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	require.Equal(t, errMissing.Error(), errWrong.Error())
}

func TestAbsentAccountHashIsArgon2id(t *testing.T) {
	h := absentAccountHash()
	require.Equal(t, cryptox.SchemeArgon2id, cryptox.SchemeOf(h))
	require.Equal(t, h, absentAccountHash())
	require.Error(t, cryptox.VerifyPassword("p", h))
}

func TestMixedCaseLegacyAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	f.seedAccount(t, "Ada@Example.com", string(legacy), true)

	for _, typed := range []string{"Ada@Example.com", "ada@example.com", " ADA@example.COM "} {
		acct, err := f.accounts.Authenticate(ctx, typed, "pw")
		require.NoError(t, err, typed)
		require.Equal(t, "Ada@Example.com", acct.ID)
	}

	_, err = f.accounts.Register(ctx, RegisterInput{Name: "Dup", Email: "ada@example.com", Password: "pw2"})
	require.ErrorIs(t, err, ErrAccountExists)

	_, err = f.store.Accounts().Get(ctx, "ada@example.com")
	require.ErrorIs(t, err, store.ErrNotFound, "no second account stored")
}

func TestAuthenticateRehashesLegacyPasswords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	f.seedAccount(t, "bcrypt@x.com", string(legacy), true)
	f.seedAccount(t, "plain@x.com", "plain-secret", true)

	for email, password := range map[string]string{
		"bcrypt@x.com": "old-secret",
		"plain@x.com":  "plain-secret",
	} {
		_, err := f.accounts.Authenticate(ctx, email, password)
		require.NoError(t, err, email)

		stored, err := f.store.Accounts().Get(ctx, email)
		require.NoError(t, err)
		require.Equal(t, cryptox.SchemeArgon2id, cryptox.SchemeOf(stored.PasswordHash), email)
		require.False(t, cryptox.NeedsRehash(stored.PasswordHash))

		_, err = f.accounts.Authenticate(ctx, email, password)
		require.NoError(t, err, "argon2id login after upgrade: %s", email)
	}
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	code := register(t, f, "a@x.com", "p")
	require.NoError(t, f.accounts.VerifyEmail(ctx, "a@x.com", code))

	require.ErrorIs(t, f.accounts.ForgotPassword(ctx, "nobody@x.com"), ErrAccountNotFound)
	require.NoError(t, f.accounts.ForgotPassword(ctx, "a@x.com"))
	msg, ok := f.mail.Last("a@x.com", mailer.KindReset)
	require.True(t, ok)

	require.ErrorIs(t, f.accounts.ResetPassword(ctx, "nobody@x.com", msg.Code, "q"), ErrInvalidCode)
	require.ErrorIs(t, f.accounts.ResetPassword(ctx, "a@x.com", "999999x", "q"), ErrInvalidCode)

	before, err := f.store.Accounts().Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.ErrorIs(t, f.accounts.ResetPassword(ctx, "a@x.com", msg.Code, "p"), ErrSamePassword)
	after, err := f.store.Accounts().Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, before.PasswordHash, after.PasswordHash)

	require.NoError(t, f.accounts.ResetPassword(ctx, "a@x.com", msg.Code, "q"))
	require.ErrorIs(t, f.accounts.ResetPassword(ctx, "a@x.com", msg.Code, "r"), ErrInvalidCode)

	_, err = f.accounts.Authenticate(ctx, "a@x.com", "p")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.accounts.Authenticate(ctx, "a@x.com", "q")
	require.NoError(t, err)
}

func TestResetCodeExpires(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAccount(t, "a@x.com", "p", true)

	require.NoError(t, f.accounts.ForgotPassword(ctx, "a@x.com"))
	msg, _ := f.mail.Last("a@x.com", mailer.KindReset)

	f.clock.Advance(cryptox.CodeTTL + time.Second)
	require.ErrorIs(t, f.accounts.ResetPassword(ctx, "a@x.com", msg.Code, "q"), ErrInvalidCode)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAccount(t, "a@x.com", "p", true)

	name, empty := "Alice", "   "
	f.clock.Advance(time.Minute)
	acct, err := f.accounts.UpdateProfile(ctx, "a@x.com", domain.AccountPatch{Name: &name, Phone: &empty})
	require.NoError(t, err)
	require.Equal(t, "Alice", acct.Name)
	require.Empty(t, acct.Phone)
	require.Equal(t, f.clock.Now(), acct.UpdatedAt)

	_, err = f.accounts.UpdateProfile(ctx, "b@x.com", domain.AccountPatch{Name: &name})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	f := newFixture(t)
	f.seedAccount(t, "a@x.com", "p", true)
	require.ErrorIs(t, f.accounts.ResendVerification(context.Background(), "a@x.com"), ErrAlreadyVerified)
	require.ErrorIs(t, f.accounts.ResendVerification(context.Background(), "b@x.com"), ErrAccountNotFound)
}

func TestDeleteByEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAccount(t, "a@x.com", "p", true)

	require.NoError(t, f.accounts.DeleteByEmail(ctx, "A@x.com"))
	require.ErrorIs(t, f.accounts.DeleteByEmail(ctx, "a@x.com"), ErrAccountNotFound)
}

func TestDeleteWithProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAccount(t, "a@x.com", "p", true)
	f.seedAccount(t, "b@x.com", "p", true)

	for range 6 {
		_, err := f.projects.Create(ctx, "a@x.com", CreateProjectInput{Name: "n", Payload: "example.com"})
		require.NoError(t, err)
	}
	other, err := f.projects.Create(ctx, "b@x.com", CreateProjectInput{Name: "n", Payload: "example.com"})
	require.NoError(t, err)

	n, err := f.accounts.DeleteWithProjects(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, 6, n)

	left, err := f.projects.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, left)

	_, err = f.projects.Lookup(ctx, other.ID)
	require.NoError(t, err)

	_, err = f.accounts.DeleteWithProjects(ctx, "a@x.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestIssueSessionRequiresVerification(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.IssueSession(domain.Account{ID: "a@x.com", Email: "a@x.com"})
	require.ErrorIs(t, err, ErrNotVerified)
}
