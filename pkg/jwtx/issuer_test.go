package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newIssuer(t *testing.T, clock *fakeClock) *jwtx.Issuer {
	t.Helper()
	iss, err := jwtx.NewIssuer(testSecret, jwtx.WithClock(clock.Now))
	require.NoError(t, err)
	return iss
}

func TestNewIssuerFailsClosed(t *testing.T) {
	_, err := jwtx.NewIssuer("")
	require.ErrorIs(t, err, jwtx.ErrMissingSecret)

	_, err = jwtx.NewIssuer("short")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestMintThenVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	iss := newIssuer(t, clock)

	token, minted, err := iss.Mint("a@x.com", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, minted.ID)
	require.Equal(t, clock.t.Add(jwtx.DefaultSessionTTL), minted.ExpiresAt.Time)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, minted.ID, claims.ID)
}

func TestVerifyExpiresAfterSevenDays(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	iss := newIssuer(t, clock)

	token, _, err := iss.Mint("a@x.com", "a@x.com")
	require.NoError(t, err)

	clock.t = clock.t.Add(jwtx.DefaultSessionTTL)
	_, err = iss.Verify(token)
	require.NoError(t, err, "exactly at exp is still valid")

	clock.t = clock.t.Add(time.Second)
	_, err = iss.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now().UTC()}
	iss := newIssuer(t, clock)

	token, _, err := iss.Mint("a@x.com", "a@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = iss.Verify(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyTamperedAndExpiredReportsInvalidSig(t *testing.T) {
	clock := &fakeClock{t: time.Now().UTC()}
	iss := newIssuer(t, clock)

	other, err := jwtx.NewIssuer(strings.Repeat("z", 32), jwtx.WithClock(clock.Now))
	require.NoError(t, err)
	token, _, err := other.Mint("a@x.com", "a@x.com")
	require.NoError(t, err)

	clock.t = clock.t.Add(30 * 24 * time.Hour)
	_, err = iss.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now().UTC()}
	iss := newIssuer(t, clock)

	claims := jwtx.NewSessionClaims("a@x.com", "a@x.com", time.Hour, clock.t)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Verify(none)
	require.Error(t, err)
}

func TestVerifyMalformed(t *testing.T) {
	iss := newIssuer(t, &fakeClock{t: time.Now()})

	_, err := iss.Verify("not.a.jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
