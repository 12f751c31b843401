package qrhub_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
)

func TestRegisterAndLoginGates(t *testing.T) {
	baseURL, cleanup := setupQRHubContainer(t)
	defer cleanup()

	client := qrsdk.NewClient(baseURL)
	ctx := t.Context()

	resp := registerUser(t, client, "e2e@example.com")
	require.Equal(t, "e2e@example.com", resp.User.Email)

	// Emails are case-insensitive, so this collides.
	_, err := client.Register(ctx, qrsdk.RegisterRequest{
		Name:     "Dup",
		Email:    "E2E@Example.com",
		Password: testPassword,
	})
	assertStatus(t, err, http.StatusConflict, "duplicate email")

	_, err = client.Login(ctx, "e2e@example.com", testPassword)
	assertStatus(t, err, http.StatusForbidden, "unverified login")

	_, err = client.Login(ctx, "e2e@example.com", "wrong-password")
	assertStatus(t, err, http.StatusUnauthorized, "wrong password")

	_, err = client.VerifyCode(ctx, "e2e@example.com", "000000")
	assertStatus(t, err, http.StatusBadRequest, "wrong code")

	msg, err := client.ResendVerification(ctx, "e2e@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, msg.Message)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	baseURL, cleanup := setupQRHubContainer(t)
	defer cleanup()

	client := qrsdk.NewClient(baseURL)

	_, err := client.ForgotPassword(t.Context(), "nobody@example.com")
	assertStatus(t, err, http.StatusNotFound, "unknown email")
}

func TestSessionRequired(t *testing.T) {
	baseURL, cleanup := setupQRHubContainer(t)
	defer cleanup()

	client := qrsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.ListProjects(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "no session")

	_, err = client.WithSession("not-a-token").ListProjects(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "forged session")

	_, err = client.DeleteMyAccount(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "delete without session")
}
