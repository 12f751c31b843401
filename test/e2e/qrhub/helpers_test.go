package qrhub_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
)

const (
	testImageName = "qrhub-test:latest"

	testSecret   = "e2e-session-secret-0123456789abcdef"
	testPassword = "Passw0rd!"
)

// TestMain builds the image once for the whole package and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building qrhub Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up qrhub Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/qrhub/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might already be gone
}

// setupQRHubContainer starts the service with outbound integrations off and
// returns its base URL.
func setupQRHubContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"3001/tcp"},
		Env: map[string]string{
			"JWT_SECRET":  testSecret,
			"ENV":         "test",
			"LOG_LEVEL":   "info",
			"LOG_FORMAT":  "json",
			"MAIL_DRIVER": "log",
			"GEO_ENABLED": "false",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("3001/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "3001")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerUser creates an unverified account. Codes go to the container log,
// so e2e tests never hold a session.
func registerUser(t *testing.T, client *qrsdk.Client, email string) *qrsdk.RegisterResponse {
	t.Helper()
	resp, err := client.Register2(t.Context(), qrsdk.RegisterRequest{
		Name:     "E2E User",
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.False(t, resp.User.Verified)
	return resp
}

func assertHealthy(t *testing.T, health *qrsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func assertStatus(t *testing.T, err error, status int, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.Equal(t, status, qrsdk.StatusCode(err), "%s: %v", context, err)
}
