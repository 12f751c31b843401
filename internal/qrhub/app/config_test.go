package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/observability"
	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PUBLIC_BASE_URL", "STORE_DRIVER", "MAIL_DRIVER", "COSMOS_DATABASE", "COSMOS_QR_DATABASE", "CORS_ALLOWED_ORIGINS", "GEO_ENABLED", "SESSION_TTL"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 3001, cfg.Port)
	require.Equal(t, "http://localhost:3001", cfg.PublicBaseURL)
	require.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	require.Equal(t, MailDriverLog, cfg.MailDriver)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.True(t, cfg.GeoEnabled)
	require.Equal(t, jwtx.DefaultSessionTTL, cfg.SessionTTL)
	require.Equal(t, "Legend Cookhouse", cfg.MailFromName)
	require.Equal(t, 1000, cfg.CustomDataMaxItems)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "COSMOS")
	t.Setenv("COSMOS_DATABASE", "users")
	t.Setenv("COSMOS_QR_DATABASE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("GEO_ENABLED", "false")
	t.Setenv("HOUSEKEEPING_INTERVAL", "15")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "not-a-duration")

	cfg := LoadConfig()
	require.Equal(t, 8081, cfg.Port)
	require.Equal(t, "http://localhost:8081", cfg.PublicBaseURL)
	require.Equal(t, StoreDriverCosmos, cfg.StoreDriver)
	require.Equal(t, "users", cfg.CosmosQRDatabase, "projects database falls back to the accounts one")
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.False(t, cfg.GeoEnabled)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: StoreDriverSQLite, DatabaseFile: "x.db", MailDriver: MailDriverLog, Port: 3001}
	require.NoError(t, base.Validate())

	cosmos := base
	cosmos.StoreDriver = StoreDriverCosmos
	cosmos.CosmosEndpoint = "https://acme.documents.azure.com"
	err := cosmos.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "COSMOS_KEY")
	require.NotContains(t, err.Error(), "COSMOS_ENDPOINT")

	smtp := base
	smtp.MailDriver = MailDriverSMTP
	require.ErrorContains(t, smtp.Validate(), "SMTP_HOST")

	unknown := base
	unknown.StoreDriver = "postgres"
	require.ErrorContains(t, unknown.Validate(), "unknown STORE_DRIVER")
}

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		Env:                  "test",
		LogLevel:             "error",
		Port:                 3001,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		PublicBaseURL:        "http://qr.test",
		StoreDriver:          StoreDriverSQLite,
		DatabaseFile:         filepath.Join(dir, "qrhub.db"),
		JWTSecret:            strings.Repeat("s", 32),
		SessionTTL:           time.Hour,
		PepperFile:           filepath.Join(dir, "pepper"),
		MailDriver:           MailDriverLog,
	}
}

func TestNewFailsClosedWithoutSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""

	_, err := New(cfg)
	require.ErrorIs(t, err, jwtx.ErrMissingSecret)

	cfg.JWTSecret = "short"
	_, err = New(cfg)
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestNewServesAndShutsDown(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"store":"ok"`)

	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/caption-image", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	app.housekeepingService.Start()
	require.NoError(t, app.Shutdown())
}

// stubTracing counts tracer shutdowns for the duration of a test.
func stubTracing(t *testing.T) *int {
	t.Helper()
	calls := new(int)
	orig := initTracing
	initTracing = func(context.Context, string, string, string) (observability.ShutdownFunc, error) {
		return func(context.Context) error {
			*calls++
			return nil
		}, nil
	}
	t.Cleanup(func() { initTracing = orig })
	return calls
}

func TestNewFlushesTracingOnStoreFailure(t *testing.T) {
	shutdowns := stubTracing(t)

	cfg := testConfig(t)
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "missing", "qrhub.db")

	_, err := New(cfg)
	require.Error(t, err)
	require.Equal(t, 1, *shutdowns)
}

func TestRunFlushesTracingWhenServerFails(t *testing.T) {
	shutdowns := stubTracing(t)

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig(t)
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	app, err := New(cfg)
	require.NoError(t, err)

	require.ErrorContains(t, app.Run(), "server failed")
	require.Equal(t, 1, *shutdowns)
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, Migrate(cfg))
	require.FileExists(t, cfg.DatabaseFile)

	cfg.StoreDriver = StoreDriverCosmos
	require.Error(t, Migrate(cfg))
}
