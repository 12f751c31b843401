package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/caption"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/geo"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverCosmos = "cosmos"

	MailDriverLog  = "log"
	MailDriverSMTP = "smtp"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 3001)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired code sweep interval (default: 1h)
	PublicBaseURL        string        // Origin embedded in rendered QR codes (default: http://localhost:{Port})
	CORSAllowedOrigins   []string      // Comma separated (default: *)

	StoreDriver       string // sqlite or cosmos (default: sqlite)
	DatabaseFile      string // SQLite file (default: ./qrhub.db)
	CosmosEndpoint    string
	CosmosKey         string
	CosmosDatabase    string // Accounts database
	CosmosContainer   string // Accounts container
	CosmosQRDatabase  string // Projects database (default: CosmosDatabase)
	CosmosQRContainer string // Projects container

	JWTSecret  string        // Required: HS256 session secret, at least 32 bytes
	SessionTTL time.Duration // Session lifetime (default: 168h)
	PepperFile string        // Password hashing pepper (default: ./pepper)

	MailDriver   string // log or smtp (default: log)
	SMTPHost     string
	SMTPPort     int // (default: 587)
	SMTPUser     string
	SMTPPassword string
	MailFrom     string // (default: SMTPUser)
	MailFromName string // (default: Legend Cookhouse)
	SMTPTimeout  time.Duration

	GeoEnabled       bool
	GeoEndpoint      string
	GeoTimeout       time.Duration
	GeoRatePerMinute int

	CaptionAPIKey  string // Optional: captioning answers 503 without it
	CaptionURL     string
	CaptionTimeout time.Duration

	CustomDataAllowedHosts []string
	CustomDataMaxItems     int

	OTLPEndpoint string // Optional: enables tracing
}

func LoadConfig() Config {
	cfg := Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3001),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		PublicBaseURL:        os.Getenv("PUBLIC_BASE_URL"),
		CORSAllowedOrigins:   getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),

		StoreDriver:       strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreDriverSQLite)),
		DatabaseFile:      getEnvOrDefault("DATABASE_FILE", "qrhub.db"),
		CosmosEndpoint:    os.Getenv("COSMOS_ENDPOINT"),
		CosmosKey:         os.Getenv("COSMOS_KEY"),
		CosmosDatabase:    os.Getenv("COSMOS_DATABASE"),
		CosmosContainer:   os.Getenv("COSMOS_CONTAINER"),
		CosmosQRDatabase:  os.Getenv("COSMOS_QR_DATABASE"),
		CosmosQRContainer: os.Getenv("COSMOS_QR_CONTAINER"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),
		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),

		MailDriver:   strings.ToLower(getEnvOrDefault("MAIL_DRIVER", MailDriverLog)),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnvOrDefault("MAIL_FROM_NAME", "Legend Cookhouse"),
		SMTPTimeout:  getEnvDurationOrDefault("SMTP_TIMEOUT", 10*time.Second),

		GeoEnabled:       getEnvBoolOrDefault("GEO_ENABLED", true),
		GeoEndpoint:      getEnvOrDefault("GEO_ENDPOINT", geo.DefaultEndpoint),
		GeoTimeout:       getEnvDurationOrDefault("GEO_TIMEOUT", geo.DefaultTimeout),
		GeoRatePerMinute: getEnvIntOrDefault("GEO_RATE_PER_MIN", geo.DefaultRatePerMinute),

		CaptionAPIKey:  os.Getenv("HF_API_KEY"),
		CaptionURL:     getEnvOrDefault("CAPTION_API_URL", caption.DefaultURL),
		CaptionTimeout: getEnvDurationOrDefault("CAPTION_TIMEOUT", caption.DefaultTimeout),

		CustomDataAllowedHosts: getEnvListOrDefault("CUSTOM_DATA_ALLOWED_HOSTS", []string{service.DefaultCustomDataHost}),
		CustomDataMaxItems:     getEnvIntOrDefault("CUSTOM_DATA_MAX_ITEMS", service.DefaultCustomDataMaxItems),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if cfg.CosmosQRDatabase == "" {
		cfg.CosmosQRDatabase = cfg.CosmosDatabase
	}

	return cfg
}

// Validate reports settings the service cannot start without. The session
// secret itself is checked by jwtx.NewIssuer.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case StoreDriverCosmos:
		for name, v := range map[string]string{
			"COSMOS_ENDPOINT":     c.CosmosEndpoint,
			"COSMOS_KEY":          c.CosmosKey,
			"COSMOS_DATABASE":     c.CosmosDatabase,
			"COSMOS_CONTAINER":    c.CosmosContainer,
			"COSMOS_QR_CONTAINER": c.CosmosQRContainer,
		} {
			if v == "" {
				errs = append(errs, fmt.Errorf("%s is required for the cosmos driver", name))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.MailDriver {
	case MailDriverLog:
	case MailDriverSMTP:
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp mail driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
