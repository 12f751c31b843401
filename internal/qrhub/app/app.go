package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/caption"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/geo"
	httpapi "github.com/aussiebroadwan/qrhub/internal/qrhub/http"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/mailer"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/observability"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store/drivers/cosmos"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store/drivers/sqlite"
	"github.com/aussiebroadwan/qrhub/pkg/cryptox"
	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

const serviceName = "qrhub"

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// initTracing is swapped in tests.
var initTracing = observability.InitTracing

// Application encapsulates the qrhub service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	issuer   *jwtx.Issuer
	mailer   mailer.Mailer
	locator  geo.Locator
	captions *caption.Client
	metrics  *observability.Metrics
	outbound *http.Client

	shutdownTracing observability.ShutdownFunc

	// Services
	accountService      *service.AccountService
	projectService      *service.ProjectService
	customDataService   *service.CustomDataService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: observability.NewMetrics(),
	}

	// Sessions fail closed: no secret, no server.
	issuer, err := jwtx.NewIssuer(cfg.JWTSecret, jwtx.WithTTL(cfg.SessionTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session issuer: %w", err)
	}
	app.issuer = issuer

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	ctx := context.Background()
	shutdown, err := initTracing(ctx, serviceName, BuildVersion, cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.shutdownTracing = shutdown
	app.outbound = observability.HTTPClient()

	if err := app.initStore(); err != nil {
		app.release()
		return nil, err
	}
	if err := app.initIntegrations(); err != nil {
		app.release()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("qrhub starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"mail", app.cfg.MailDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.release()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down qrhub...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Flush pending spans
	if err := app.shutdownTracing(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	// Close store connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("qrhub stopped")
	return nil
}

// release closes the store and flushes tracing on exits that never reach
// Shutdown.
func (app *Application) release() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing store", "error", err)
		}
	}
	if app.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
		defer cancel()
		if err := app.shutdownTracing(ctx); err != nil {
			app.logger.Error("error flushing traces", "error", err)
		}
	}
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// initStore opens the configured document store
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case StoreDriverCosmos:
		client, err := cosmos.NewClient(cosmos.Config{
			Endpoint:   app.cfg.CosmosEndpoint,
			Key:        app.cfg.CosmosKey,
			HTTPClient: app.outbound,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize cosmos client: %w", err)
		}
		accounts, err := client.Container(app.cfg.CosmosDatabase, app.cfg.CosmosContainer)
		if err != nil {
			return err
		}
		projects, err := client.Container(app.cfg.CosmosQRDatabase, app.cfg.CosmosQRContainer)
		if err != nil {
			return err
		}
		app.db = store.New(accounts, projects, func() error { return nil })
		app.logger.Info("cosmos store ready",
			"accounts", app.cfg.CosmosDatabase+"/"+app.cfg.CosmosContainer,
			"projects", app.cfg.CosmosQRDatabase+"/"+app.cfg.CosmosQRContainer,
		)
		return nil

	default:
		db, err := openSQLite(app.cfg.DatabaseFile)
		if err != nil {
			return err
		}
		app.db = store.New(db.Container("accounts"), db.Container("projects"), db.Close)
		app.logger.Info("database migrations applied successfully")
		return nil
	}
}

// Migrate applies the sqlite migrations and exits. Cosmos containers are
// provisioned outside qrhub.
func Migrate(cfg Config) error {
	if cfg.StoreDriver != StoreDriverSQLite {
		return fmt.Errorf("migrations only apply to the sqlite driver, not %q", cfg.StoreDriver)
	}
	db, err := openSQLite(cfg.DatabaseFile)
	if err != nil {
		return err
	}
	return db.Close()
}

func openSQLite(file string) (*sqlite.Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// initIntegrations builds the mailer, geolocation and captioning clients
func (app *Application) initIntegrations() error {
	switch app.cfg.MailDriver {
	case MailDriverSMTP:
		m, err := mailer.NewSMTP(mailer.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUser,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
			FromName: app.cfg.MailFromName,
			Timeout:  app.cfg.SMTPTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize mailer: %w", err)
		}
		app.mailer = m
	default:
		app.logger.Warn("mail driver is log; codes are written to the log only")
		app.mailer = mailer.LogMailer{Logger: app.logger}
	}

	if app.cfg.GeoEnabled {
		app.locator = geo.NewIPAPI(geo.Config{
			Endpoint:      app.cfg.GeoEndpoint,
			Timeout:       app.cfg.GeoTimeout,
			RatePerMinute: app.cfg.GeoRatePerMinute,
			HTTPClient:    app.outbound,
		})
	} else {
		app.locator = geo.Disabled{}
	}

	app.captions = caption.New(caption.Config{
		URL:        app.cfg.CaptionURL,
		APIKey:     app.cfg.CaptionAPIKey,
		Timeout:    app.cfg.CaptionTimeout,
		HTTPClient: app.outbound,
	})
	if !app.captions.Configured() {
		app.logger.Info("HF_API_KEY not set; image captioning disabled")
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:   app.db,
		Mailer:  app.mailer,
		Issuer:  app.issuer,
		Metrics: app.metrics,
	}
	app.projectService = &service.ProjectService{
		Store:   app.db,
		Locator: app.locator,
		Metrics: app.metrics,
		BaseURL: app.cfg.PublicBaseURL,
	}
	app.customDataService = &service.CustomDataService{
		Dialer:       cosmos.Dialer{HTTPClient: app.outbound},
		AllowedHosts: app.cfg.CustomDataAllowedHosts,
		MaxItems:     app.cfg.CustomDataMaxItems,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.issuer,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSAllowedOrigins,
	)

	// Wire services to router
	router.AccountService = app.accountService
	router.ProjectService = app.projectService
	router.CustomDataService = app.customDataService
	router.Captioner = app.captions
	router.Metrics = app.metrics
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
