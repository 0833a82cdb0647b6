package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	httpapi "github.com/centsible/centsible/internal/dashboard/http"
	"github.com/centsible/centsible/internal/dashboard/provider"
	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/internal/dashboard/store/drivers/memory"
	"github.com/centsible/centsible/internal/dashboard/store/drivers/sqlite"
	"github.com/centsible/centsible/pkg/cryptox"
	"github.com/centsible/centsible/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

func init() {
	// Monetary amounts serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Application encapsulates the dashboard service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	provider *provider.Client

	// Services
	sessionService      *service.SessionService
	authService         *service.AuthService
	dashboardService    *service.DashboardService
	billsService        *service.BillsService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dashboard-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initProvider()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("dashboard service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down dashboard service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("dashboard service stopped")
	return nil
}

// initDatabase initializes the configured storage driver and applies migrations
func (app *Application) initDatabase() error {
	switch app.cfg.StorageDriver {
	case "memory":
		app.db = memory.NewStore()
		app.logger.Info("using in-memory storage")
		return nil
	case "sqlite", "":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db

		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply database migrations: %w", err)
		}

		app.logger.Info("database migrations applied successfully")
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", app.cfg.StorageDriver)
	}
}

// initProvider initializes the banking provider client
func (app *Application) initProvider() {
	app.provider = provider.NewClient(provider.Config{
		BaseURL:      app.cfg.ProviderBaseURL,
		ClientID:     app.cfg.ProviderClientID,
		ClientSecret: app.cfg.ProviderClientSecret,
		RedirectURI:  app.cfg.ProviderRedirectURI,
		Scope:        app.cfg.ProviderScope,
		Timeout:      app.cfg.ProviderTimeout,
		Logger:       app.logger,
	})
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	secret := app.cfg.SessionSecret
	if secret == "" {
		// No configured secret: sessions won't survive a restart, which is
		// acceptable for dev.
		secret = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("SESSION_SECRET not set; using an ephemeral secret")
	}

	app.sessionService = &service.SessionService{
		Store:  app.db,
		Secret: []byte(secret),
		TTL:    app.cfg.SessionTTL,
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Provider: app.provider,
		Sessions: app.sessionService,
	}

	app.dashboardService = &service.DashboardService{
		Store:    app.db,
		Provider: app.provider,
	}

	app.billsService = &service.BillsService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.StateTTL,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.Env != "dev",
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.SessionService = app.sessionService
	router.DashboardService = app.dashboardService
	router.BillsService = app.billsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
