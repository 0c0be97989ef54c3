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

	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/aussiebroadwan/storefront/internal/shop/http"
	"github.com/aussiebroadwan/storefront/internal/shop/metrics"
	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/internal/shop/store"
	"github.com/aussiebroadwan/storefront/internal/shop/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the storefront server with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	keys     *jwtx.KeyRing
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	sessions            *service.SessionIssuer
	signInService       *service.SignInService
	accountService      *service.AccountService
	bootstrapService    *service.BootstrapService
	twoFactorService    *service.TwoFactorService
	profileService      *service.ProfileService
	categoryService     *service.CategoryService
	uploadService       *service.UploadService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := jwtx.NewKeyRing(jwtx.KeyRingOptions{
		Issuer:  app.cfg.Issuer,
		NumKeys: app.cfg.NumKeys,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keys = keys
	app.logger.Info("session signing keys generated", "count", len(keys.PublicJWKS().Keys))

	app.registry = metrics.NewRegistry()
	app.metrics = metrics.New(app.registry)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("storefront starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown drains the HTTP server, stops housekeeping and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down storefront...")

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

	app.logger.Info("storefront stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
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
}

func (app *Application) initServices() {
	app.sessions = &service.SessionIssuer{
		Signer: app.keys,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}

	app.signInService = &service.SignInService{
		Store:    app.db,
		Sessions: app.sessions,
		Metrics:  app.metrics,
	}
	app.accountService = &service.AccountService{Store: app.db, Sessions: app.sessions}
	app.bootstrapService = &service.BootstrapService{
		Store:    app.db,
		Token:    app.cfg.BootstrapToken,
		Sessions: app.sessions,
	}
	app.twoFactorService = &service.TwoFactorService{
		Store:   app.db,
		Issuer:  "Storefront",
		Metrics: app.metrics,
	}
	app.profileService = &service.ProfileService{
		Store:     app.db,
		Sessions:  app.sessions,
		TwoFactor: app.twoFactorService,
	}
	app.categoryService = &service.CategoryService{Store: app.db, Metrics: app.metrics}
	app.uploadService = &service.UploadService{
		Dir:      app.cfg.UploadDir,
		MaxBytes: app.cfg.UploadMaxBytes,
		Metrics:  app.metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.metrics,
	)

	if app.bootstrapService.Enabled() {
		app.logger.Info("bootstrap endpoint enabled")
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keys, BuildVersion, app.db, app.logger)

	router.MetricsHandler = metrics.Handler(app.registry)
	router.SignInService = app.signInService
	router.AccountService = app.accountService
	router.BootstrapService = app.bootstrapService
	router.ProfileService = app.profileService
	router.TwoFactorService = app.twoFactorService
	router.CategoryService = app.categoryService
	router.UploadService = app.uploadService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
