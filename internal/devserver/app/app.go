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

	httpapi "github.com/aussiebroadwan/eventcart/internal/devserver/http"
	"github.com/aussiebroadwan/eventcart/internal/devserver/service"
	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cryptox"
	"github.com/aussiebroadwan/eventcart/pkg/jwtx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the devserver together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store  *store.Store
	signer *jwtx.HS256

	tokenService        *service.TokenService
	authService         *service.AuthService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with a seeded catalogue and admin account.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "eventcart-devserver",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		store: store.New(time.Now),
	}

	if err := app.initSigner(); err != nil {
		return nil, err
	}
	app.initServices()

	if err := app.seed(context.Background()); err != nil {
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the router, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("devserver starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
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
	app.logger.Info("shutting down devserver...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	var err error
	if err = app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if cerr := app.server.Close(); cerr != nil {
			app.logger.Error("error closing server", "error", cerr)
		}
	}

	app.housekeepingService.Stop()

	app.logger.Info("devserver stopped")
	return err
}

// initSigner uses the configured secret or generates one for this process.
func (app *Application) initSigner() error {
	secret := app.cfg.JWTSecret
	if secret == "" {
		s, err := cryptox.GenerateToken(32)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = s
		app.logger.Warn("EVENTCART_JWT_SECRET not set, using an ephemeral secret")
	}

	signer, err := jwtx.NewHS256([]byte(secret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT signer: %w", err)
	}
	app.signer = signer
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:       app.signer,
		Store:        app.store,
		AccessTTL:    app.cfg.AccessTTL,
		RefreshGrace: app.cfg.RefreshGrace,
	}
	app.authService = &service.AuthService{
		Store:  app.store,
		Tokens: app.tokenService,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.store,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) seed(ctx context.Context) error {
	admin, err := app.authService.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	events := service.SeedCatalogue(ctx, app.store, app.cfg.SeedEvents, app.cfg.SeedValue, time.Now())
	app.logger.Info("catalogue seeded",
		"events", len(events),
		"seed", app.cfg.SeedValue,
		"admin", admin.Email,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.store, BuildVersion, app.logger)
	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
