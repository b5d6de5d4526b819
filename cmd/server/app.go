package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/SonJH7/Pium/internal/config"
	"github.com/SonJH7/Pium/internal/platform/postgres"
	"github.com/SonJH7/Pium/internal/service"
	"github.com/SonJH7/Pium/internal/service/auth"
	"github.com/SonJH7/Pium/internal/service/growth"
	"github.com/SonJH7/Pium/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore        store.UserStore
	catalogStore     store.CatalogStore
	plantStore       store.PlantStore
	ledgerStore      store.LedgerStore
	gameConfigStore  store.GameConfigStore
	tipStore         store.TipStore
	applicationStore store.ApplicationStore
	requestStore     store.PlantRequestStore
	auditStore       store.AuditLogStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	userService      service.UserService
	gardenService    service.GardenService
	growthService    growth.GrowthService
	catalogService   service.CatalogService
	tipService       service.TipService
	contentService   service.ContentService
	adminService     service.AdminService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.catalogStore = postgres.NewPostgresCatalogStore(db, logger)
	app.plantStore = postgres.NewPostgresPlantStore(db, logger)
	app.ledgerStore = postgres.NewPostgresLedgerStore(db, logger)
	app.gameConfigStore = postgres.NewPostgresGameConfigStore(db, logger)
	app.tipStore = postgres.NewPostgresTipStore(db, logger)
	app.applicationStore = postgres.NewPostgresApplicationStore(db, logger)
	app.requestStore = postgres.NewPostgresPlantRequestStore(db, logger)
	app.auditStore = postgres.NewPostgresAuditLogStore(db, logger)

	// Seed the economy settings so the engine always finds its keys.
	if err := app.gameConfigStore.EnsureDefaults(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed game config defaults: %w", err)
	}

	// Services
	app.userService, err = service.NewUserService(
		app.userStore,
		app.ledgerStore,
		app.applicationStore,
		app.passwordVerifier,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.gardenService, err = service.NewGardenService(
		app.plantStore,
		app.catalogStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create garden service: %w", err)
	}

	app.growthService, err = growth.NewGrowthService(
		db,
		app.plantStore,
		app.catalogStore,
		app.ledgerStore,
		app.gameConfigStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create growth service: %w", err)
	}

	app.catalogService, err = service.NewCatalogService(
		app.catalogStore,
		app.tipStore,
		app.requestStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.tipService, err = service.NewTipService(
		app.tipStore,
		app.catalogStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tip service: %w", err)
	}

	app.contentService, err = service.NewContentService(
		db,
		app.catalogStore,
		app.tipStore,
		app.requestStore,
		app.auditStore,
		app.gameConfigStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	app.adminService, err = service.NewAdminService(
		db,
		app.userStore,
		app.applicationStore,
		app.plantStore,
		app.ledgerStore,
		app.auditStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
