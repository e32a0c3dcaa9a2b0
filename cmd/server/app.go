package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/calloway/quill-api/internal/config"
	"github.com/calloway/quill-api/internal/platform/postgres"
	"github.com/calloway/quill-api/internal/service/auth"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// application holds all shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	postStore     store.PostStore
	categoryStore store.CategoryStore
	commentStore  store.CommentStore

	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier

	pipeline *validation.Pipeline
}

// newApplication creates an application instance with all dependencies
// initialized. The configuration, logger, and database connection must be
// established before calling it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	bcryptHasher := auth.NewBcryptHasher()
	app.hasher = bcryptHasher
	app.verifier = bcryptHasher

	app.userStore = postgres.NewPostgresUserStore(db)
	app.postStore = postgres.NewPostgresPostStore(db)
	app.categoryStore = postgres.NewPostgresCategoryStore(db)
	app.commentStore = postgres.NewPostgresCommentStore(db)

	// The stores double as the pipeline's existence and uniqueness probes.
	app.pipeline = validation.NewPipeline(
		app.userStore,
		app.postStore,
		app.categoryStore,
		app.commentStore,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
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
