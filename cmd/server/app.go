package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fmardones/reparto-api/internal/config"
	"github.com/fmardones/reparto-api/internal/platform/postgres"
	"github.com/fmardones/reparto-api/internal/service/auth"
	"github.com/fmardones/reparto-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	clienteStore        store.ClienteStore
	camionStore         store.CamionStore
	rutaStore           store.RutaStore
	repartoStore        store.RepartoStore
	repartoClienteStore store.RepartoClienteStore
	usuarioStore        store.UsuarioStore

	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging and the database connection must
// already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.jwtService = jwtService
	logger.Info("JWT authentication service initialized",
		"token_lifetime_hours", cfg.Auth.TokenLifetimeHours)

	bcryptHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.hasher = bcryptHasher
	app.verifier = bcryptHasher

	app.clienteStore = postgres.NewClienteStore(db, logger)
	app.camionStore = postgres.NewCamionStore(db, logger)
	app.rutaStore = postgres.NewRutaStore(db, logger)
	app.repartoStore = postgres.NewRepartoStore(db, logger)
	app.repartoClienteStore = postgres.NewRepartoClienteStore(db, logger)
	app.usuarioStore = postgres.NewUsuarioStore(db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
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
