package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ledgerline/ledgerline/internal/api"
	"github.com/ledgerline/ledgerline/internal/api/middleware"
	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/platform/metrics"
	"github.com/ledgerline/ledgerline/internal/platform/postgres"
	"github.com/ledgerline/ledgerline/internal/search"
	"github.com/ledgerline/ledgerline/internal/service/composer"
	"github.com/ledgerline/ledgerline/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	businessStore store.PartyStore
	clientStore   store.PartyStore
	itemStore     store.ItemStore
	settingsStore store.SettingsStore

	// Search index mirror
	index search.Index

	// Composers, one per document kind
	invoiceComposer  composer.Service
	estimateComposer composer.Service

	// Observability
	metrics *metrics.Metrics
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.businessStore = postgres.NewPostgresBusinessStore(db, logger)
	app.clientStore = postgres.NewPostgresClientStore(db, logger)
	app.itemStore = postgres.NewPostgresItemStore(db, logger)
	app.settingsStore = postgres.NewPostgresSettingsStore(db, logger)

	// Search index mirror, no-op unless credentials are configured
	if cfg.Search.MirrorEnabled() {
		app.index = search.NewAlgoliaIndex(cfg.Search.AppID, cfg.Search.APIKey, cfg.Search.IndexName)
		logger.Info("Search index mirror enabled", "index", cfg.Search.IndexName)
	} else {
		app.index = search.NewNoopIndex()
		logger.Info("Search index mirror disabled")
	}

	// Composers
	app.invoiceComposer = composer.NewService(composer.Config{
		DB:            db,
		Kind:          domain.DocumentKindInvoice,
		UserStore:     app.userStore,
		BusinessStore: app.businessStore,
		ClientStore:   app.clientStore,
		ItemStore:     app.itemStore,
		DocumentStore: postgres.NewPostgresInvoiceStore(db, logger),
		DocItemStore:  postgres.NewPostgresInvoiceItemStore(db, logger),
		Index:         app.index,
		Logger:        logger,
	})
	app.estimateComposer = composer.NewService(composer.Config{
		DB:            db,
		Kind:          domain.DocumentKindEstimate,
		UserStore:     app.userStore,
		BusinessStore: app.businessStore,
		ClientStore:   app.clientStore,
		ItemStore:     app.itemStore,
		DocumentStore: postgres.NewPostgresEstimateStore(db, logger),
		DocItemStore:  postgres.NewPostgresEstimateItemStore(db, logger),
		Index:         app.index,
		Logger:        logger,
	})

	app.metrics = metrics.New()

	logger.Info("Application initialized")
	return app, nil
}

// authMiddleware builds the JWT authentication middleware bound to the
// application's user store.
func (app *application) authMiddleware() *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(app.config.Auth.JWTSecret, app.userStore)
}

// handlers builds the HTTP handlers for all resources.
func (app *application) handlers() (
	*api.DocumentHandler,
	*api.DocumentHandler,
	*api.PartyHandler,
	*api.PartyHandler,
	*api.ItemHandler,
	*api.SettingsHandler,
	*api.UserHandler,
) {
	return api.NewInvoiceHandler(app.invoiceComposer),
		api.NewEstimateHandler(app.estimateComposer),
		api.NewBusinessHandler(app.businessStore, app.index),
		api.NewClientHandler(app.clientStore, app.index),
		api.NewItemHandler(app.itemStore, app.index),
		api.NewSettingsHandler(app.settingsStore),
		api.NewUserHandler(app.userStore)
}
