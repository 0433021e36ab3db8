package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twitterclone/twitter-api/internal/config"
	"github.com/twitterclone/twitter-api/internal/platform/jsonfile"
	"github.com/twitterclone/twitter-api/internal/platform/sqlstore"
	"github.com/twitterclone/twitter-api/internal/service"
	"github.com/twitterclone/twitter-api/internal/service/auth"
	"github.com/twitterclone/twitter-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the file driver.
	db *sqlstore.DB

	userStore  store.UserStore
	tweetStore store.TweetStore

	userService  service.UserService
	tweetService service.TweetService
}

// newApplication opens the configured store and builds the services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.openStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.userService = service.NewUserService(app.userStore, hasher, logger)
	app.tweetService = service.NewTweetService(app.tweetStore, app.userStore, logger)

	logger.Info("Application initialized successfully", "store_driver", cfg.Store.Driver)
	return app, nil
}

// openStores selects the record store backend named by the configuration.
func (app *application) openStores(ctx context.Context) error {
	cfg := app.config.Store

	switch cfg.Driver {
	case config.DriverFile:
		users, err := jsonfile.NewUserStore(cfg.DataDir, app.logger)
		if err != nil {
			return fmt.Errorf("failed to open user file store: %w", err)
		}
		tweets, err := jsonfile.NewTweetStore(cfg.DataDir, app.logger)
		if err != nil {
			return fmt.Errorf("failed to open tweet file store: %w", err)
		}
		app.userStore, app.tweetStore = users, tweets
		app.logger.Info("Using file store", "data_dir", cfg.DataDir)
		return nil

	case config.DriverSQLite:
		return app.openSQL(ctx, sqlstore.SQLite, cfg.SQLitePath)

	case config.DriverPostgres:
		return app.openSQL(ctx, sqlstore.Postgres, app.config.Database.URL)

	default:
		return fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func (app *application) openSQL(ctx context.Context, driver, dsn string) error {
	db, err := sqlstore.Open(ctx, driver, dsn, app.logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", driver, err)
	}
	app.db = db
	app.userStore = sqlstore.NewUserStore(db, app.logger)
	app.tweetStore = sqlstore.NewTweetStore(db, app.logger)
	return nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
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
		app.db = nil
	}
}
