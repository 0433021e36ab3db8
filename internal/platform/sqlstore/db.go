package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Register the database/sql drivers.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/twitterclone/twitter-api/internal/redact"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

// DB is an open, migrated database together with its dialect.
type DB struct {
	*sql.DB
	dialect dialect
}

// Dialect returns the driver name the database was opened with.
func (db *DB) Dialect() string {
	return db.dialect.name
}

// Open connects to the database named by driver (SQLite or Postgres) and dsn,
// verifies the connection and applies any pending migrations.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "sqlstore"), slog.String("driver", driver))

	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}

	if d.name == SQLite {
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
	}

	sqlDB, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if d.name == SQLite {
		// SQLite allows one writer; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	db := &DB{DB: sqlDB, dialect: d}
	if err := db.migrate(ctx, log); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("database connection established")
	return db, nil
}

func (db *DB) migrate(ctx context.Context, log *slog.Logger) error {
	fsys, err := fs.Sub(embedMigrations, db.dialect.migrations)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(db.dialect.goose, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
	}
	return nil
}

// ensureSQLiteDir creates the directory holding the database file named by dsn.
// In-memory databases need nothing.
func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
