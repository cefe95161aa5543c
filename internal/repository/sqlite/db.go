// Package sqlite provides SQLite-backed repositories for embedded
// deployments. It uses modernc.org/sqlite, a pure Go SQLite implementation
// that doesn't require CGO, making it ideal for single-binary deployments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Config holds SQLite connection settings.
type Config struct {
	// Path is the path to the SQLite database file.
	// Use ":memory:" for an in-memory database.
	Path string

	// MaxOpenConns sets the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns sets the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime sets the maximum connection lifetime.
	ConnMaxLifetime time.Duration

	// JournalMode sets the SQLite journal mode (WAL recommended for concurrency).
	JournalMode string

	// BusyTimeout sets the busy timeout in milliseconds.
	BusyTimeout int

	// SynchronousMode sets the synchronous mode (NORMAL, FULL, OFF).
	SynchronousMode string
}

// DefaultConfig returns a default SQLite configuration.
func DefaultConfig(dbPath string) Config {
	return Config{
		Path:            dbPath,
		MaxOpenConns:    1, // SQLite works best with single writer
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		JournalMode:     "WAL",
		BusyTimeout:     5000, // 5 seconds
		SynchronousMode: "NORMAL",
	}
}

// DB wraps a sql.DB connection for SQLite.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
	path   string
}

// NewDB creates a new SQLite database connection.
func NewDB(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	// modernc.org/sqlite takes pragmas as _pragma=name(value) parameters.
	connStr := fmt.Sprintf(
		"%s?_pragma=journal_mode(%s)&_pragma=busy_timeout(%d)&_pragma=synchronous(%s)&_pragma=foreign_keys(1)",
		cfg.Path,
		cfg.JournalMode,
		cfg.BusyTimeout,
		cfg.SynchronousMode,
	)

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Str("journal_mode", cfg.JournalMode).
		Int("max_conns", cfg.MaxOpenConns).
		Msg("connected to SQLite database")

	return &DB{
		db:     db,
		logger: logger,
		path:   cfg.Path,
	}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.logger.Info().Msg("closing SQLite connection")
	return db.db.Close()
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

// DB returns the underlying sql.DB.
func (db *DB) DB() *sql.DB {
	return db.db
}

// ExecContext executes a query without returning rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// Migrate runs database migrations.
func (db *DB) Migrate(ctx context.Context) error {
	// Create migrations table if not exists
	_, err := db.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	db.logger.Info().Int("current_version", currentVersion).Msg("checking migrations")

	if currentVersion < 1 {
		migration, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
		if err != nil {
			return fmt.Errorf("failed to read embedded migration: %w", err)
		}

		if _, err := db.db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to apply migration 1: %w", err)
		}

		if _, err := db.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (1)`); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		db.logger.Info().Int("version", 1).Msg("applied migration")
	}

	return nil
}
