// Package postgres provides PostgreSQL-backed repositories using pgx.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a pgx connection pool with additional functionality.
type DB struct {
	Pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDB creates a new database connection pool.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Configure pool settings
	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime

	// Configure connection settings
	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	// Add query tracer for debugging (optional)
	if logger.GetLevel() <= zerolog.DebugLevel {
		poolConfig.ConnConfig.Tracer = &queryTracer{logger: logger}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_conns", cfg.MaxOpenConns).
		Msg("connected to PostgreSQL")

	return &DB{
		Pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	db.Pool.Close()
	db.logger.Info().Msg("database connection pool closed")
	return nil
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Migrate runs database migrations.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	db.logger.Info().Int("current_version", currentVersion).Msg("checking migrations")

	if currentVersion < 1 {
		migration, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
		if err != nil {
			return fmt.Errorf("failed to read embedded migration: %w", err)
		}

		if _, err := db.Pool.Exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to apply migration 1: %w", err)
		}

		if _, err := db.Pool.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES (1)`); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		db.logger.Info().Int("version", 1).Msg("applied migration")
	}

	return nil
}

// queryTracer implements pgx.QueryTracer for debug logging.
type queryTracer struct {
	logger zerolog.Logger
}

type traceQueryCtxKey struct{}

type traceQueryData struct {
	sql       string
	startTime time.Time
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceQueryCtxKey{}, &traceQueryData{
		sql:       data.SQL,
		startTime: time.Now(),
	})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	queryData, ok := ctx.Value(traceQueryCtxKey{}).(*traceQueryData)
	if !ok {
		return
	}

	event := t.logger.Debug().
		Str("sql", queryData.sql).
		Dur("duration", time.Since(queryData.startTime)).
		Str("command_tag", data.CommandTag.String())

	if data.Err != nil {
		event = event.Err(data.Err)
	}

	event.Msg("query executed")
}
