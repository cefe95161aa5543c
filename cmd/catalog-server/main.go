// Package main is the entry point for the package catalog server.
// It serves the catalog GraphQL API over HTTP with JWT bearer
// authentication and role-aware listing.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/auth"
	cacheredis "github.com/prn-tf/package-catalog/internal/cache/redis"
	"github.com/prn-tf/package-catalog/internal/config"
	catalogql "github.com/prn-tf/package-catalog/internal/graphql"
	"github.com/prn-tf/package-catalog/internal/handler"
	"github.com/prn-tf/package-catalog/internal/metrics"
	"github.com/prn-tf/package-catalog/internal/repository"
	"github.com/prn-tf/package-catalog/internal/repository/postgres"
	"github.com/prn-tf/package-catalog/internal/repository/sqlite"
	"github.com/prn-tf/package-catalog/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting catalog server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo, packageRepo, closeDB, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	// Optional read-through cache for single-package lookups
	if cfg.Redis.Enabled {
		cache, err := cacheredis.NewCache(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer cache.Close()
		packageRepo = repository.NewCachedPackageRepository(packageRepo, cache, cfg.Redis.CacheTTL, logger)
	}

	// Auth
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	verifier := auth.NewCredentialVerifier(tokens, userRepo, logger)

	// Metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(registry)
		go serveMetrics(cfg.Metrics, registry, logger)
	}

	// Services and schema
	userService := service.NewUserService(userRepo, tokens, logger)
	packageService := service.NewPackageService(packageRepo, logger)

	resolver := catalogql.NewResolver(userService, packageService, m, logger)
	schema, err := catalogql.NewSchema(resolver)
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Schema:         &schema,
		AuthMiddleware: auth.Middleware(verifier),
		GraphiQL:       cfg.Server.GraphiQL,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr()).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openRepositories connects to the configured database, applies pending
// migrations, and returns the repositories plus a close function.
func openRepositories(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.UserRepository, repository.PackageRepository, func(), error) {
	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:            cfg.Database.Path,
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			JournalMode:     cfg.Database.JournalMode,
			BusyTimeout:     cfg.Database.BusyTimeout,
			SynchronousMode: cfg.Database.SynchronousMode,
		}, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return sqlite.NewUserRepository(db), sqlite.NewPackageRepository(db), func() { _ = db.Close() }, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return postgres.NewUserRepository(db), postgres.NewPackageRepository(db), func() { _ = db.Close() }, nil
}

func serveMetrics(cfg config.MetricsConfig, registry *prometheus.Registry, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Str("path", cfg.Path).Msg("metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server exited")
	}
}

// newLogger builds the process logger from configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
