// Package main is the entry point for the catalog migration tool.
// It applies embedded schema migrations to the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/config"
	"github.com/prn-tf/package-catalog/internal/repository/postgres"
	"github.com/prn-tf/package-catalog/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Catalog Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		if err := runMigrate(os.Args[2:], true); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "status":
		if err := runMigrate(os.Args[2:], false); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runMigrate connects to the configured database and either applies
// pending migrations or reports the current version.
func runMigrate(args []string, apply bool) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
		if err != nil {
			return fmt.Errorf("failed to open SQLite database: %w", err)
		}
		defer db.Close()

		if apply {
			if err := db.Migrate(ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied")
			return nil
		}
		return printSQLiteStatus(ctx, db)
	}

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	if apply {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		fmt.Println("Migrations applied")
		return nil
	}
	return printPostgresStatus(ctx, db)
}

func printSQLiteStatus(ctx context.Context, db *sqlite.DB) error {
	var version int
	err := db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations
	`).Scan(&version)
	if err != nil {
		// No migrations table yet means nothing has been applied.
		fmt.Println("Current version: 0 (no migrations applied)")
		return nil
	}
	fmt.Printf("Current version: %d\n", version)
	return nil
}

func printPostgresStatus(ctx context.Context, db *postgres.DB) error {
	var version int
	err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations
	`).Scan(&version)
	if err != nil {
		fmt.Println("Current version: 0 (no migrations applied)")
		return nil
	}
	fmt.Printf("Current version: %d\n", version)
	return nil
}

func printUsage() {
	fmt.Println(`Catalog Migration Tool

Usage:
  catalog-migrate <command> [arguments]

Commands:
  up          Apply all pending migrations
  status      Show the current schema version
  version     Print version information
  help        Show this help message

Examples:
  catalog-migrate up --config ./configs/config.yaml
  catalog-migrate status

Configuration is read the same way as the server: a config file plus
CATALOG_-prefixed environment variables.`)
}
