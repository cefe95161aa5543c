// Package main is the entry point for the catalog admin CLI.
// It provides operator commands for bootstrapping accounts and secrets
// without going through the public API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/auth"
	"github.com/prn-tf/package-catalog/internal/config"
	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/pkg/crypto"
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
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Catalog Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "secret":
		if err := runSecretCommand(os.Args[2:]); err != nil {
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

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user command requires a subcommand (create, list)")
	}

	switch args[0] {
	case "create":
		return runUserCreate(args[1:])
	case "list":
		return runUserList(args[1:])
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func runUserCreate(args []string) error {
	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	username := fs.String("username", "", "username for the new account")
	password := fs.String("password", "", "password for the new account")
	role := fs.String("role", "standard", "role: admin or standard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *password == "" {
		return fmt.Errorf("--username and --password are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo, closeDB, err := openUserRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	users := service.NewUserService(userRepo, tokens, logger)

	if err := users.Register(ctx, service.RegisterInput{
		Username: *username,
		Password: *password,
		Role:     domain.Role(strings.ToLower(*role)),
	}); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created %s user %q\n", strings.ToLower(*role), *username)
	return nil
}

func runUserList(args []string) error {
	fs := flag.NewFlagSet("user list", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	limit := fs.Int("limit", 100, "maximum number of users to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo, closeDB, err := openUserRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	users, err := service.NewUserService(userRepo, tokens, logger).List(ctx, *limit)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}

func runSecretCommand(args []string) error {
	if len(args) < 1 || args[0] != "generate" {
		return fmt.Errorf("secret command requires the generate subcommand")
	}

	secret, err := crypto.GenerateJWTSecret()
	if err != nil {
		return err
	}

	fmt.Println(secret)
	return nil
}

// openUserRepository connects to the configured database and applies
// pending migrations so the CLI works against a fresh data directory.
func openUserRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.UserRepository, func(), error) {
	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return sqlite.NewUserRepository(db), func() { _ = db.Close() }, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return postgres.NewUserRepository(db), func() { _ = db.Close() }, nil
}

func printUsage() {
	fmt.Println(`Catalog Admin CLI

Usage:
  catalog-admin <command> [arguments]

Commands:
  user create   Create a user account directly in the database
  user list     Print registered accounts
  secret        Generate secrets (generate)
  version       Print version information
  help          Show this help message

Examples:
  catalog-admin user create --username admin --password changeme123 --role admin
  catalog-admin user list --limit 20
  catalog-admin secret generate

Configuration is read the same way as the server: a config file plus
CATALOG_-prefixed environment variables.`)
}
