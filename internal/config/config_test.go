package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want false by default")
	}
	if cfg.Server.GraphiQL {
		t.Error("Server.GraphiQL = true, want false by default")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("Load() succeeded without auth.jwt_secret")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 5000\nauth:\n  jwt_secret: file-secret\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CATALOG_SERVER_PORT", "6000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want env override 6000", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("Auth.JWTSecret = %q, want file-secret", cfg.Auth.JWTSecret)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 4000},
			Database: DatabaseConfig{Driver: "sqlite", Path: "./catalog.db"},
			Auth:     AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
			Logging:  LoggingConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, true},
		{"postgres without host", func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.Host = ""
		}, true},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
