// Package config provides configuration management for the catalog server.
// Configuration can be loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// GraphiQL enables the in-browser IDE on the /graphql endpoint.
	GraphiQL bool `mapstructure:"graphiql"`
}

// Addr returns the server address in host:port format.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection settings.
// Supports both PostgreSQL and SQLite backends.
type DatabaseConfig struct {
	// Driver specifies the database driver: "postgres" or "sqlite".
	Driver string `mapstructure:"driver"`

	// PostgreSQL settings (used when Driver is "postgres")
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`

	// SQLite settings (used when Driver is "sqlite")
	Path            string `mapstructure:"path"`             // Path to SQLite database file
	JournalMode     string `mapstructure:"journal_mode"`     // WAL, DELETE, TRUNCATE, etc.
	BusyTimeout     int    `mapstructure:"busy_timeout"`     // Milliseconds to wait for locks
	SynchronousMode string `mapstructure:"synchronous_mode"` // NORMAL, FULL, OFF
}

// DSN returns the PostgreSQL connection string.
// Only valid when Driver is "postgres".
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// IsEmbedded returns true if using an embedded database (SQLite).
func (c DatabaseConfig) IsEmbedded() bool {
	return c.Driver == "sqlite"
}

// RedisConfig holds Redis connection settings for the read-through cache.
type RedisConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	Enabled     bool          `mapstructure:"enabled"`
}

// Addr returns the Redis address in host:port format.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds credential token settings.
type AuthConfig struct {
	// JWTSecret is the server-held secret used to sign credential tokens.
	// Required; the server refuses to start without it.
	JWTSecret string `mapstructure:"jwt_secret"`

	// TokenTTL is the lifetime of an issued credential token.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled determines if metrics collection is active.
	Enabled bool `mapstructure:"enabled"`

	// Port is the port for the metrics HTTP server.
	Port int `mapstructure:"port"`

	// Path is the URL path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values.
// Environment variables are prefixed with CATALOG_ and use _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Environment variable configuration
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file configuration
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/catalog")
	}

	// Read config file (optional - environment variables can be used instead)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is acceptable - use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.graphiql", false)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "catalog")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "catalog")
	v.SetDefault("database.ssl_mode", "prefer")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)
	// SQLite defaults
	v.SetDefault("database.path", "./data/catalog.db")
	v.SetDefault("database.journal_mode", "WAL")
	v.SetDefault("database.busy_timeout", 5000)
	v.SetDefault("database.synchronous_mode", "NORMAL")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("redis.enabled", false)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "") // Must be provided
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9091)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks the configuration for required values and valid ranges.
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	// Validate database configuration
	validDrivers := map[string]bool{"postgres": true, "sqlite": true}
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("database.driver must be 'postgres' or 'sqlite'")
	}

	if c.Database.Driver == "postgres" {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required for postgres driver")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required for postgres driver")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for postgres driver")
		}
	} else if c.Database.Driver == "sqlite" {
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite driver")
		}
	}

	// Validate auth configuration
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	// Validate logging configuration
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, fatal, panic")
	}

	return nil
}

// MustLoad loads configuration or panics on error.
// Useful for main function initialization.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
