// Package config resolves the process configuration once at startup:
// defaults, then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	UserID   string         `yaml:"user_id"` // every query is scoped to this user
	Refetch  RefetchConfig  `yaml:"refetch"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite3 or mysql
	DSN    string `yaml:"dsn"`
}

// RefetchConfig bounds the re-read that confirms a mutation is visible
type RefetchConfig struct {
	MaxTries        uint          `yaml:"max_tries"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a configuration that runs against a local SQLite file
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:*"},
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "./shortbox.db",
		},
		Refetch: RefetchConfig{
			MaxTries:        5,
			InitialInterval: 50 * time.Millisecond,
			MaxInterval:     time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := loadFromEnvironment(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromEnvironment overrides file values with environment variables
func loadFromEnvironment(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if addr := os.Getenv("SHORTBOX_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.Database.DSN = path
	}
	if dsn, ok := os.LookupEnv("DB_DSN"); ok {
		cfg.Database.DSN = dsn
	}
	if userID, ok := os.LookupEnv("SHORTBOX_USER_ID"); ok {
		cfg.UserID = strings.TrimSpace(userID)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if metrics := os.Getenv("SHORTBOX_METRICS"); metrics != "" {
		enabled, err := strconv.ParseBool(metrics)
		if err != nil {
			return fmt.Errorf("invalid SHORTBOX_METRICS: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	return nil
}

// Configured reports whether the store can be used. When it is false the
// service still starts, but reads come back empty and mutations fail.
func (c *Config) Configured() bool {
	return c.Database.DSN != "" && c.UserID != ""
}

// Validate ensures all configuration values are coherent.
// A missing DSN or user id is not an error; see Configured.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server addr cannot be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("server timeouts cannot be negative")
	}

	switch c.Database.Driver {
	case "sqlite3", "mysql":
	default:
		return fmt.Errorf("database driver must be sqlite3 or mysql, got %q", c.Database.Driver)
	}

	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			return fmt.Errorf("user id must be a UUID: %w", err)
		}
	}

	if c.Refetch.MaxTries == 0 {
		return errors.New("refetch max tries must be positive")
	}
	if c.Refetch.InitialInterval <= 0 {
		return errors.New("refetch initial interval must be positive")
	}
	if c.Refetch.MaxInterval < c.Refetch.InitialInterval {
		return fmt.Errorf("refetch initial interval (%s) cannot exceed max interval (%s)",
			c.Refetch.InitialInterval, c.Refetch.MaxInterval)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("log format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
