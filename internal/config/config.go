// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration values loaded from the environment.
// Every variable carries the APP_ prefix, e.g. APP_PORT=8080.
type Config struct {
	// Server settings
	Host           string        `envconfig:"HOST" default:"0.0.0.0"`
	Port           string        `envconfig:"PORT" default:"8080"`
	Env            string        `envconfig:"ENV" default:"development"` // "development", "production", "testing"
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"debug"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"` // "text" or "json"

	// Database selection: "sqlite3" for local development, "postgres" otherwise.
	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite3"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"penblog.db"`

	// PostgreSQL connection
	DBHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	DBPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	DBUser     string `envconfig:"POSTGRES_USER" default:"penblog"`
	DBPassword string `envconfig:"POSTGRES_PASSWORD" default:"changeme"`
	DBName     string `envconfig:"POSTGRES_DB" default:"penblog"`
	DBSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	// Valkey (Redis-compatible session store). Sessions and the auth
	// endpoints are disabled when ValkeyHost is empty.
	ValkeyHost     string `envconfig:"VALKEY_HOST"`
	ValkeyPort     string `envconfig:"VALKEY_PORT" default:"6379"`
	ValkeyPassword string `envconfig:"VALKEY_PASSWORD"`

	// AllowAnonymousWrites lets posts and comments be created without an
	// authenticated author. A throwaway author id is generated instead.
	AllowAnonymousWrites bool `envconfig:"ALLOW_ANONYMOUS_WRITES" default:"false"`

	// Login rate limiting per client IP.
	LoginRateLimit  int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or unsafe in production mode.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("APP", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("APP_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver)
	}

	if cfg.Env == "production" {
		if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("APP_POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AllowAnonymousWrites {
			return nil, fmt.Errorf("APP_ALLOW_ANONYMOUS_WRITES cannot be enabled in production")
		}
	}

	return &cfg, nil
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.SQLitePath)
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SessionsEnabled reports whether a Valkey host is configured.
func (c *Config) SessionsEnabled() bool {
	return c.ValkeyHost != ""
}
