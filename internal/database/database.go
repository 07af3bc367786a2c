// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package database handles connection management and migration execution
// using goose. PostgreSQL (through pgx) is the production backend; SQLite is
// used for local development and tests. Connect returns a ready-to-use
// *sql.DB pool and Migrate applies the embedded schema for the driver.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedMigrations embed.FS

// Supported driver names, matching goose dialect names.
const (
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

// sqlDriver maps a dialect to the database/sql driver that serves it.
func sqlDriver(dialect string) (string, error) {
	switch dialect {
	case Postgres:
		return "pgx", nil
	case SQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// Connect opens a connection pool for the given dialect and DSN.
// It verifies the connection with a ping before returning.
func Connect(dialect, dsn string) (*sql.DB, error) {
	driver, err := sqlDriver(dialect)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	if dialect == SQLite {
		// SQLite has a single writer, and every connection to ":memory:"
		// would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Verify the connection is alive.
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "driver", dialect)
	return db, nil
}

// Migrate runs all pending goose migrations for the dialect from the
// embedded SQL files. Migrations are embedded at compile time so no
// external files are needed at runtime.
func Migrate(db *sql.DB, dialect string) error {
	if _, err := sqlDriver(dialect); err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations/"+dialect); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "driver", dialect)
	return nil
}
