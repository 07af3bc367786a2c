// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all penblog entities.
// Each store wraps a shared *DB and exposes typed query methods built with
// squirrel and scanned with sqlx. The same queries run on PostgreSQL and
// SQLite; only the placeholder format differs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// DB is the shared handle every store is built on.
type DB struct {
	x  *sqlx.DB
	sb sq.StatementBuilderType
}

// New wraps an open connection pool. dialect is "postgres" or "sqlite3".
func New(db *sql.DB, dialect string) *DB {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == "postgres" {
		sb = sb.PlaceholderFormat(sq.Dollar)
	}
	return &DB{
		x:  sqlx.NewDb(db, dialect),
		sb: sb,
	}
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.x.PingContext(ctx)
}

// Transaction runs fn inside a transaction, committing when fn returns nil
// and rolling back otherwise.
func (d *DB) Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := d.x.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// get runs a single-row select. It reports false when no row matched.
func get(ctx context.Context, q Queryer, dest any, b sq.Sqlizer) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}
	err = q.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// selectAll runs a multi-row select into dest.
func selectAll(ctx context.Context, q Queryer, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return q.SelectContext(ctx, dest, query, args...)
}

// exec runs a statement and returns the number of affected rows.
func exec(ctx context.Context, q Queryer, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// now returns the current time at the precision both backends preserve.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// isUniqueViolation reports whether err came from a unique constraint.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err came from a foreign key constraint.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in a
// lowercased column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
