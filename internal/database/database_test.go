// Package database tests cover connection setup and migration execution.
// SQLite tests always run; PostgreSQL tests need a reachable server and are
// skipped otherwise.
package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memoryDSN = "file::memory:?_foreign_keys=on"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testPostgresDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "penblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "penblog")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

var tables = []string{"users", "categories", "posts", "post_tags", "post_comments"}

func TestConnectSQLite(t *testing.T) {
	db, err := Connect(SQLite, memoryDSN)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := Connect("mysql", "whatever")
	require.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	db, err := Connect(SQLite, memoryDSN)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, SQLite))

	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "expected table %s to exist after migration", table)
	}

	// Migrate should be idempotent; running twice shouldn't error.
	require.NoError(t, Migrate(db, SQLite))
}

func TestConnectPostgres(t *testing.T) {
	db, err := Connect(Postgres, testPostgresDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	assert.Equal(t, 25, db.Stats().MaxOpenConnections)
}

func TestMigratePostgres(t *testing.T) {
	db, err := Connect(Postgres, testPostgresDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	require.NoError(t, Migrate(db, Postgres))
	require.NoError(t, Migrate(db, Postgres))

	for _, table := range tables {
		var exists bool
		err := db.QueryRow(
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "expected table %s to exist after migration", table)
	}
}
