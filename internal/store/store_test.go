// store_test.go provides the shared test database helper for all store
// tests. Tests run on an in-memory SQLite database unless
// PENBLOG_TEST_POSTGRES_DSN points at a PostgreSQL server.
package store

import (
	"context"
	"os"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"penblog/internal/database"
	"penblog/internal/models"
	"penblog/internal/slug"
)

// testDB opens a migrated database for one test. The PostgreSQL variant
// truncates every table first, so it must point at a disposable database.
func testDB(t *testing.T) *DB {
	t.Helper()

	dialect, dsn := database.SQLite, "file::memory:?_foreign_keys=on"
	if pg := os.Getenv("PENBLOG_TEST_POSTGRES_DSN"); pg != "" {
		dialect, dsn = database.Postgres, pg
	}

	sqlDB, err := database.Connect(dialect, dsn)
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(sqlDB, dialect))

	if dialect == database.Postgres {
		_, err := sqlDB.Exec("TRUNCATE post_comments, post_tags, posts, categories, users")
		require.NoError(t, err)
	}

	return New(sqlDB, dialect)
}

// anonymousAuthor is an author id with no matching user row.
var anonymousAuthor = uuid.MustParse("9b2f4c1e-6d8a-4f3b-a1c7-2e5d9f0b8a64")

func createCategory(t *testing.T, db *DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug.Generate(name)}
	require.NoError(t, NewCategoryStore(db).Create(context.Background(), c))
	return c
}

// createPost inserts a post in cat. age pushes created_at into the past so
// tests control listing order.
func createPost(t *testing.T, db *DB, cat *models.Category, title string, age time.Duration, tags ...string) *models.Post {
	t.Helper()
	s := slug.Generate(title)
	p := &models.Post{
		Title:     title,
		Slug:      &s,
		Content:   "Body of " + title,
		Category:  cat.Ref(),
		Tags:      models.NormalizeTags(tags),
		Author:    models.AuthorRef{ID: anonymousAuthor},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond).Add(-age),
	}
	require.NoError(t, NewPostStore(db).Create(context.Background(), p))
	return p
}

// countComments counts the comment rows stored for a post.
func countComments(t *testing.T, db *DB, postID uuid.UUID) int {
	t.Helper()
	var n int
	_, err := get(context.Background(), db.x, &n, db.sb.Select("COUNT(*)").From("post_comments").
		Where(sq.Eq{"post_id": postID.String()}))
	require.NoError(t, err)
	return n
}
