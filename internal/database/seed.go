package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"penblog/internal/slug"
)

// Development seed credentials.
const (
	SeedEmail    = "author@penblog.local"
	SeedPassword = "author"
)

// seedCategories are created on a fresh development database.
var seedCategories = []struct{ name, description string }{
	{"General", "Everything that does not fit elsewhere"},
	{"Tech Notes", "Short write-ups about tools and code"},
}

// Seed populates the database with initial development data: one author
// and a couple of categories. It is a no-op when any user already exists.
func Seed(db *sql.DB, dialect string) error {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == Postgres {
		builder = builder.PlaceholderFormat(sq.Dollar)
	}

	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	_, err = builder.Insert("users").
		Columns("id", "email", "password_hash", "display_name", "created_at", "updated_at").
		Values(uuid.New(), SeedEmail, string(hash), "Author", now, now).
		RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	for _, c := range seedCategories {
		_, err = builder.Insert("categories").
			Columns("id", "name", "slug", "description", "created_at", "updated_at").
			Values(uuid.New(), c.name, slug.Generate(c.name), c.description, now, now).
			Suffix("ON CONFLICT DO NOTHING").
			RunWith(tx).Exec()
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development author",
		"email", SeedEmail,
		"password", SeedPassword,
	)

	return nil
}
