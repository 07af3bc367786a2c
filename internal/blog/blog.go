// Package blog holds the business rules of the blog core: category
// uniqueness, slug handling, dual-key resolution, post listing and search,
// and the append-only comment ledger. Persistence is delegated to the
// stores in internal/store through the small interfaces declared here.
package blog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"penblog/internal/models"
)

// IDParser decides whether a token is a record identifier. It is the single
// predicate behind every id-or-slug decision.
type IDParser func(token string) (uuid.UUID, bool)

// ParseID accepts only the canonical 36-character UUID text form. Anything
// else, including other encodings uuid.Parse would take, is treated as a
// slug.
func ParseID(token string) (uuid.UUID, bool) {
	if len(token) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Options configures the blog services.
type Options struct {
	// ParseID defaults to ParseID.
	ParseID IDParser

	// AllowAnonymous lets writes without an authenticated author proceed
	// under a freshly generated author id. Off by default.
	AllowAnonymous bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ParseID == nil {
		o.ParseID = ParseID
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// author returns the id writes are attributed to. uuid.Nil means the
// caller is not authenticated.
func (o Options) author(op string, id uuid.UUID) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}
	if !o.AllowAnonymous {
		return uuid.Nil, models.ErrUnauthenticated
	}
	anon := uuid.New()
	o.Logger.Warn("anonymous write attributed to generated author", "op", op, "author_id", anon)
	return anon, nil
}

// CategoryStore is the persistence the category service needs.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
}

// PostStore is the persistence the post service needs.
type PostStore interface {
	List(ctx context.Context, f models.PostFilter, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context, f models.PostFilter) (int, error)
	Search(ctx context.Context, q string, limit int) ([]models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentStore is the persistence the comment ledger needs.
type CommentStore interface {
	Append(ctx context.Context, c *models.Comment) error
}
