// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"penblog/internal/models"
)

// PostStore handles post persistence together with the post's tags.
// Reads also load the post's comments in append order.
type PostStore struct {
	db *DB
}

// NewPostStore creates a new PostStore with the given database handle.
func NewPostStore(db *DB) *PostStore {
	return &PostStore{db: db}
}

// postRow is a posts row joined with its category and author.
type postRow struct {
	ID            uuid.UUID `db:"id"`
	Title         string    `db:"title"`
	Slug          *string   `db:"slug"`
	Content       string    `db:"content"`
	Excerpt       *string   `db:"excerpt"`
	IsPublished   bool      `db:"is_published"`
	FeaturedImage *string   `db:"featured_image"`
	CategoryID    uuid.UUID `db:"category_id"`
	CategoryName  string    `db:"category_name"`
	CategorySlug  string    `db:"category_slug"`
	AuthorID      uuid.UUID `db:"author_id"`
	AuthorName    *string   `db:"author_name"`
	AuthorEmail   *string   `db:"author_email"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type tagRow struct {
	PostID uuid.UUID `db:"post_id"`
	Tag    string    `db:"tag"`
}

type commentRow struct {
	ID          uuid.UUID `db:"id"`
	PostID      uuid.UUID `db:"post_id"`
	AuthorID    uuid.UUID `db:"author_id"`
	AuthorName  *string   `db:"author_name"`
	AuthorEmail *string   `db:"author_email"`
	Content     string    `db:"content"`
	CreatedAt   time.Time `db:"created_at"`
}

func authorRef(id uuid.UUID, name, email *string) models.AuthorRef {
	ref := models.AuthorRef{ID: id}
	if name != nil {
		ref.Name = *name
	}
	if email != nil {
		ref.Email = *email
	}
	return ref
}

func (s *PostStore) selectPosts() sq.SelectBuilder {
	return s.db.sb.Select(
		"p.id AS id",
		"p.title AS title",
		"p.slug AS slug",
		"p.content AS content",
		"p.excerpt AS excerpt",
		"p.is_published AS is_published",
		"p.featured_image AS featured_image",
		"p.category_id AS category_id",
		"c.name AS category_name",
		"c.slug AS category_slug",
		"p.author_id AS author_id",
		"u.display_name AS author_name",
		"u.email AS author_email",
		"p.created_at AS created_at",
		"p.updated_at AS updated_at",
	).
		From("posts p").
		Join("categories c ON c.id = p.category_id").
		LeftJoin("users u ON u.id = p.author_id")
}

func filterWhere(f models.PostFilter) sq.And {
	where := sq.And{}
	if f.CategoryID != nil {
		where = append(where, sq.Eq{"p.category_id": f.CategoryID.String()})
	}
	if f.Published != nil {
		where = append(where, sq.Eq{"p.is_published": *f.Published})
	}
	return where
}

// List returns one page of posts matching f, newest first.
func (s *PostStore) List(ctx context.Context, f models.PostFilter, limit, offset int) ([]models.Post, error) {
	q := s.selectPosts().
		Where(filterWhere(f)).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	posts, err := s.load(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Count returns the number of posts matching f.
func (s *PostStore) Count(ctx context.Context, f models.PostFilter) (int, error) {
	var n int
	_, err := get(ctx, s.db.x, &n, s.db.sb.Select("COUNT(*)").From("posts p").Where(filterWhere(f)))
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// Search returns up to limit posts whose title, content, excerpt or any tag
// contains q, ignoring case. q is matched literally.
func (s *PostStore) Search(ctx context.Context, q string, limit int) ([]models.Post, error) {
	pattern := containsPattern(q)
	match := sq.Or{
		sq.Expr(`LOWER(p.title) LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`LOWER(p.content) LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`LOWER(COALESCE(p.excerpt, '')) LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`EXISTS (SELECT 1 FROM post_tags t WHERE t.post_id = p.id AND LOWER(t.tag) LIKE ? ESCAPE '\')`, pattern),
	}

	posts, err := s.load(ctx, s.selectPosts().
		Where(match).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	posts, err := s.load(ctx, s.selectPosts().Where(sq.Eq{"p.id": id.String()}))
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// FindBySlug retrieves a post by its slug. Returns nil if not found.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	posts, err := s.load(ctx, s.selectPosts().Where(sq.Eq{"p.slug": slug}))
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// SlugTaken reports whether any post other than exclude uses slug.
func (s *PostStore) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var n int
	_, err := get(ctx, s.db.x, &n, s.db.sb.Select("COUNT(*)").From("posts").
		Where(sq.Eq{"slug": slug}).
		Where(sq.NotEq{"id": exclude.String()}))
	if err != nil {
		return false, fmt.Errorf("check post slug: %w", err)
	}
	return n > 0, nil
}

// Create inserts a post and its tags in one transaction, assigning the id
// and timestamps when unset. A slug taken by another post yields models.ErrConflict.
func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	p.UpdatedAt = p.CreatedAt

	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := exec(ctx, tx, s.db.sb.Insert("posts").
			Columns("id", "title", "slug", "content", "excerpt", "category_id",
				"is_published", "featured_image", "author_id", "created_at", "updated_at").
			Values(p.ID.String(), p.Title, p.Slug, p.Content, p.Excerpt, p.Category.ID.String(),
				p.IsPublished, p.FeaturedImage, p.Author.ID.String(), p.CreatedAt, p.UpdatedAt))
		if err != nil {
			return err
		}
		return s.insertTags(ctx, tx, p.ID, p.Tags)
	})
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("create post: %w", models.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("create post: %w", models.ErrInvalidCategory)
	case err != nil:
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update saves every mutable field of an existing post and replaces its tag
// list in one transaction.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	p.UpdatedAt = now()

	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		n, err := exec(ctx, tx, s.db.sb.Update("posts").
			Set("title", p.Title).
			Set("slug", p.Slug).
			Set("content", p.Content).
			Set("excerpt", p.Excerpt).
			Set("category_id", p.Category.ID.String()).
			Set("is_published", p.IsPublished).
			Set("featured_image", p.FeaturedImage).
			Set("updated_at", p.UpdatedAt).
			Where(sq.Eq{"id": p.ID.String()}))
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrPostNotFound
		}

		if _, err := exec(ctx, tx, s.db.sb.Delete("post_tags").Where(sq.Eq{"post_id": p.ID.String()})); err != nil {
			return err
		}
		return s.insertTags(ctx, tx, p.ID, p.Tags)
	})
	switch {
	case errors.Is(err, models.ErrPostNotFound):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("update post: %w", models.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("update post: %w", models.ErrInvalidCategory)
	case err != nil:
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post together with its comments and tags.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := exec(ctx, tx, s.db.sb.Delete("post_comments").Where(sq.Eq{"post_id": id.String()})); err != nil {
			return err
		}
		if _, err := exec(ctx, tx, s.db.sb.Delete("post_tags").Where(sq.Eq{"post_id": id.String()})); err != nil {
			return err
		}
		n, err := exec(ctx, tx, s.db.sb.Delete("posts").Where(sq.Eq{"id": id.String()}))
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrPostNotFound
		}
		return nil
	})
	if errors.Is(err, models.ErrPostNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostStore) insertTags(ctx context.Context, tx *sqlx.Tx, postID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	ins := s.db.sb.Insert("post_tags").Columns("post_id", "sort_order", "tag")
	for i, tag := range tags {
		ins = ins.Values(postID.String(), i, tag)
	}
	_, err := exec(ctx, tx, ins)
	return err
}

// load runs a post select and attaches tags and comments to every result.
func (s *PostStore) load(ctx context.Context, q sq.SelectBuilder) ([]models.Post, error) {
	var rows []postRow
	if err := selectAll(ctx, s.db.x, &rows, q); err != nil {
		return nil, err
	}

	posts := make([]models.Post, len(rows))
	if len(rows) == 0 {
		return posts, nil
	}

	ids := make([]string, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for i, r := range rows {
		posts[i] = models.Post{
			ID:            r.ID,
			Title:         r.Title,
			Slug:          r.Slug,
			Content:       r.Content,
			Excerpt:       r.Excerpt,
			Category:      models.CategoryRef{ID: r.CategoryID, Name: r.CategoryName, Slug: r.CategorySlug},
			Tags:          []string{},
			IsPublished:   r.IsPublished,
			FeaturedImage: r.FeaturedImage,
			Author:        authorRef(r.AuthorID, r.AuthorName, r.AuthorEmail),
			Comments:      []models.Comment{},
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		}
		ids[i] = r.ID.String()
		index[r.ID] = i
	}

	var tags []tagRow
	err := selectAll(ctx, s.db.x, &tags, s.db.sb.Select("post_id", "tag").
		From("post_tags").
		Where(sq.Eq{"post_id": ids}).
		OrderBy("post_id", "sort_order"))
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	for _, t := range tags {
		p := &posts[index[t.PostID]]
		p.Tags = append(p.Tags, t.Tag)
	}

	var comments []commentRow
	err = selectAll(ctx, s.db.x, &comments, s.db.sb.Select(
		"pc.id AS id",
		"pc.post_id AS post_id",
		"pc.author_id AS author_id",
		"u.display_name AS author_name",
		"u.email AS author_email",
		"pc.content AS content",
		"pc.created_at AS created_at",
	).
		From("post_comments pc").
		LeftJoin("users u ON u.id = pc.author_id").
		Where(sq.Eq{"pc.post_id": ids}).
		OrderBy("pc.seq"))
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	for _, c := range comments {
		p := &posts[index[c.PostID]]
		p.Comments = append(p.Comments, models.Comment{
			ID:        c.ID,
			PostID:    c.PostID,
			Author:    authorRef(c.AuthorID, c.AuthorName, c.AuthorEmail),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	return posts, nil
}
