// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"penblog/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

var categoryColumns = []string{"id", "name", "slug", "description", "created_at", "updated_at"}

func (s *CategoryStore) selectCategories() sq.SelectBuilder {
	return s.db.sb.Select(categoryColumns...).From("categories")
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	items := []models.Category{}
	if err := selectAll(ctx, s.db.x, &items, s.selectCategories().OrderBy("name ASC")); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.findOne(ctx, "find category by id", sq.Eq{"id": id.String()})
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.findOne(ctx, "find category by slug", sq.Eq{"slug": slug})
}

// FindByName retrieves a category by name, ignoring case. Returns nil if
// not found.
func (s *CategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return s.findOne(ctx, "find category by name", sq.Expr("LOWER(name) = ?", strings.ToLower(name)))
}

func (s *CategoryStore) findOne(ctx context.Context, op string, where sq.Sqlizer) (*models.Category, error) {
	var c models.Category
	found, err := get(ctx, s.db.x, &c, s.selectCategories().Where(where))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// Create inserts a new category, assigning its id and timestamps. A name or
// slug taken by another category yields models.ErrConflict.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) error {
	c.ID = uuid.New()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	_, err := exec(ctx, s.db.x, s.db.sb.Insert("categories").
		Columns(categoryColumns...).
		Values(c.ID.String(), c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("create category: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update saves the name, slug and description of an existing category.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = now()

	n, err := exec(ctx, s.db.x, s.db.sb.Update("categories").
		Set("name", c.Name).
		Set("slug", c.Slug).
		Set("description", c.Description).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID.String()}))
	if isUniqueViolation(err) {
		return fmt.Errorf("update category: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}
