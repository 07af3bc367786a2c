// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"penblog/internal/models"
	"penblog/internal/slug"
)

// Categories manages categories and resolves category references for posts.
type Categories struct {
	store CategoryStore
	opts  Options
	tel   *telemetry
}

// NewCategories creates the category service.
func NewCategories(store CategoryStore, opts Options) *Categories {
	return &Categories{store: store, opts: opts.withDefaults(), tel: newTelemetry()}
}

// List returns every category ordered by name.
func (s *Categories) List(ctx context.Context) (_ []models.Category, err error) {
	ctx, span := s.tel.start(ctx, "categories.list")
	defer func() { s.tel.end(span, err) }()

	return s.store.List(ctx)
}

// Create validates and stores a new category. The slug is derived from the
// name; a name or slug that is already taken yields models.ErrDuplicateName.
func (s *Categories) Create(ctx context.Context, in models.CategoryInput) (_ *models.Category, err error) {
	ctx, span := s.tel.start(ctx, "categories.create")
	defer func() { s.tel.end(span, err) }()

	in.Normalize()
	c := &models.Category{
		Name:        in.Name,
		Slug:        slug.Generate(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, c); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, c); err != nil {
		// A concurrent create can win the race after checkUnique.
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrDuplicateName
		}
		return nil, err
	}

	s.tel.wrote(ctx, "categories.create")
	return c, nil
}

// Resolve looks a category up by id when the token is an id, otherwise by
// slug.
func (s *Categories) Resolve(ctx context.Context, idOrSlug string) (_ *models.Category, err error) {
	ctx, span := s.tel.start(ctx, "categories.resolve", attribute.String("key", idOrSlug))
	defer func() { s.tel.end(span, err) }()

	var c *models.Category
	token := strings.TrimSpace(idOrSlug)
	if id, ok := s.opts.ParseID(token); ok {
		c, err = s.store.FindByID(ctx, id)
	} else {
		c, err = s.store.FindBySlug(ctx, strings.ToLower(token))
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, models.ErrCategoryNotFound
	}
	return c, nil
}

// Update applies patch to the category identified by idOrSlug. A rename
// regenerates the slug and is subject to the same uniqueness rules as
// Create.
func (s *Categories) Update(ctx context.Context, idOrSlug string, patch models.CategoryPatch) (_ *models.Category, err error) {
	ctx, span := s.tel.start(ctx, "categories.update", attribute.String("key", idOrSlug))
	defer func() { s.tel.end(span, err) }()

	c, err := s.Resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	renamed := false
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		renamed = !strings.EqualFold(name, c.Name)
		c.Name = name
		c.Slug = slug.Generate(name)
	}
	if patch.Description != nil {
		c.Description = strings.TrimSpace(*patch.Description)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if renamed {
		if err := s.checkUnique(ctx, c); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, c); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrDuplicateName
		}
		return nil, err
	}

	s.tel.wrote(ctx, "categories.update")
	return c, nil
}

// checkUnique fails with models.ErrDuplicateName when another category
// already has c's name (ignoring case) or c's slug.
func (s *Categories) checkUnique(ctx context.Context, c *models.Category) error {
	existing, err := s.store.FindByName(ctx, c.Name)
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if existing != nil && existing.ID != c.ID {
		return models.ErrDuplicateName
	}

	existing, err = s.store.FindBySlug(ctx, c.Slug)
	if err != nil {
		return fmt.Errorf("check category slug: %w", err)
	}
	if existing != nil && existing.ID != c.ID {
		return models.ErrDuplicateName
	}
	return nil
}
