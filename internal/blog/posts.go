// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"penblog/internal/models"
	"penblog/internal/slug"
)

// ListQuery selects one page of posts. Category is an id or slug; empty
// means every category.
type ListQuery struct {
	Page      int
	Limit     int
	Category  string
	Published *bool
}

// Page is one page of posts with its pagination metadata.
type Page struct {
	Items      []models.Post
	Pagination models.Pagination
}

// Posts manages blog posts.
type Posts struct {
	store      PostStore
	categories *Categories
	opts       Options
	tel        *telemetry
}

// NewPosts creates the post service. Category references are resolved
// through categories.
func NewPosts(store PostStore, categories *Categories, opts Options) *Posts {
	return &Posts{store: store, categories: categories, opts: opts.withDefaults(), tel: newTelemetry()}
}

// List returns one page of posts, newest first. A category filter that
// matches no category yields an empty page rather than an error.
func (s *Posts) List(ctx context.Context, q ListQuery) (_ *Page, err error) {
	ctx, span := s.tel.start(ctx, "posts.list",
		attribute.Int("page", q.Page),
		attribute.Int("limit", q.Limit),
		attribute.String("category", q.Category),
	)
	defer func() { s.tel.end(span, err) }()

	page, limit := models.NormalizePage(q.Page, q.Limit)
	filter := models.PostFilter{Published: q.Published}

	if q.Category != "" {
		c, err := s.categories.Resolve(ctx, q.Category)
		if errors.Is(err, models.ErrNotFound) {
			return &Page{Items: []models.Post{}, Pagination: models.NewPagination(page, limit, 0)}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &c.ID
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Past the last page there is nothing to fetch. Checking here also keeps
	// the offset from overflowing on absurd page numbers.
	pagination := models.NewPagination(page, limit, total)
	if page > pagination.Pages {
		return &Page{Items: []models.Post{}, Pagination: pagination}, nil
	}

	items, err := s.store.List(ctx, filter, limit, pagination.Offset())
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Pagination: pagination}, nil
}

// Get looks a post up by id when the token is an id, otherwise by slug.
func (s *Posts) Get(ctx context.Context, idOrSlug string) (_ *models.Post, err error) {
	ctx, span := s.tel.start(ctx, "posts.get", attribute.String("key", idOrSlug))
	defer func() { s.tel.end(span, err) }()

	var p *models.Post
	token := strings.TrimSpace(idOrSlug)
	if id, ok := s.opts.ParseID(token); ok {
		p, err = s.store.FindByID(ctx, id)
	} else {
		p, err = s.store.FindBySlug(ctx, strings.ToLower(token))
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrPostNotFound
	}
	return p, nil
}

// Search returns up to models.SearchLimit posts whose title, content,
// excerpt or tags contain q, newest first. A blank query matches nothing.
func (s *Posts) Search(ctx context.Context, q string) (_ []models.Post, err error) {
	ctx, span := s.tel.start(ctx, "posts.search", attribute.String("q", q))
	defer func() { s.tel.end(span, err) }()

	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Post{}, nil
	}
	return s.store.Search(ctx, q, models.SearchLimit)
}

// Create validates and stores a new post written by authorID. uuid.Nil
// means no authenticated author.
func (s *Posts) Create(ctx context.Context, authorID uuid.UUID, in models.PostInput) (_ *models.Post, err error) {
	ctx, span := s.tel.start(ctx, "posts.create")
	defer func() { s.tel.end(span, err) }()

	authorID, err = s.opts.author("posts.create", authorID)
	if err != nil {
		return nil, err
	}

	p := &models.Post{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		Excerpt:       models.OptionalString(in.Excerpt),
		Tags:          models.NormalizeTags(in.Tags),
		FeaturedImage: models.OptionalString(in.FeaturedImage),
		Author:        models.AuthorRef{ID: authorID},
	}
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}

	explicit := explicitSlug(in.Slug)
	if explicit != "" {
		p.Slug = &explicit
	} else {
		p.Slug = derivedSlug(p.Title)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	c, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	p.Category = c.Ref()

	if err := s.claimSlug(ctx, p, explicit != ""); err != nil {
		return nil, err
	}

	err = s.store.Create(ctx, p)
	if errors.Is(err, models.ErrConflict) && explicit == "" && p.Slug != nil {
		// A concurrent writer claimed the derived slug after the check.
		s.suffixSlug(p)
		err = s.store.Create(ctx, p)
	}
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrDuplicateSlug
		}
		return nil, err
	}

	s.tel.wrote(ctx, "posts.create")
	return s.reload(ctx, p.ID)
}

// Update applies patch to the post with the given id. Supplied fields
// replace the stored ones and the merged post is validated as a whole.
// A slug that was derived from the old title follows a title change; a
// slug the caller chose is kept unless the patch replaces it.
func (s *Posts) Update(ctx context.Context, id uuid.UUID, patch models.PostPatch) (_ *models.Post, err error) {
	ctx, span := s.tel.start(ctx, "posts.update", attribute.String("id", id.String()))
	defer func() { s.tel.end(span, err) }()

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrPostNotFound
	}

	if patch.Category != nil {
		c, err := s.resolveCategory(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
		p.Category = c.Ref()
	}

	oldTitle := p.Title
	titleChanged := false
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		titleChanged = title != p.Title
		p.Title = title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = models.OptionalString(patch.Excerpt)
	}
	if patch.Tags != nil {
		p.Tags = models.NormalizeTags(*patch.Tags)
	}
	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
	if patch.FeaturedImage != nil {
		p.FeaturedImage = models.OptionalString(patch.FeaturedImage)
	}

	explicit := explicitSlug(patch.Slug)
	oldSlug := p.Slug
	switch {
	case explicit != "":
		p.Slug = &explicit
	case patch.Slug != nil:
		p.Slug = derivedSlug(p.Title)
	case titleChanged && s.derived(oldSlug, oldTitle, p.ID):
		// Only slugs taken from the title follow it; a chosen slug stays.
		p.Slug = derivedSlug(p.Title)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if !sameSlug(oldSlug, p.Slug) {
		if err := s.claimSlug(ctx, p, explicit != ""); err != nil {
			return nil, err
		}
	}

	err = s.store.Update(ctx, p)
	if errors.Is(err, models.ErrConflict) && explicit == "" && p.Slug != nil {
		s.suffixSlug(p)
		err = s.store.Update(ctx, p)
	}
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrDuplicateSlug
		}
		return nil, err
	}

	s.tel.wrote(ctx, "posts.update")
	return s.reload(ctx, p.ID)
}

// Delete removes the post with the given id along with its comments.
func (s *Posts) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := s.tel.start(ctx, "posts.delete", attribute.String("id", id.String()))
	defer func() { s.tel.end(span, err) }()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.tel.wrote(ctx, "posts.delete")
	return nil
}

// resolveCategory maps a missing category to models.ErrInvalidCategory.
func (s *Posts) resolveCategory(ctx context.Context, idOrSlug string) (*models.Category, error) {
	if strings.TrimSpace(idOrSlug) == "" {
		return nil, models.ErrInvalidCategory
	}
	c, err := s.categories.Resolve(ctx, idOrSlug)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCategory
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// claimSlug makes sure p's slug is free. An explicit slug that is taken is
// an error; a derived one gets a short suffix from the post id.
func (s *Posts) claimSlug(ctx context.Context, p *models.Post, explicit bool) error {
	if p.Slug == nil {
		return nil
	}
	taken, err := s.store.SlugTaken(ctx, *p.Slug, p.ID)
	if err != nil {
		return fmt.Errorf("claim slug: %w", err)
	}
	if !taken {
		return nil
	}
	if explicit {
		return models.ErrDuplicateSlug
	}
	s.suffixSlug(p)
	return nil
}

// suffixSlug disambiguates a derived slug with the start of the post id.
func (s *Posts) suffixSlug(p *models.Post) {
	suffix := "-" + p.ID.String()[:8]
	if strings.HasSuffix(*p.Slug, suffix) {
		return
	}
	suffixed := *p.Slug + suffix
	p.Slug = &suffixed
}

// derived reports whether current is the slug the post would have been
// given from title, with or without the id suffix.
func (s *Posts) derived(current *string, title string, id uuid.UUID) bool {
	if current == nil {
		return true
	}
	base := derivedSlug(title)
	if base == nil {
		return false
	}
	return *current == *base || *current == *base+"-"+id.String()[:8]
}

func (s *Posts) reload(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrPostNotFound
	}
	return p, nil
}

// explicitSlug normalizes a caller-supplied slug. It returns "" when none
// was supplied or nothing usable remains.
func explicitSlug(s *string) string {
	if s == nil {
		return ""
	}
	return slug.Generate(*s)
}

func derivedSlug(title string) *string {
	s := slug.Generate(title)
	if s == "" {
		return nil
	}
	return &s
}

func sameSlug(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
