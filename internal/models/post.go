// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"penblog/internal/slug"
)

// Post field limits.
const (
	MinTitleLen   = 3
	MaxTitleLen   = 100
	MaxExcerptLen = 200
	MaxSlugLen    = 120
)

// Post is a blog post with its tags and comments.
type Post struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Slug          *string     `json:"slug,omitempty"`
	Content       string      `json:"content"`
	Excerpt       *string     `json:"excerpt,omitempty"`
	Category      CategoryRef `json:"category"`
	Tags          []string    `json:"tags"`
	IsPublished   bool        `json:"isPublished"`
	FeaturedImage *string     `json:"featuredImage,omitempty"`
	Author        AuthorRef   `json:"author"`
	Comments      []Comment   `json:"comments"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Comment is an entry in a post's append-only comment list.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"-"`
	Author    AuthorRef `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorRef is the expanded form of a user reference. Name and Email are
// empty when the id does not belong to a registered user.
type AuthorRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

// PostInput carries the fields accepted when creating a post. Category is
// an id or a slug.
type PostInput struct {
	Title         string
	Slug          *string
	Content       string
	Excerpt       *string
	Category      string
	Tags          []string
	IsPublished   *bool
	FeaturedImage *string
}

// PostPatch carries a partial post update. Nil fields are left unchanged.
type PostPatch struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	Category      *string
	Tags          *[]string
	IsPublished   *bool
	FeaturedImage *string
}

// PostFilter narrows a post listing.
type PostFilter struct {
	CategoryID *uuid.UUID
	Published  *bool
}

// NormalizeTags returns a non-nil copy of tags with blank entries dropped.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// OptionalString trims s and maps an empty result to nil.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Validate checks the post's own field constraints. Category resolution is
// checked separately by the caller.
func (p *Post) Validate() error {
	var v ValidationError

	n := utf8.RuneCountInString(p.Title)
	switch {
	case n == 0:
		v.Add("title", "Title is required")
	case n < MinTitleLen || n > MaxTitleLen:
		v.Add("title", "Title must be between 3 and 100 characters")
	}
	if p.Content == "" {
		v.Add("content", "Content is required")
	}
	if p.Excerpt != nil && utf8.RuneCountInString(*p.Excerpt) > MaxExcerptLen {
		v.Add("excerpt", "Excerpt cannot exceed 200 characters")
	}
	if p.Slug != nil {
		switch {
		case len(*p.Slug) > MaxSlugLen:
			v.Add("slug", "Slug cannot exceed 120 characters")
		case !slug.Valid(*p.Slug):
			v.Add("slug", "Slug may only contain lowercase letters, digits and hyphens")
		}
	}
	return v.OrNil()
}
