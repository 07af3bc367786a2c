// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Category field limits.
const (
	MinCategoryNameLen = 2
	MaxCategoryNameLen = 50
	MaxCategoryDescLen = 200
)

// Category groups posts. Every post references exactly one category.
// Slug is always derived from the current Name.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryRef is the expanded form of a post's category reference.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Ref returns the reference form of the category.
func (c *Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// CategoryInput carries the fields accepted when creating a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryPatch carries a partial category update. Nil fields are left unchanged.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// Normalize trims the name the same way it is stored.
func (in *CategoryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

// Validate checks the category's own field constraints.
func (c *Category) Validate() error {
	var v ValidationError
	n := utf8.RuneCountInString(c.Name)
	switch {
	case n == 0:
		v.Add("name", "Name is required")
	case n < MinCategoryNameLen || n > MaxCategoryNameLen:
		v.Add("name", "Name must be between 2 and 50 characters")
	case c.Slug == "":
		v.Add("name", "Name must contain at least one letter or digit")
	}
	if utf8.RuneCountInString(c.Description) > MaxCategoryDescLen {
		v.Add("description", "Description cannot exceed 200 characters")
	}
	return v.OrNil()
}
