// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"strings"
)

// Sentinel errors shared by the stores, the blog services, and the HTTP layer.
// Callers match them with errors.Is.
var (
	// ErrNotFound is returned when an id or slug resolves to nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a category name (or its slug) is taken.
	ErrDuplicateName = errors.New("category already exists")

	// ErrDuplicateSlug is returned when an explicit post slug is taken.
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrInvalidCategory is returned when a post references an unknown category.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidInput is returned for malformed non-field input, such as an
	// empty comment.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated is returned when a write needs an author and none
	// was supplied.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrConflict is returned by stores when a unique constraint rejects a write.
	ErrConflict = errors.New("conflicting record exists")

	// ErrValidation is the base of every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// Error attaches a human-readable message to one of the sentinel errors.
type Error struct {
	Base    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Base.Error()
	}
	return e.Message
}

// Unwrap exposes the sentinel for errors.Is.
func (e *Error) Unwrap() error {
	return e.Base
}

// Resource-specific not-found errors.
var (
	ErrPostNotFound     = &Error{Base: ErrNotFound, Message: "Post not found"}
	ErrCategoryNotFound = &Error{Base: ErrNotFound, Message: "Category not found"}
	ErrUserNotFound     = &Error{Base: ErrNotFound, Message: "User not found"}
)

// FieldError describes one failed field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field constraint that failed.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

// Add records a failed constraint for field.
func (v *ValidationError) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns v as an error when it holds at least one failure.
func (v *ValidationError) OrNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (v *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}
