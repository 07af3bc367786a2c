// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a lowercase letter, digit, space, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9 -]+`)
	// separators collapses runs of spaces and hyphens into one hyphen.
	separators = regexp.MustCompile(`[ -]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Tech Notes: Go & SQL" → "tech-notes-go-sql"
//
// The result only ever contains [a-z0-9-] and is stable under repeated
// application. An input with no letters or digits yields "".
func Generate(s string) string {
	result := strings.ToLower(s)
	result = disallowed.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is a non-empty slug in canonical form.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
