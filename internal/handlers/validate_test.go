// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penblog/internal/models"
)

func decodeString(t *testing.T, body string, dst any) error {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return decode(httptest.NewRecorder(), r, dst)
}

func fieldsOf(t *testing.T, err error) []models.FieldError {
	t.Helper()
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr), "want *models.ValidationError, got %v", err)
	return verr.Fields
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"empty body", "", "body", "Request body is required"},
		{"malformed", `{"title":`, "body", "Request body must be valid JSON"},
		{"wrong type", `{"title": 1}`, "title", "must be a string"},
		{"required", `{"content": "x", "category": "c"}`, "title", "is required"},
		{"too long", `{"title": "` + strings.Repeat("a", 101) + `", "content": "x", "category": "c"}`, "title", "must be at most 100 characters"},
		{"tag too long", `{"title": "t", "content": "x", "category": "c", "tags": ["` + strings.Repeat("a", 101) + `"]}`, "tags[0]", "must be at most 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req createPostRequest
			fields := fieldsOf(t, decodeString(t, tt.body, &req))
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)
			assert.Equal(t, tt.message, fields[0].Message)
		})
	}
}

func TestDecodeValid(t *testing.T) {
	var req createPostRequest
	err := decodeString(t, `{"title": "t", "content": "x", "category": "c", "tags": ["a"], "isPublished": true}`, &req)
	require.NoError(t, err)
	assert.Equal(t, "t", req.Title)
	assert.Equal(t, []string{"a"}, req.Tags)
	require.NotNil(t, req.IsPublished)
	assert.True(t, *req.IsPublished)
	assert.Nil(t, req.Slug)
}

func TestDecodePatchSkipsAbsentFields(t *testing.T) {
	var req updatePostRequest
	require.NoError(t, decodeString(t, `{}`, &req))
	assert.Nil(t, req.Title)
	assert.Nil(t, req.Tags)

	err := decodeString(t, `{"tags": ["`+strings.Repeat("a", 101)+`"]}`, &req)
	fields := fieldsOf(t, err)
	assert.Equal(t, "tags[0]", fields[0].Field)
}

func TestDecodeBodyTooLarge(t *testing.T) {
	var req commentRequest
	body := `{"content": "` + strings.Repeat("a", maxBodyBytes) + `"}`
	fields := fieldsOf(t, decodeString(t, body, &req))
	assert.Equal(t, "body", fields[0].Field)
}

func TestRegisterShape(t *testing.T) {
	var req registerRequest
	fields := fieldsOf(t, decodeString(t, `{"email": "nope", "password": "short", "name": "A"}`, &req))
	require.Len(t, fields, 2)
	assert.Equal(t, models.FieldError{Field: "email", Message: "must be a valid email address"}, fields[0])
	assert.Equal(t, models.FieldError{Field: "password", Message: "must be at least 8 characters"}, fields[1])
}
