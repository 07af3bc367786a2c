package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penblog/internal/models"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"post not found", fmt.Errorf("get: %w", models.ErrPostNotFound), http.StatusNotFound, "Post not found"},
		{"category not found", models.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
		{"duplicate name", models.ErrDuplicateName, http.StatusBadRequest, "Category already exists"},
		{"duplicate slug", models.ErrDuplicateSlug, http.StatusBadRequest, "Slug already in use"},
		{"invalid category", models.ErrInvalidCategory, http.StatusBadRequest, "Invalid category"},
		{"invalid input", &models.Error{Base: models.ErrInvalidInput, Message: "Comment content is required"}, http.StatusBadRequest, "Comment content is required"},
		{"unauthenticated", models.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

			var body envelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestRespondValidationError(t *testing.T) {
	var verr models.ValidationError
	verr.Add("title", "Title is required")
	verr.Add("content", "Content is required")

	rr := httptest.NewRecorder()
	respondError(rr, httptest.NewRequest(http.MethodPost, "/", nil), fmt.Errorf("create: %w", verr.OrNil()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{
		"success": false,
		"errors": [
			{"field": "title", "message": "Title is required"},
			{"field": "content", "message": "Content is required"}
		]
	}`, rr.Body.String())
}

func TestRespondData(t *testing.T) {
	rr := httptest.NewRecorder()
	respondData(rr, http.StatusOK, []string{})
	assert.JSONEq(t, `{"success": true, "data": []}`, rr.Body.String())

	rr = httptest.NewRecorder()
	respondPage(rr, []int{1}, models.NewPagination(2, 1, 3))
	assert.JSONEq(t, `{
		"success": true,
		"data": [1],
		"pagination": {"page": 2, "limit": 1, "total": 3, "pages": 3}
	}`, rr.Body.String())

	rr = httptest.NewRecorder()
	respondMessage(rr, http.StatusCreated, "Comment added")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success": true, "message": "Comment added"}`, rr.Body.String())
}
