// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: request parsing, shape
// validation, calls into the blog services, and the response envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"penblog/internal/middleware"
	"penblog/internal/models"
)

// envelope is the body of every API response.
type envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     []models.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondData sends a success envelope carrying data.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondPage sends a success envelope carrying one page of results.
func respondPage(w http.ResponseWriter, data any, p models.Pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

// respondMessage sends a success envelope carrying only a message.
func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

// respondFail sends a failure envelope with a message.
func respondFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondError maps err onto a status code and failure envelope. Errors
// outside the domain taxonomy are logged and reported as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Errors: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondFail(w, http.StatusNotFound, errorMessage(err, "Not found"))
	case errors.Is(err, models.ErrDuplicateName):
		respondFail(w, http.StatusBadRequest, "Category already exists")
	case errors.Is(err, models.ErrDuplicateSlug):
		respondFail(w, http.StatusBadRequest, "Slug already in use")
	case errors.Is(err, models.ErrInvalidCategory):
		respondFail(w, http.StatusBadRequest, "Invalid category")
	case errors.Is(err, models.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, errorMessage(err, "Invalid input"))
	case errors.Is(err, models.ErrConflict):
		respondFail(w, http.StatusBadRequest, errorMessage(err, "Resource already exists"))
	case errors.Is(err, models.ErrUnauthenticated):
		respondFail(w, http.StatusUnauthorized, "Authentication required")
	default:
		slog.Error("request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondFail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// errorMessage returns the message of a *models.Error, or fallback.
func errorMessage(err error, fallback string) string {
	var e *models.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
