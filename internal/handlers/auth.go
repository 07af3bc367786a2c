// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"penblog/internal/middleware"
	"penblog/internal/models"
	"penblog/internal/session"
	"penblog/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group. A nil session store disables
// register, login and logout.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a user account.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	if !a.enabled(w) {
		return
	}

	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := a.userStore.Create(r.Context(), req.Email, req.Password, req.Name)
	if errors.Is(err, models.ErrConflict) {
		respondFail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	respondData(w, http.StatusCreated, user)
}

// Login checks credentials and opens a session. The token is returned in
// the body for bearer use and set as a cookie.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if !a.enabled(w) {
		return
	}

	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := a.userStore.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Same answer for unknown email and wrong password.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		respondFail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	respondData(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout destroys the caller's session, if any.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if !a.enabled(w) {
		return
	}

	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Logged out")
}

// Me returns the authenticated user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserIDFromContext(r.Context())
	if id == uuid.Nil {
		respondError(w, r, models.ErrUnauthenticated)
		return
	}

	user, err := a.userStore.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil {
		// Session outlived its user.
		respondError(w, r, models.ErrUnauthenticated)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (a *Auth) enabled(w http.ResponseWriter) bool {
	if a.sessions == nil {
		respondFail(w, http.StatusNotImplemented, "Authentication is not configured")
		return false
	}
	return true
}
