// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// penblog API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"penblog/internal/handlers"
	"penblog/internal/middleware"
)

// Deps carries everything the router wires together. Sessions and
// LoginLimiter may be nil.
type Deps struct {
	API            *handlers.API
	Auth           *handlers.Auth
	DB             handlers.Pinger
	Sessions       middleware.SessionGetter
	LoginLimiter   *middleware.RateLimiter
	RequestTimeout time.Duration
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. RequestID runs first so
	// recovery and access logs can name the request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}
	r.Use(middleware.Identify(d.Sessions))

	r.Get("/health", handlers.Health(d.DB))

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.API.ListCategories)
			r.Post("/", d.API.CreateCategory)
			r.Get("/{idOrSlug}", d.API.GetCategory)
			r.Put("/{idOrSlug}", d.API.UpdateCategory)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", d.API.ListPosts)
			r.Post("/", d.API.CreatePost)
			// Registered before the parameter route so "search" is never
			// taken for a slug.
			r.Get("/search", d.API.SearchPosts)
			r.Get("/{id}", d.API.GetPost)
			r.Put("/{id}", d.API.UpdatePost)
			r.Delete("/{id}", d.API.DeletePost)
			r.Post("/{id}/comments", d.API.AddComment)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.With(limit(d.LoginLimiter)).Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)
			r.Get("/me", d.Auth.Me)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	})

	return r
}

func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}
