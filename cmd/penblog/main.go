// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the penblog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"penblog/internal/blog"
	"penblog/internal/cache"
	"penblog/internal/config"
	"penblog/internal/database"
	"penblog/internal/handlers"
	"penblog/internal/logger"
	"penblog/internal/middleware"
	"penblog/internal/router"
	"penblog/internal/session"
	"penblog/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db_driver", cfg.DBDriver,
	)

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db, cfg.DBDriver); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Sessions are optional. Without Valkey every caller is anonymous and
	// the auth endpoints answer 501.
	var (
		sessionStore *session.Store
		sessions     middleware.SessionGetter
	)
	if cfg.SessionsEnabled() {
		valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		// Outside development, session cookies are Secure (HTTPS-only).
		sessionStore = session.NewStore(valkeyClient, !cfg.IsDev())
		sessions = sessionStore
	} else {
		slog.Warn("valkey not configured, authentication disabled")
	}

	if cfg.AllowAnonymousWrites {
		slog.Warn("anonymous writes enabled, unauthenticated posts and comments get a generated author id")
	}

	// Data stores.
	sdb := store.New(db, cfg.DBDriver)
	userStore := store.NewUserStore(sdb)

	// Blog services.
	opts := blog.Options{
		AllowAnonymous: cfg.AllowAnonymousWrites,
		Logger:         logger.WithComponent(log, "blog"),
	}
	categories := blog.NewCategories(store.NewCategoryStore(sdb), opts)
	posts := blog.NewPosts(store.NewPostStore(sdb), categories, opts)
	comments := blog.NewComments(store.NewCommentStore(sdb), opts)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	defer loginLimiter.Stop()

	r := router.New(router.Deps{
		API:            handlers.NewAPI(categories, posts, comments, blog.ParseID),
		Auth:           handlers.NewAuth(sessionStore, userStore),
		DB:             sdb,
		Sessions:       sessions,
		LoginLimiter:   loginLimiter,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server stopped gracefully")
}
