// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the corpsite API server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corpsite/internal/cache"
	"corpsite/internal/config"
	"corpsite/internal/database"
	"corpsite/internal/handlers"
	"corpsite/internal/metrics"
	"corpsite/internal/middleware"
	"corpsite/internal/router"
	"corpsite/internal/session"
	"corpsite/internal/storage"
	"corpsite/internal/store"
)

// Login attempts allowed per client IP per window.
const (
	loginLimit  = 10
	loginWindow = time.Minute
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL and bring the schema up to date.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey, which backs the session store.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session cookies are Secure (HTTPS-only) outside development.
	sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())

	// Data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	jobStore := store.NewJobStore(db)
	projectStore := store.NewProjectStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	authorStore := store.NewAuthorStore(db)
	departmentStore := store.NewDepartmentStore(db)
	locationStore := store.NewLocationStore(db)
	mediaStore := store.NewMediaStore(db)

	// Media backend: S3-compatible object storage when configured, local
	// disk under the uploads dir otherwise.
	var backend storage.Backend
	uploadsDir := ""
	if cfg.S3Configured() {
		s3Backend, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize s3 storage", "error", err)
			os.Exit(1)
		}
		backend = s3Backend
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		localBackend, err := storage.NewLocal(cfg.UploadsDir, "/uploads")
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		backend = localBackend
		uploadsDir = localBackend.Dir()
		slog.Info("local storage ready", "dir", uploadsDir)
	}

	loginLimiter := middleware.NewRateLimiter(loginLimit, loginWindow)
	loginLimiter.OnLimited = func() { metrics.ObserveLogin("rate_limited") }
	defer loginLimiter.Stop()

	// Handler groups.
	r := router.New(router.Deps{
		Sessions:     sessionStore,
		Auth:         handlers.NewAuth(sessionStore, userStore),
		Posts:        handlers.NewPosts(postStore, authorStore, userStore),
		Jobs:         handlers.NewJobs(jobStore),
		Projects:     handlers.NewProjects(projectStore),
		MasterData:   handlers.NewMasterData(categoryStore, tagStore, authorStore, departmentStore, locationStore),
		Users:        handlers.NewUsers(userStore),
		Media:        handlers.NewMedia(mediaStore, backend),
		Public:       handlers.NewPublic(postStore, jobStore, projectStore),
		CORSOrigins:  cfg.CORSOrigins,
		LoginLimiter: loginLimiter,
		UploadsDir:   uploadsDir,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
