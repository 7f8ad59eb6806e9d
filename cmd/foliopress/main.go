// Package main is the entry point for the portfolio web server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foliopress/internal/apiclient"
	"foliopress/internal/cache"
	"foliopress/internal/config"
	"foliopress/internal/github"
	"foliopress/internal/handlers"
	"foliopress/internal/render"
	"foliopress/internal/router"
	"foliopress/internal/session"
	"foliopress/internal/token"
)

func main() {
	// Structured logger. JSON would suit production log shippers; text is
	// kept for readability on a single-owner deployment.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"journal_api", cfg.APIBaseURL,
	)

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey. In non-development environments,
	// mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// HTML template renderer for the public site and the admin console.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Journal API client. The bearer token comes from the request context,
	// where the session middleware places it for logged-in admins.
	api := apiclient.New(cfg.APIBaseURL, token.ContextSource{})

	// Warn early when the journal API is down; the server still starts.
	probeCtx, probeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := api.Health(probeCtx); err != nil {
		slog.Warn("journal api health check failed", "error", err, "url", cfg.APIBaseURL)
	}
	probeCancel()

	// GitHub client for the projects page.
	gh := github.New()

	// Query cache for upstream API responses.
	queries := cache.NewQueryCache(valkeyClient, cache.DefaultQueryTTL)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, api, queries)
	authHandlers := handlers.NewAuth(renderer, sessionStore, api)
	publicHandlers := handlers.NewPublic(renderer, api, gh, queries, cfg.GitHubUser)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, router.Options{
		Secure: secureCookies,
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// pages that fan out to the journal API and GitHub on a cold cache.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
