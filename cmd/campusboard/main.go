// Package main is the entry point for the CampusBoard API server.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"campusboard/internal/cache"
	"campusboard/internal/config"
	"campusboard/internal/database"
	"campusboard/internal/forum"
	"campusboard/internal/handlers"
	"campusboard/internal/router"
	"campusboard/internal/store"
	"campusboard/internal/token"
)

// newLogger builds the process-wide structured logger: human-readable text
// at debug level in development, JSON at info level everywhere else.
func newLogger(isDev bool) *slog.Logger {
	if isDev {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func main() {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.IsDev()))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN(), cfg.DBMaxConns, cfg.DBConnMaxLifetime)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
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

	// Connect to Valkey for the category tree cache. The API degrades to
	// store reads when Valkey is unavailable.
	var valkeyClient *redis.Client
	valkeyClient, err = cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, category tree caching disabled", "error", err)
		valkeyClient = nil
	} else {
		defer valkeyClient.Close()
	}
	treeCache := cache.NewTreeCache(valkeyClient, cache.DefaultTreeTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	postStore := store.NewPostStore(db)
	voteStore := store.NewVoteStore(db)

	// Domain service for posts, projections and votes.
	forumService := forum.NewService(postStore, tagStore, voteStore)

	// JWT token manager for stateless API authentication.
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL, time.Now)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, tokens)
	postHandlers := handlers.NewPosts(forumService)
	categoryHandlers := handlers.NewCategories(categoryStore, treeCache)
	tagHandlers := handlers.NewTags(tagStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, userStore, authHandlers, postHandlers, categoryHandlers, tagHandlers)

	// Create the HTTP server with sensible timeouts.
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

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
