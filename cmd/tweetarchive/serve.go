package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"tweetarchive/internal/archive"
	"tweetarchive/internal/cache"
	"tweetarchive/internal/database"
	"tweetarchive/internal/handlers"
	"tweetarchive/internal/middleware"
	"tweetarchive/internal/router"
	"tweetarchive/internal/store"
)

// shutdownTimeout is how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

func serveCommand(c *cli.Context) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := database.Connect(cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Seed development data (no-op if items already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	opts := router.Options{
		CORSOrigin: cfg.CORSOrigin,
		TokenHash:  cfg.APITokenHash,
	}
	if cfg.RateLimitEnabled() {
		valkey, err := cache.ConnectValkey(c.Context, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer valkey.Close()
		opts.Limiter = middleware.NewRateLimiter(valkey, cfg.RateLimit, time.Minute)
	} else {
		slog.Warn("valkey not configured, rate limiting disabled")
	}

	svc := archive.New(store.NewItemStore(db), store.NewCategoryStore(db))
	r := router.New(handlers.NewAPI(svc), opts)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
