package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"hola/internal/cache"
	"hola/internal/clock"
	"hola/internal/config"
	"hola/internal/database"
	"hola/internal/handlers"
	"hola/internal/middleware"
	"hola/internal/render"
	"hola/internal/router"
	"hola/internal/session"
	"hola/internal/store"
	"hola/internal/theme"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe serves until ctx is cancelled, then drains connections.
func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	svc, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	greetings, closeCache, err := svc.greetingStore(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	clk := clock.RealClock{}
	if cfg.IsDev() {
		if err := database.Seed(ctx, greetings, store.ErrNotFound, clk.Now()); err != nil {
			return fmt.Errorf("seed sample greeting: %w", err)
		}
	}

	// Valkey holds sessions, custom themes and rendered greeting pages.
	valkeyClient, err := cache.ConnectValkey(ctx, cache.ValkeyOptions{
		Host:     cfg.ValkeyHost,
		Port:     cfg.ValkeyPort,
		Password: cfg.ValkeyPassword,
		DB:       cfg.ValkeyDB,
	})
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer valkeyClient.Close()

	// Outside development, session cookies are Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	customThemes := theme.NewValkeyStore(valkeyClient, theme.DefaultCustomTTL)

	// In dev mode, templates load assets from CDN; in production they use
	// compiled local files embedded in the binary.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL, renderer.Version())
	go func() {
		n, err := pageCache.Prune(ctx)
		if err != nil {
			slog.Warn("page cache prune failed", "error", err)
			return
		}
		slog.Info("page cache pruned", "template_version", renderer.Version(), "deleted", n)
	}()

	ids := clock.UUIDGenerator{}
	limiter := middleware.NewRateLimiter(cfg.CreateRateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(sessionStore, limiter, cfg.IsDev(), router.Handlers{
		Pages:     handlers.NewPages(renderer, pageCache),
		Editor:    handlers.NewEditor(renderer, sessionStore, greetings, customThemes, handlers.NewImageStore(svc.storage, ids), clk, ids),
		Greetings: handlers.NewGreetings(renderer, sessionStore, greetings, pageCache, cfg.BaseURL, clk),
		API:       handlers.NewAPI(greetings, clk, ids),
	})

	// No WriteTimeout: effect streams stay open while a card is on screen.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete. Effect streams end
	// as soon as ctx is done because it is their base context.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
