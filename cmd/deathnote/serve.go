package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"deathnote/internal/cache"
	"deathnote/internal/contacts"
	"deathnote/internal/handlers"
	"deathnote/internal/middleware"
	"deathnote/internal/router"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, registry, gen, err := newService()
			if err != nil {
				return err
			}

			slog.Info("configuration loaded",
				"env", cfg.Env,
				"addr", cfg.Addr(),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Rate limiting for generation: shared counters in Valkey when
			// configured, otherwise per-process.
			var limiter middleware.Limiter
			if cfg.ValkeyEnabled() {
				client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
				if err != nil {
					return err
				}
				defer client.Close()
				limiter = cache.NewValkeyLimiter(client, cfg.RateLimitPerMinute, time.Minute)
			} else {
				mem := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
				defer mem.Stop()
				limiter = mem
				slog.Warn("valkey not configured, rate limits are per process")
			}

			api := handlers.New(gen, registry, contacts.NewStore())

			// WriteTimeout must accommodate generation requests that wait on
			// the provider (up to its 60s client timeout) and then fall back.
			srv := &http.Server{
				Addr:         cfg.Addr(),
				Handler:      router.New(api, limiter),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 90 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				slog.Info("server starting", "addr", cfg.Addr())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				slog.Info("shutdown signal received")

				// Give active requests up to 30 seconds to complete.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				slog.Error("server stopped with error", "error", err)
				return err
			}
			slog.Info("server stopped gracefully")
			return nil
		},
	}
}
