package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dealdeck/dealdeck/internal/config"
	"github.com/dealdeck/dealdeck/internal/database"
	"github.com/dealdeck/dealdeck/internal/deals"
	"github.com/dealdeck/dealdeck/internal/logging"
	"github.com/dealdeck/dealdeck/internal/redis"
	"github.com/dealdeck/dealdeck/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	dealRepo := database.NewDealRepo(pool)

	// Redis is optional: without it every stats read goes to PostgreSQL.
	var cache *redis.StatsCache
	if cfg.RedisURL != "" && cfg.StatsCacheTTLSeconds > 0 {
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redis.NewStatsCache(rdb, dealRepo, time.Duration(cfg.StatsCacheTTLSeconds)*time.Second)
	}

	var svc *deals.Service
	if cache != nil {
		svc = deals.NewService(dealRepo, cache)
	} else {
		svc = deals.NewService(dealRepo, nil)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(svc, pool),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
