package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/coachgrid/internal/config"
	"github.com/JonMunkholm/coachgrid/internal/core"
	_ "github.com/JonMunkholm/coachgrid/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/coachgrid/internal/logging"
	"github.com/JonMunkholm/coachgrid/internal/web"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFiles(".env")
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"max_sessions", cfg.Grid.MaxSessions,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	pool, err := core.OpenPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := core.NewService(pool, core.Options{
		DefaultPageSize: cfg.Grid.DefaultPageSize,
		MaxPageSize:     cfg.Grid.MaxPageSize,
		Locale:          cfg.Grid.LocaleTag(),
		SessionTTL:      cfg.Grid.SessionTTL,
		MaxSessions:     cfg.Grid.MaxSessions,
		MaxLoads:        cfg.Grid.MaxConcurrentLoads,
		LoadWait:        cfg.Grid.LoadWaitTime,
	})
	if err := service.EnsureSchema(ctx); err != nil {
		return err
	}

	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
	)

	server := web.NewServer(service, cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return service.RunSessionSweeper(gctx, cfg.Grid.SweepInterval)
	})
	g.Go(func() error {
		return server.RunLimiterCleanup(gctx, cfg.Grid.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
