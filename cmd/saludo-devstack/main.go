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

	"github.com/redis/go-redis/v9"

	"github.com/camixfedex/saludo-app/config"
	redisadapter "github.com/camixfedex/saludo-app/internal/adapters/redis"
	"github.com/camixfedex/saludo-app/internal/bootstrap"
	"github.com/camixfedex/saludo-app/internal/devstack"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadDevstackConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.ErrorContext(ctx, "closing account store failed", "error", cerr)
		}
	}()

	srv := devstack.New(devstack.Options{
		Config: cfg,
		Store:  store,
		Logger: logger,
	})

	server := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Handler(),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "starting devstack server",
			"addr", cfg.Addr,
			"message", cfg.Message,
			"fail_status", cfg.FailStatus,
			"delay", cfg.Delay)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "devstack server failed", "error", serveErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildStore selects the account store backend: Redis when configured,
// in-memory otherwise.
//
//nolint:ireturn // callers program against the store interface.
func buildStore(
	ctx context.Context,
	cfg config.DevstackRedisConfig,
	logger *slog.Logger,
) (devstack.AccountStore, func() error, error) {
	if cfg.Addr == "" {
		logger.InfoContext(ctx, "using in-memory account store")
		return devstack.NewMemoryAccountStore(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		closeErr := client.Close()
		return nil, nil, errors.Join(fmt.Errorf("ping redis %s: %w", cfg.Addr, err), closeErr)
	}

	logger.InfoContext(ctx, "using redis account store", "addr", cfg.Addr, "db", cfg.DB)
	return redisadapter.NewAccountStore(client), client.Close, nil
}
