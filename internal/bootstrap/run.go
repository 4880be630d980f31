package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/camixfedex/saludo-app/config"
	"github.com/camixfedex/saludo-app/internal/service"
)

// RunConfig groups everything Run needs.
type RunConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// Run wires the application together and blocks until a shutdown
// signal arrives or a component fails: it builds the adapters, starts
// the controller's provider subscription loop, and serves HTTP.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Config == nil {
		return errors.New("app config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := BuildIdentityProvider(ctx, cfg.Config.Auth, logger)
	if err != nil {
		return err
	}

	greetingClient, err := BuildGreetingClient(cfg.Config.Greeting)
	if err != nil {
		return err
	}

	metrics, closeMetrics, err := BuildMetrics(cfg.Config.Observability.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeMetrics(); cerr != nil {
			logger.Error("closing metrics sink failed", "error", cerr)
		}
	}()

	controller := service.NewController(service.ControllerOptions{
		Provider: provider,
		Greeting: greetingClient,
		Deps: service.ControllerDeps{
			Logger:  logger,
			Metrics: metrics,
		},
	})

	server := StartHTTPServer(&HTTPServerConfig{
		Addr:       cfg.Config.HTTP.Addr,
		Controller: controller,
		Logger:     logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := controller.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("controller run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := RunSessionRefresh(gctx, provider, logger); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("session refresh: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Logger:  logger,
		})
	})

	logger.InfoContext(ctx, "saludo app started",
		"addr", cfg.Config.HTTP.Addr,
		"auth_mode", string(cfg.Config.Auth.Mode),
		"greeting_endpoint", greetingClient.Endpoint())

	return g.Wait()
}
