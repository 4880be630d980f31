package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/camixfedex/saludo-app/config"
	"github.com/camixfedex/saludo-app/internal/adapters/devauth"
	"github.com/camixfedex/saludo-app/internal/adapters/greetingapi"
	"github.com/camixfedex/saludo-app/internal/adapters/identitytoolkit"
	"github.com/camixfedex/saludo-app/internal/observability/statsd"
	"github.com/camixfedex/saludo-app/internal/ports"
	"github.com/camixfedex/saludo-app/internal/service"
)

// BuildIdentityProvider constructs the identity provider for the
// configured auth mode.
//
//nolint:ireturn // callers program against the port.
func BuildIdentityProvider(
	ctx context.Context,
	cfg config.AuthConfig,
	logger *slog.Logger,
) (ports.IdentityProvider, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		logger.Warn("using mock identity provider; do not use in production")
		return devauth.NewProvider(devauth.Config{
			UID:             cfg.DevAuth.UID,
			SessionDuration: cfg.DevAuth.SessionDuration,
			FailSignIn:      cfg.DevAuth.FailSignIn,
			FailSignOut:     cfg.DevAuth.FailSignOut,
		}), nil
	case config.AuthModeFirebase:
		provider, err := identitytoolkit.NewProvider(ctx, identitytoolkit.ProviderConfig{
			APIKey:        cfg.Firebase.APIKey,
			SignUpURL:     cfg.Firebase.SignUpURL,
			TokenURL:      cfg.Firebase.TokenURL,
			VerifyIDToken: cfg.Firebase.VerifyIDToken,
			Issuer:        cfg.Firebase.Issuer,
			ProjectID:     cfg.Firebase.ProjectID,
		})
		if err != nil {
			return nil, fmt.Errorf("build firebase provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Mode)
	}
}

// BuildGreetingClient constructs the greeting endpoint client.
func BuildGreetingClient(cfg config.GreetingConfig) (*greetingapi.Client, error) {
	client, err := greetingapi.NewClient(greetingapi.Config{
		BaseURL:     cfg.BaseURL,
		Path:        cfg.Path,
		Timeout:     cfg.Timeout,
		MessageExpr: cfg.MessageExpr,
	})
	if err != nil {
		return nil, fmt.Errorf("build greeting client: %w", err)
	}
	return client, nil
}

// BuildMetrics wires controller metrics, attaching a StatsD sink when
// metrics emission is enabled. The returned closer releases the sink
// connection; it is a no-op when metrics are disabled.
func BuildMetrics(
	cfg config.ObservabilityMetricsConfig,
	logger *slog.Logger,
) (*service.ControllerMetrics, func() error, error) {
	metrics := service.NewControllerMetrics()
	noop := func() error { return nil }

	if !cfg.IsEnabled() {
		return metrics, noop, nil
	}

	sink, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build statsd client: %w", err)
	}

	metrics.SetSink(sink)
	logger.Info("metrics emission enabled", "statsd_address", cfg.StatsdAddress)
	return metrics, sink.Close, nil
}
