package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/camixfedex/saludo-app/internal/ports"
)

// sessionRefresher is the optional credential-renewal surface of an
// identity provider.
type sessionRefresher interface {
	RefreshSession(ctx context.Context) error
}

const (
	// refreshLeeway is how far ahead of expiry credentials are renewed.
	refreshLeeway = 5 * time.Minute
	// refreshFloor bounds how soon after a session change a renewal may fire.
	refreshFloor = 10 * time.Second
	// refreshRetry spaces renewal attempts after a failure.
	refreshRetry = 30 * time.Second
)

type refreshTiming struct {
	Leeway time.Duration
	Floor  time.Duration
	Retry  time.Duration
}

// RunSessionRefresh keeps provider credentials fresh: it watches the
// session stream and renews each session ahead of its expiry. Providers
// without refresh support make this a no-op. Blocks until ctx ends.
func RunSessionRefresh(ctx context.Context, provider ports.IdentityProvider, logger *slog.Logger) error {
	refresher, ok := provider.(sessionRefresher)
	if !ok {
		return nil
	}
	return runSessionRefresh(ctx, provider, refresher, logger, refreshTiming{
		Leeway: refreshLeeway,
		Floor:  refreshFloor,
		Retry:  refreshRetry,
	})
}

func runSessionRefresh(
	ctx context.Context,
	provider ports.IdentityProvider,
	refresher sessionRefresher,
	logger *slog.Logger,
	timing refreshTiming,
) error {
	ch, release := provider.Subscribe(ctx)
	defer release()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sess, ok := <-ch:
			if !ok {
				return nil
			}
			timer.Stop()
			if sess == nil || sess.RefreshToken == "" || sess.ExpiresAt.IsZero() {
				continue
			}
			wait := time.Until(sess.ExpiresAt) - timing.Leeway
			if wait < timing.Floor {
				wait = timing.Floor
			}
			timer.Reset(wait)
		case <-timer.C:
			if err := refresher.RefreshSession(ctx); err != nil {
				logger.WarnContext(ctx, "session refresh failed", "error", err)
				timer.Reset(timing.Retry)
			}
			// On success the provider broadcasts the renewed session,
			// which reschedules through the subscription.
		}
	}
}
