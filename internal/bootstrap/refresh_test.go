package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/camixfedex/saludo-app/internal/domain/auth"
	mocksidentity "github.com/camixfedex/saludo-app/internal/mocks/identity"
)

// refreshableProvider adds the credential-renewal surface to the fake
// identity provider.
type refreshableProvider struct {
	*mocksidentity.FakeProvider

	mu         sync.Mutex
	refreshErr error
	calls      int
}

func (p *refreshableProvider) RefreshSession(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.refreshErr
}

func (p *refreshableProvider) refreshCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func fastRefreshTiming() refreshTiming {
	return refreshTiming{
		Leeway: 0,
		Floor:  5 * time.Millisecond,
		Retry:  5 * time.Millisecond,
	}
}

func TestRunSessionRefresh_NoopWithoutRefreshSupport(t *testing.T) {
	// The fake provider cannot renew credentials; the loop must return
	// immediately instead of blocking.
	err := RunSessionRefresh(context.Background(), mocksidentity.NewFakeProvider(), testLogger())
	assert.NoError(t, err)
}

func TestRunSessionRefresh_RenewsAheadOfExpiry(t *testing.T) {
	provider := &refreshableProvider{FakeProvider: mocksidentity.NewFakeProvider()}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- runSessionRefresh(ctx, provider, provider, testLogger(), fastRefreshTiming())
	}()

	provider.Notify(&domainauth.Session{
		UID:          "fake-user-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(10 * time.Millisecond),
	})

	require.Eventually(t, func() bool {
		return provider.refreshCalls() >= 1
	}, time.Second, 5*time.Millisecond, "expected a renewal ahead of session expiry")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunSessionRefresh_RetriesAfterFailure(t *testing.T) {
	provider := &refreshableProvider{FakeProvider: mocksidentity.NewFakeProvider()}
	provider.refreshErr = errors.New("token endpoint unavailable")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runSessionRefresh(ctx, provider, provider, testLogger(), fastRefreshTiming()) }()

	provider.Notify(&domainauth.Session{
		UID:          "fake-user-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(10 * time.Millisecond),
	})

	require.Eventually(t, func() bool {
		return provider.refreshCalls() >= 2
	}, time.Second, 5*time.Millisecond, "a failed renewal must be retried")
}

func TestRunSessionRefresh_SignOutCancelsPendingRenewal(t *testing.T) {
	provider := &refreshableProvider{FakeProvider: mocksidentity.NewFakeProvider()}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runSessionRefresh(ctx, provider, provider, testLogger(), fastRefreshTiming()) }()

	provider.Notify(&domainauth.Session{
		UID:          "fake-user-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(20 * time.Millisecond),
	})
	provider.Notify(nil)

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, provider.refreshCalls(), "no renewal after the session ended")
}
