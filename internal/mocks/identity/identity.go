package identity

// Package identity contains simple hand-written test doubles for the
// identity and greeting ports. These are lightweight and suitable for
// unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/camixfedex/saludo-app/internal/domain/auth"
	"github.com/camixfedex/saludo-app/internal/domain/greeting"
	"github.com/camixfedex/saludo-app/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProvider = (*FakeProvider)(nil)
	_ ports.GreetingClient   = (*FakeGreetingClient)(nil)
)

// FakeProvider simulates an identity provider with deterministic
// sessions and overridable behavior per call.
type FakeProvider struct {
	SignInFunc  func(ctx context.Context) (domainauth.Session, error)
	SignOutFunc func(ctx context.Context) error

	// DefaultSession is returned by SignInAnonymously when SignInFunc is unset.
	DefaultSession domainauth.Session

	mu            sync.Mutex
	sessions      chan *domainauth.Session
	signInCalls   int
	signOutCalls  int
	subscribeOnce sync.Once
}

// NewFakeProvider creates a FakeProvider with a sensible default session.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		DefaultSession: domainauth.Session{UID: "fake-user-1", Anonymous: true},
	}
}

// Subscribe returns the notification channel; use Notify to push
// session changes into it.
func (f *FakeProvider) Subscribe(_ context.Context) (<-chan *domainauth.Session, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureChannel()
	return f.sessions, func() {}
}

// Notify pushes a session-change notification to the subscriber.
func (f *FakeProvider) Notify(sess *domainauth.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureChannel()
	f.sessions <- sess
}

func (f *FakeProvider) ensureChannel() {
	f.subscribeOnce.Do(func() {
		f.sessions = make(chan *domainauth.Session, 16)
	})
}

// SignInAnonymously returns DefaultSession unless SignInFunc overrides it.
func (f *FakeProvider) SignInAnonymously(ctx context.Context) (domainauth.Session, error) {
	f.mu.Lock()
	f.signInCalls++
	f.mu.Unlock()

	if f.SignInFunc != nil {
		return f.SignInFunc(ctx)
	}
	return f.DefaultSession, nil
}

// SignOut succeeds unless SignOutFunc overrides it.
func (f *FakeProvider) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()

	if f.SignOutFunc != nil {
		return f.SignOutFunc(ctx)
	}
	return nil
}

// SignInCalls reports how many times SignInAnonymously was invoked.
func (f *FakeProvider) SignInCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls
}

// SignOutCalls reports how many times SignOut was invoked.
func (f *FakeProvider) SignOutCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signOutCalls
}

// FakeGreetingClient simulates the greeting endpoint client.
type FakeGreetingClient struct {
	FetchFunc func(ctx context.Context) (greeting.Reply, error)

	// Reply is returned by Fetch when FetchFunc is unset.
	Reply greeting.Reply

	mu    sync.Mutex
	calls int
}

// Fetch returns Reply unless FetchFunc overrides it.
func (f *FakeGreetingClient) Fetch(ctx context.Context) (greeting.Reply, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.FetchFunc != nil {
		return f.FetchFunc(ctx)
	}
	return f.Reply, nil
}

// FetchCalls reports how many times Fetch was invoked.
func (f *FakeGreetingClient) FetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
