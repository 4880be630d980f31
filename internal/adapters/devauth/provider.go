package devauth

// Package devauth provides a simple, config-driven IdentityProvider for
// local development and tests. Sessions are created in-process with no
// network round-trip.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/camixfedex/saludo-app/internal/adapters/identity"
	domainauth "github.com/camixfedex/saludo-app/internal/domain/auth"
	apperrors "github.com/camixfedex/saludo-app/internal/errors"
)

// Config controls the dev identity provider behavior.
type Config struct {
	UID             string        // fixed UID; random per sign-in when empty
	SessionDuration time.Duration // default 1h when zero

	// Failure injection for exercising the error paths.
	FailSignIn  bool
	FailSignOut bool
}

// Provider implements ports.IdentityProvider in-process. Sign-in is
// instantaneous and sign-out is local credential disposal; every change
// is broadcast to subscribers through the hub.
type Provider struct {
	cfg Config
	hub *identity.Hub

	mu sync.Mutex // serializes sign-in/sign-out decisions
}

// NewProvider constructs a dev identity provider from Config.
func NewProvider(cfg Config) *Provider {
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = time.Hour
	}
	return &Provider{
		cfg: cfg,
		hub: identity.NewHub(),
	}
}

// Subscribe registers a session-change listener; see identity.Hub for
// the delivery contract.
func (p *Provider) Subscribe(ctx context.Context) (<-chan *domainauth.Session, func()) {
	return p.hub.Subscribe(ctx)
}

// SignInAnonymously creates a credential-less session. When a session
// is already active it is returned as-is, matching provider semantics.
func (p *Provider) SignInAnonymously(_ context.Context) (domainauth.Session, error) {
	if p.cfg.FailSignIn {
		return domainauth.Session{}, apperrors.AuthFailure("devauth: sign-in disabled by config", nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cur := p.hub.Current(); cur != nil {
		return *cur, nil
	}

	uid := p.cfg.UID
	if uid == "" {
		uid = uuid.NewString()
	}
	sess := domainauth.Session{
		UID:       uid,
		Anonymous: true,
		ExpiresAt: time.Now().Add(p.cfg.SessionDuration),
	}
	p.hub.Set(&sess)

	return sess, nil
}

// SignOut disposes the active session. Signing out with no session is a no-op.
func (p *Provider) SignOut(_ context.Context) error {
	if p.cfg.FailSignOut {
		return apperrors.SignOutFailure("devauth: sign-out disabled by config", nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hub.Current() == nil {
		return nil
	}
	p.hub.Set(nil)

	return nil
}
