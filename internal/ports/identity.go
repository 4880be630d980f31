package ports

// Package ports defines interfaces (hexagonal ports) for the external
// collaborators: the identity provider and the greeting endpoint.
// Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/camixfedex/saludo-app/internal/domain/auth"
)

// IdentityProvider mediates the externally-owned identity session.
//
// Subscribe is the provider's live notification stream: the channel
// delivers the current session immediately and every later change in
// order, with a nil element meaning no session. The returned release
// function must be called when the subscriber is done; the channel is
// closed on release or when ctx ends. Delivery is serialized by the
// provider; the stream never reorders.
type IdentityProvider interface {
	Subscribe(ctx context.Context) (<-chan *domainauth.Session, func())

	// SignInAnonymously creates a credential-less session. It blocks
	// until the provider resolves or fails.
	SignInAnonymously(ctx context.Context) (domainauth.Session, error)

	// SignOut disposes the active session. It blocks until the provider
	// resolves or fails.
	SignOut(ctx context.Context) error
}
