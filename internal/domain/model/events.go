package model

import "github.com/camixfedex/saludo-app/internal/domain/auth"

// Event is a controller state transition trigger. Events are plain
// values; all interpretation happens in Reduce.
type Event interface {
	isEvent()
}

// SessionChanged is delivered by the identity provider's notification
// stream. Session is nil when no session is active.
type SessionChanged struct {
	Session *auth.Session
}

// SignInSucceeded records a completed anonymous sign-in, including the
// idempotent re-affirmation of an already-active session.
type SignInSucceeded struct {
	Session auth.Session
}

// SignInFailed records a sign-in rejected by the provider.
type SignInFailed struct {
	Detail string
}

// SignOutSucceeded records a completed sign-out.
type SignOutSucceeded struct{}

// SignOutFailed records a sign-out rejected by the provider. The auth
// phase is left untouched; only the message surfaces.
type SignOutFailed struct {
	Detail string
}

// FetchBlocked records a fetch refused because no session was active.
type FetchBlocked struct{}

// FetchStarted records a fetch leaving for the greeting endpoint.
type FetchStarted struct{}

// FetchSucceeded records a 200 response with its resolved message.
type FetchSucceeded struct {
	Message string
}

// FetchFailed records a failed fetch with its classified message.
type FetchFailed struct {
	Message string
}

func (SessionChanged) isEvent()   {}
func (SignInSucceeded) isEvent()  {}
func (SignInFailed) isEvent()     {}
func (SignOutSucceeded) isEvent() {}
func (SignOutFailed) isEvent()    {}
func (FetchBlocked) isEvent()     {}
func (FetchStarted) isEvent()     {}
func (FetchSucceeded) isEvent()   {}
func (FetchFailed) isEvent()      {}
