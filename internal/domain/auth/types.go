package auth

// Package auth contains domain-level types for the identity session.
// It is pure and free of provider/adapter concerns.

import "time"

// Session is the identity handle issued by the identity provider.
// UID is the only field the controller core relies on; the token fields
// are carried for provider adapters that refresh or verify credentials.
type Session struct {
	UID          string    `json:"uid"`
	Anonymous    bool      `json:"anonymous"`
	IDToken      string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
}

// Phase enumerates the sign-in phases. Exactly one holds at any time.
type Phase string

const (
	// PhaseInitial is the construction-time phase, superseded by the
	// first notification from the provider stream and never re-entered.
	PhaseInitial Phase = "initial"
	// PhaseSignedIn indicates an active session.
	PhaseSignedIn Phase = "signed_in"
	// PhaseNotSignedIn indicates no session.
	PhaseNotSignedIn Phase = "not_signed_in"
	// PhaseError indicates a failed sign-in attempt. Not terminal: any
	// later stream notification or successful sign-in moves out of it.
	PhaseError Phase = "error"
)

// State is the auth half of the controller state. Session is non-nil
// iff Phase is PhaseSignedIn; it is owned here exclusively.
type State struct {
	Phase   Phase    `json:"phase"`
	Session *Session `json:"session,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Initial returns the construction-time state.
func Initial() State {
	return State{Phase: PhaseInitial}
}

// SignedIn returns a signed-in state holding the given session.
func SignedIn(sess Session, message string) State {
	return State{Phase: PhaseSignedIn, Session: &sess, Message: message}
}

// NotSignedIn returns a signed-out state.
func NotSignedIn(message string) State {
	return State{Phase: PhaseNotSignedIn, Message: message}
}

// Errored returns the failed sign-in state. The session stays absent.
func Errored(message string) State {
	return State{Phase: PhaseError, Message: message}
}

// IsSignedIn reports whether an active session is held.
func (s State) IsSignedIn() bool { return s.Phase == PhaseSignedIn && s.Session != nil }

// UID returns the session UID, or empty when not signed in.
func (s State) UID() string {
	if !s.IsSignedIn() {
		return ""
	}
	return s.Session.UID
}
