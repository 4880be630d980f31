package model

import (
	"fmt"

	"github.com/camixfedex/saludo-app/internal/domain/auth"
	"github.com/camixfedex/saludo-app/internal/domain/greeting"
)

// Messages attached to auth transitions.
const (
	// MsgSignedIn confirms a completed anonymous sign-in.
	MsgSignedIn = "signed in anonymously"
)

// Reduce applies an event to a state and returns the next state. It is
// pure: no I/O, no clock, no mutation of the input.
//
// Every auth transition (in either direction, including a re-affirmed
// sign-in) resets the request half back to idle and clears the
// displayed message. A failed sign-out is the one exception: the source
// of truth did not transition there, so neither does this.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case SessionChanged:
		// A notification that re-affirms what is already held is not a
		// transition; dropping it keeps the reset rule from erasing
		// messages on provider echo.
		if ev.Session == nil && s.Auth.Phase == auth.PhaseNotSignedIn {
			return s
		}
		if ev.Session != nil && s.Auth.IsSignedIn() && s.Auth.Session.UID == ev.Session.UID {
			return s
		}
		if ev.Session != nil {
			s.Auth = auth.SignedIn(*ev.Session, "")
		} else {
			s.Auth = auth.NotSignedIn("")
		}
		s.Request = greeting.Idle()

	case SignInSucceeded:
		s.Auth = auth.SignedIn(ev.Session, MsgSignedIn)
		s.Request = greeting.Idle()

	case SignInFailed:
		s.Auth = auth.Errored(fmt.Sprintf("sign-in failed: %s", ev.Detail))
		s.Request = greeting.Idle()

	case SignOutSucceeded:
		s.Auth = auth.NotSignedIn("")
		s.Request = greeting.Idle()

	case SignOutFailed:
		// Message only; phase and session stay as they were.
		s.Auth.Message = fmt.Sprintf("sign-out failed: %s", ev.Detail)

	case FetchBlocked:
		s.Request = greeting.RequiresAuth()

	case FetchStarted:
		s.Request = greeting.Loading()

	case FetchSucceeded:
		s.Request = greeting.Success(ev.Message)

	case FetchFailed:
		s.Request = greeting.Failure(ev.Message)
	}

	return s
}
