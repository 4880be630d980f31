// Package model defines the combined controller state and the pure
// transition function that advances it. The presentation layer observes
// snapshots of State; it never mutates them.
package model

import (
	"github.com/camixfedex/saludo-app/internal/domain/auth"
	"github.com/camixfedex/saludo-app/internal/domain/greeting"
)

// State is the full controller state: the auth half and the request
// half. Values are snapshots; Reduce produces a new State for every
// event and never mutates its input.
type State struct {
	Auth    auth.State     `json:"auth"`
	Request greeting.State `json:"request"`
}

// NewState returns the construction-time state: auth Initial, request
// Idle. Initial is superseded by the first provider notification and
// never re-entered.
func NewState() State {
	return State{
		Auth:    auth.Initial(),
		Request: greeting.Idle(),
	}
}

// DisplayMessage is the single message line the presentation layer
// shows. A request outcome takes precedence over the auth message once
// a fetch has left idle.
func (s State) DisplayMessage() string {
	if s.Request.Phase != greeting.PhaseIdle {
		return s.Request.Message
	}
	return s.Auth.Message
}
