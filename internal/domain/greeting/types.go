package greeting

// Package greeting contains domain-level types for the greeting request
// lifecycle: the phases a single fetch moves through and the fixed
// display messages attached to each outcome.

// Phase enumerates the request phases. Exactly one holds at any time.
type Phase string

const (
	// PhaseIdle is the reset phase: no fetch attempted since the last
	// auth transition.
	PhaseIdle Phase = "idle"
	// PhaseLoading indicates a fetch is in flight.
	PhaseLoading Phase = "loading"
	// PhaseSuccess indicates a 200 response carrying a message.
	PhaseSuccess Phase = "success"
	// PhaseFailure indicates a non-200 response, timeout, or transport fault.
	PhaseFailure Phase = "failure"
	// PhaseRequiresAuth indicates a fetch was refused because no session
	// was active. No network call was made.
	PhaseRequiresAuth Phase = "requires_auth"
)

// Display messages for the fixed outcomes. The wire field is "mensaje";
// these are what the presentation layer shows for each classification.
const (
	// MsgRequiresAuth is shown when fetch is attempted without a session.
	MsgRequiresAuth = "sign in before requesting a greeting"
	// MsgLoading is shown while the request is in flight.
	MsgLoading = "fetching greeting..."
	// MsgDefaultSuccess substitutes for a 200 body with no message field.
	MsgDefaultSuccess = "greeting received (no message)"
	// MsgTimeout is shown when the bounded wait elapses.
	MsgTimeout = "greeting request timed out"
)

// State is the request half of the controller state.
type State struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
}

// Idle returns the reset state.
func Idle() State { return State{Phase: PhaseIdle} }

// Loading returns the in-flight state with its advisory message.
func Loading() State { return State{Phase: PhaseLoading, Message: MsgLoading} }

// Success returns the success state carrying the greeting message.
func Success(message string) State {
	return State{Phase: PhaseSuccess, Message: message}
}

// Failure returns the failure state carrying a human-readable detail.
func Failure(message string) State {
	return State{Phase: PhaseFailure, Message: message}
}

// RequiresAuth returns the refused state with its advisory message.
func RequiresAuth() State {
	return State{Phase: PhaseRequiresAuth, Message: MsgRequiresAuth}
}

// Reply is what the greeting endpoint returned on HTTP 200. HasMessage
// is false when the body had no recognizable message field, in which
// case the fixed default substitutes.
type Reply struct {
	Message    string
	HasMessage bool
}

// DisplayMessage resolves the message to show for this reply.
func (r Reply) DisplayMessage() string {
	if !r.HasMessage {
		return MsgDefaultSuccess
	}
	return r.Message
}
