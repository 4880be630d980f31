package httpx

import (
	"github.com/camixfedex/saludo-app/internal/domain/greeting"
	"github.com/camixfedex/saludo-app/internal/domain/model"
)

// AuthView is the wire shape of the sign-in half of the screen state.
type AuthView struct {
	Phase    string `json:"phase"`
	SignedIn bool   `json:"signed_in"`
	UID      string `json:"uid,omitempty"`
	Message  string `json:"message,omitempty"`
}

// RequestView is the wire shape of the greeting-request half.
type RequestView struct {
	Phase   string `json:"phase"`
	Message string `json:"message,omitempty"`
}

// StateView is the wire shape of the full screen state.
type StateView struct {
	Auth           AuthView    `json:"auth"`
	Request        RequestView `json:"request"`
	DisplayMessage string      `json:"display_message,omitempty"`
}

// NewStateView converts a domain state into its wire shape.
func NewStateView(st model.State) StateView {
	return StateView{
		Auth: AuthView{
			Phase:    string(st.Auth.Phase),
			SignedIn: st.Auth.IsSignedIn(),
			UID:      st.Auth.UID(),
			Message:  st.Auth.Message,
		},
		Request: RequestView{
			Phase:   string(st.Request.Phase),
			Message: st.Request.Message,
		},
		DisplayMessage: st.DisplayMessage(),
	}
}

// RequiresAuth reports whether the request half refused for lack of a session.
func (v StateView) RequiresAuth() bool {
	return v.Request.Phase == string(greeting.PhaseRequiresAuth)
}
