// Package httpx provides HTTP handlers and utilities for the saludo state API.
package httpx

import (
	"net/http"

	"github.com/camixfedex/saludo-app/internal/service"
)

// AuthHandlers provides HTTP handlers for sign-in state operations.
type AuthHandlers struct {
	Ctrl *service.Controller
}

// SignIn handles HTTP requests to sign in anonymously. The response body
// is always the resulting screen state; a rejected sign-in surfaces in
// the auth phase and message, not in the HTTP status.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	st := h.Ctrl.RequestSignIn(r.Context())
	WriteJSON(w, http.StatusOK, NewStateView(st))
}

// SignOut handles HTTP requests to sign the session out.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	st := h.Ctrl.RequestSignOut(r.Context())
	WriteJSON(w, http.StatusOK, NewStateView(st))
}
