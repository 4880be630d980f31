package httpx

import (
	"net/http"

	"github.com/camixfedex/saludo-app/internal/service"
)

// GreetingHandlers provides HTTP handlers for greeting-request operations.
type GreetingHandlers struct {
	Ctrl *service.Controller
}

// Fetch handles HTTP requests to trigger a greeting fetch. The outcome
// lands in the request phase of the returned state; the only HTTP-level
// error is asking without an active session.
func (h *GreetingHandlers) Fetch(w http.ResponseWriter, r *http.Request) {
	st := h.Ctrl.Fetch(r.Context())

	view := NewStateView(st)
	if view.RequiresAuth() {
		WriteJSON(w, http.StatusUnauthorized, view)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}
