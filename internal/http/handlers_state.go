package httpx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/camixfedex/saludo-app/internal/service"
)

// StateHandlers provides HTTP handlers for observing the screen state.
type StateHandlers struct {
	Ctrl   *service.Controller
	Logger *slog.Logger
}

// State handles HTTP requests for the current screen state.
func (h *StateHandlers) State(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, NewStateView(h.Ctrl.Snapshot()))
}

// Stream handles HTTP requests for a live state feed as server-sent
// events. The current state is sent immediately, then every change
// until the client disconnects.
func (h *StateHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "streaming_unsupported",
			Err:     fmt.Errorf("response writer does not support flushing"),
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	states, release := h.Ctrl.Subscribe(r.Context())
	defer release()

	for st := range states {
		payload, err := json.Marshal(NewStateView(st))
		if err != nil {
			h.logger().ErrorContext(r.Context(), "encoding state event failed", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", payload); err != nil {
			// Client went away.
			return
		}
		flusher.Flush()
	}
}

func (h *StateHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
