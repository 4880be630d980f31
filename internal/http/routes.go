package httpx

import (
	"log/slog"
	"net/http"

	"github.com/camixfedex/saludo-app/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Controller *service.Controller
	Logger     *slog.Logger // Logger for request logging and panic recovery (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Ctrl: services.Controller}
	greetingHandlers := &GreetingHandlers{Ctrl: services.Controller}
	stateHandlers := &StateHandlers{Ctrl: services.Controller, Logger: logger}

	mux.Handle("POST /api/auth/signin", http.HandlerFunc(authHandlers.SignIn))
	mux.Handle("POST /api/auth/signout", http.HandlerFunc(authHandlers.SignOut))
	mux.Handle("POST /api/greeting/fetch", http.HandlerFunc(greetingHandlers.Fetch))
	mux.Handle("GET /api/state", http.HandlerFunc(stateHandlers.State))
	mux.Handle("GET /api/state/stream", http.HandlerFunc(stateHandlers.Stream))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
