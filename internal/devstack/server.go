// Package devstack runs a local stand-in for the cloud side of the
// app: the Identity Toolkit endpoints the firebase provider talks to,
// and a /saludo greeting endpoint with configurable failure modes.
package devstack

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/camixfedex/saludo-app/config"
	redisadapter "github.com/camixfedex/saludo-app/internal/adapters/redis"
	httpx "github.com/camixfedex/saludo-app/internal/http"
)

// Options groups dependencies for the devstack Server.
type Options struct {
	Config config.DevstackConfig
	Store  AccountStore // optional; defaults to an in-memory store
	Logger *slog.Logger
}

// Server serves the fake identity backend and the greeting endpoint.
type Server struct {
	cfg    config.DevstackConfig
	store  AccountStore
	logger *slog.Logger
}

// New creates a devstack server.
func New(opts Options) *Server {
	store := opts.Store
	if store == nil {
		store = NewMemoryAccountStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: opts.Config, store: store, logger: logger}
}

// Handler returns the devstack HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/accounts:signUp", s.handleSignUp)
	mux.HandleFunc("POST /v1/token", s.handleToken)
	mux.HandleFunc("GET /saludo", s.handleGreeting)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	var handler http.Handler = mux
	handler = httpx.Logging(s.logger)(handler)
	handler = httpx.Recover(s.logger)(handler)
	return handler
}

// signUpResponse mirrors the Identity Toolkit accounts:signUp reply.
type signUpResponse struct {
	Kind         string `json:"kind"`
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// handleSignUp mints an anonymous account. The request body is the
// Identity Toolkit shape ({"returnSecureToken":true}) but its contents
// are not load-bearing here.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	acct := redisadapter.Account{
		UID:          "dev-" + uuid.NewString(),
		RefreshToken: uuid.NewString(),
		IDToken:      uuid.NewString(),
		CreatedAt:    time.Now(),
		ExpiresAt:    time.Now().Add(s.cfg.SessionDuration),
	}

	if err := s.store.Save(r.Context(), acct); err != nil {
		s.logger.ErrorContext(r.Context(), "saving account failed", "error", err)
		writeIdentityError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	s.logger.InfoContext(r.Context(), "minted anonymous account", "uid", acct.UID)
	httpx.WriteJSON(w, http.StatusOK, signUpResponse{
		Kind:         "identitytoolkit#SignupNewUserResponse",
		LocalID:      acct.UID,
		IDToken:      acct.IDToken,
		RefreshToken: acct.RefreshToken,
		ExpiresIn:    expiresInSeconds(s.cfg.SessionDuration),
	})
}

// tokenResponse mirrors the secure token service reply. AccessToken
// duplicates IDToken so standard OAuth2 clients can parse it.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

// handleToken implements the refresh_token grant against the account store.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "INVALID_REQUEST")
		return
	}
	if grant := r.PostFormValue("grant_type"); grant != "refresh_token" {
		writeIdentityError(w, http.StatusBadRequest, "INVALID_GRANT_TYPE")
		return
	}

	refreshToken := r.PostFormValue("refresh_token")
	acct, err := s.store.Get(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, redisadapter.ErrNotFound) {
			writeIdentityError(w, http.StatusBadRequest, "INVALID_REFRESH_TOKEN")
			return
		}
		s.logger.ErrorContext(r.Context(), "account lookup failed", "error", err)
		writeIdentityError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	// Rotate the ID token, keep the refresh token stable.
	acct.IDToken = uuid.NewString()
	if err := s.store.Save(r.Context(), acct); err != nil {
		s.logger.ErrorContext(r.Context(), "saving rotated account failed", "error", err)
		writeIdentityError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  acct.IDToken,
		IDToken:      acct.IDToken,
		RefreshToken: acct.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresInSeconds(s.cfg.SessionDuration),
		UserID:       acct.UID,
	})
}

// handleGreeting serves /saludo with the configured behavior: an
// optional delay, a forced failure status, or a 200 with or without
// the message field.
func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Delay > 0 {
		select {
		case <-time.After(s.cfg.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if s.cfg.FailStatus != 0 {
		httpx.WriteJSON(w, s.cfg.FailStatus, map[string]string{"error": "forced failure"})
		return
	}

	if s.cfg.OmitMessage {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"mensaje": s.cfg.Message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeIdentityError writes the Identity Toolkit error envelope.
func writeIdentityError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	payload := map[string]any{"error": map[string]any{"code": code, "message": message}}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return
	}
}

func expiresInSeconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

// BaseURLs returns the signUp and token endpoint URLs for a devstack
// reachable at addr, in the shape the firebase provider config expects.
func BaseURLs(addr string) (signUpURL, tokenURL string) {
	base := addr
	if base == "" {
		base = "http://localhost:9090"
	}
	signUpURL = fmt.Sprintf("%s/v1/accounts:signUp", base)
	tokenURL = fmt.Sprintf("%s/v1/token", base)
	return signUpURL, tokenURL
}
