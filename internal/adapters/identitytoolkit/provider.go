package identitytoolkit

// Package identitytoolkit implements the IdentityProvider port against
// an Identity Toolkit style REST API: anonymous sign-up with an API
// key, token refresh through the secure-token endpoint, and optional
// ID-token verification against the issuer's discovery document.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/camixfedex/saludo-app/internal/adapters/identity"
	domainauth "github.com/camixfedex/saludo-app/internal/domain/auth"
	apperrors "github.com/camixfedex/saludo-app/internal/errors"
)

const (
	defaultSignUpURL = "https://identitytoolkit.googleapis.com/v1/accounts:signUp"
	defaultTokenURL  = "https://securetoken.googleapis.com/v1/token"
)

// ProviderConfig holds configuration for the identity toolkit provider.
type ProviderConfig struct {
	APIKey    string
	SignUpURL string // default: Google Identity Toolkit sign-up endpoint
	TokenURL  string // default: Google secure-token endpoint

	// VerifyIDToken enables OIDC verification of issued ID tokens.
	// Requires Issuer and ProjectID (the expected audience).
	VerifyIDToken bool
	Issuer        string
	ProjectID     string

	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Provider implements ports.IdentityProvider over the REST API.
type Provider struct {
	apiKey     string
	signUpURL  string
	oauthCfg   *oauth2.Config
	httpClient *http.Client
	verifier   *gooidc.IDTokenVerifier
	hub        *identity.Hub

	mu sync.Mutex // serializes sign-in/sign-out/refresh decisions
}

// NewProvider creates a new identity toolkit provider. When ID-token
// verification is enabled this performs one discovery fetch against the
// issuer.
func NewProvider(ctx context.Context, config ProviderConfig) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	signUpURL := strings.TrimSpace(config.SignUpURL)
	if signUpURL == "" {
		signUpURL = defaultSignUpURL
	}
	tokenURL := strings.TrimSpace(config.TokenURL)
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	p := &Provider{
		apiKey:     config.APIKey,
		signUpURL:  signUpURL,
		httpClient: httpClient,
		hub:        identity.NewHub(),
	}

	// The secure-token endpoint speaks the standard refresh_token grant;
	// the API key travels as a query parameter.
	p.oauthCfg = &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL + "?key=" + config.APIKey,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	if config.VerifyIDToken {
		if config.Issuer == "" || config.ProjectID == "" {
			return nil, errors.New("issuer and project ID are required to verify ID tokens")
		}
		oidcCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		op, err := gooidc.NewProvider(oidcCtx, strings.TrimSuffix(config.Issuer, "/"))
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ProjectID})
	}

	return p, nil
}

// Subscribe registers a session-change listener; see identity.Hub for
// the delivery contract.
func (p *Provider) Subscribe(ctx context.Context) (<-chan *domainauth.Session, func()) {
	return p.hub.Subscribe(ctx)
}

// signUpResponse is the wire shape of an anonymous sign-up result.
type signUpResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
}

// apiError is the wire shape of an Identity Toolkit failure.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInAnonymously creates a credential-less account. When a session
// is already active it is returned as-is rather than minting a second
// anonymous account.
func (p *Provider) SignInAnonymously(ctx context.Context) (domainauth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur := p.hub.Current(); cur != nil {
		return *cur, nil
	}

	body := bytes.NewReader([]byte(`{"returnSecureToken":true}`))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.signUpURL+"?key="+p.apiKey, body)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("build sign-up request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Session{}, apperrors.Transport("anonymous sign-up", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on a read-only body

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("read sign-up response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return domainauth.Session{}, apperrors.AuthFailure(
				fmt.Sprintf("anonymous sign-up rejected: %s", apiErr.Error.Message), nil)
		}
		return domainauth.Session{}, apperrors.AuthFailure(
			fmt.Sprintf("anonymous sign-up rejected: status %d", resp.StatusCode), nil)
	}

	var signUp signUpResponse
	if err := json.Unmarshal(raw, &signUp); err != nil {
		return domainauth.Session{}, fmt.Errorf("decode sign-up response: %w", err)
	}
	if signUp.LocalID == "" {
		return domainauth.Session{}, errors.New("sign-up response missing localId")
	}

	sess := domainauth.Session{
		UID:          signUp.LocalID,
		Anonymous:    true,
		IDToken:      signUp.IDToken,
		RefreshToken: signUp.RefreshToken,
		ExpiresAt:    time.Now().Add(parseExpiresIn(signUp.ExpiresIn)),
	}

	if err := p.verify(ctx, sess.IDToken, sess.UID); err != nil {
		return domainauth.Session{}, err
	}

	p.hub.Set(&sess)
	return sess, nil
}

// SignOut disposes the local credentials. Anonymous accounts have no
// server-side sign-out; the provider simply forgets the session and
// notifies subscribers.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hub.Current() == nil {
		return nil
	}
	p.hub.Set(nil)
	return nil
}

// RefreshSession exchanges the refresh token for fresh credentials and
// notifies subscribers of the updated session. The UID never changes
// across a refresh.
func (p *Provider) RefreshSession(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.hub.Current()
	if cur == nil {
		return errors.New("no active session to refresh")
	}
	if cur.RefreshToken == "" {
		return errors.New("active session has no refresh token")
	}

	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	src := p.oauthCfg.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: cur.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}

	if err := p.verify(ctx, tok.AccessToken, cur.UID); err != nil {
		return err
	}

	next := *cur
	next.IDToken = tok.AccessToken
	if tok.RefreshToken != "" {
		next.RefreshToken = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		next.ExpiresAt = tok.Expiry
	}
	p.hub.Set(&next)
	return nil
}

// verify checks the ID token signature and subject when verification is
// configured; otherwise it is a no-op.
func (p *Provider) verify(ctx context.Context, idToken, uid string) error {
	if p.verifier == nil {
		return nil
	}
	verified, err := p.verifier.Verify(ctx, idToken)
	if err != nil {
		return fmt.Errorf("verify ID token: %w", err)
	}
	if verified.Subject != uid {
		return fmt.Errorf("ID token subject %q does not match account %q", verified.Subject, uid)
	}
	return nil
}

func parseExpiresIn(s string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || secs <= 0 {
		return time.Hour
	}
	return time.Duration(secs) * time.Second
}
