package devstack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camixfedex/saludo-app/config"
	"github.com/camixfedex/saludo-app/internal/adapters/identitytoolkit"
	redisadapter "github.com/camixfedex/saludo-app/internal/adapters/redis"
)

func newTestServer(t *testing.T, cfg config.DevstackConfig) *httptest.Server {
	t.Helper()
	cfg.Sanitize()
	srv := httptest.NewServer(New(Options{Config: cfg}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_SignUp(t *testing.T) {
	srv := newTestServer(t, config.DevstackConfig{})

	resp := postJSON(t, srv.URL+"/v1/accounts:signUp?key=any", `{"returnSecureToken":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out signUpResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, strings.HasPrefix(out.LocalID, "dev-"))
	assert.NotEmpty(t, out.IDToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "3600", out.ExpiresIn)
}

func TestServer_TokenGrant(t *testing.T) {
	srv := newTestServer(t, config.DevstackConfig{})

	resp := postJSON(t, srv.URL+"/v1/accounts:signUp", `{"returnSecureToken":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signedUp signUpResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signedUp))

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {signedUp.RefreshToken},
	}
	tokenResp, err := http.PostForm(srv.URL+"/v1/token", form)
	require.NoError(t, err)
	defer tokenResp.Body.Close()

	require.Equal(t, http.StatusOK, tokenResp.StatusCode)
	var out tokenResponse
	require.NoError(t, json.NewDecoder(tokenResp.Body).Decode(&out))
	assert.Equal(t, signedUp.LocalID, out.UserID)
	assert.Equal(t, signedUp.RefreshToken, out.RefreshToken, "refresh token is stable")
	assert.NotEqual(t, signedUp.IDToken, out.IDToken, "ID token rotates")
	assert.Equal(t, out.IDToken, out.AccessToken)
}

func TestServer_TokenGrant_UnknownRefreshToken(t *testing.T) {
	srv := newTestServer(t, config.DevstackConfig{})

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {"nope"},
	}
	resp, err := http.PostForm(srv.URL+"/v1/token", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_TokenGrant_WrongGrantType(t *testing.T) {
	srv := newTestServer(t, config.DevstackConfig{})

	resp, err := http.PostForm(srv.URL+"/v1/token", url.Values{"grant_type": {"password"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Greeting(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DevstackConfig
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "default message",
			cfg:        config.DevstackConfig{Message: "hola"},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"mensaje": "hola"},
		},
		{
			name:       "custom message",
			cfg:        config.DevstackConfig{Message: "buenos dias"},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"mensaje": "buenos dias"},
		},
		{
			name:       "omitted message field",
			cfg:        config.DevstackConfig{OmitMessage: true},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{},
		},
		{
			name:       "forced failure",
			cfg:        config.DevstackConfig{FailStatus: http.StatusServiceUnavailable},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.cfg)

			resp, err := http.Get(srv.URL + "/saludo")
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != nil {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestServer_Greeting_Delay(t *testing.T) {
	srv := newTestServer(t, config.DevstackConfig{Message: "hola", Delay: 100 * time.Millisecond})

	start := time.Now()
	resp, err := http.Get(srv.URL + "/saludo")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// The real provider adapter against the devstack endpoints end to end.
func TestServer_IdentityProviderRoundTrip(t *testing.T) {
	srv := newTestServer(t, config.DevstackConfig{})

	signUpURL, tokenURL := BaseURLs(srv.URL)
	provider, err := identitytoolkit.NewProvider(context.Background(), identitytoolkit.ProviderConfig{
		APIKey:    "dev-key",
		SignUpURL: signUpURL,
		TokenURL:  tokenURL,
	})
	require.NoError(t, err)

	sess, err := provider.SignInAnonymously(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sess.UID, "dev-"))
	assert.True(t, sess.Anonymous)
	assert.NotEmpty(t, sess.RefreshToken)

	firstToken := sess.IDToken
	require.NoError(t, provider.RefreshSession(context.Background()))

	ch, release := provider.Subscribe(context.Background())
	defer release()
	refreshed := <-ch
	require.NotNil(t, refreshed)
	assert.Equal(t, sess.UID, refreshed.UID)
	assert.NotEqual(t, firstToken, refreshed.IDToken)
}

func TestMemoryAccountStore_Expiry(t *testing.T) {
	store := NewMemoryAccountStore()
	ctx := context.Background()

	acct := redisadapter.Account{
		UID:          "dev-expired",
		RefreshToken: "rt-1",
		IDToken:      "id-1",
		CreatedAt:    time.Now().Add(-2 * time.Hour),
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.Save(ctx, acct))

	_, err := store.Get(ctx, "rt-1")
	assert.Error(t, err, "expired accounts are not returned")
}
