package identitytoolkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/camixfedex/saludo-app/internal/errors"
)

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(context.Background(), ProviderConfig{})
	assert.Error(t, err)
}

func TestNewProvider_VerifyRequiresIssuerAndProject(t *testing.T) {
	_, err := NewProvider(context.Background(), ProviderConfig{APIKey: "key", VerifyIDToken: true})
	assert.Error(t, err)
}

func newFakeProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewProvider(context.Background(), ProviderConfig{
		APIKey:    "test-key",
		SignUpURL: srv.URL + "/v1/accounts:signUp",
		TokenURL:  srv.URL + "/v1/token",
	})
	require.NoError(t, err)
	return p
}

func TestSignInAnonymously(t *testing.T) {
	var gotKey, gotBody string
	p := newFakeProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:signUp", r.URL.Path)
		gotKey = r.URL.Query().Get("key")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotBody = ""
		if v, ok := body["returnSecureToken"].(bool); ok && v {
			gotBody = "returnSecureToken"
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"localId":      "anon-uid-1",
			"idToken":      "id-token-1",
			"refreshToken": "refresh-1",
			"expiresIn":    "3600",
		})
	}))

	sess, err := p.SignInAnonymously(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "returnSecureToken", gotBody)
	assert.Equal(t, "anon-uid-1", sess.UID)
	assert.True(t, sess.Anonymous)
	assert.Equal(t, "id-token-1", sess.IDToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
}

func TestSignInAnonymously_ReusesActiveSession(t *testing.T) {
	calls := 0
	p := newFakeProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]string{"localId": "anon-uid-1", "expiresIn": "3600"})
	}))

	first, err := p.SignInAnonymously(context.Background())
	require.NoError(t, err)
	second, err := p.SignInAnonymously(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.UID, second.UID)
	assert.Equal(t, 1, calls, "an active session must not mint a second account")
}

func TestSignInAnonymously_APIError(t *testing.T) {
	p := newFakeProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API_KEY_INVALID"}}`))
	}))

	_, err := p.SignInAnonymously(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY_INVALID")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAuthFailure))
}

func TestSignInAnonymously_MissingLocalID(t *testing.T) {
	p := newFakeProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := p.SignInAnonymously(context.Background())
	assert.Error(t, err)
}

func TestSignOut_NotifiesSubscribers(t *testing.T) {
	p := newFakeProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"localId": "anon-uid-1", "expiresIn": "3600"})
	}))

	_, err := p.SignInAnonymously(context.Background())
	require.NoError(t, err)

	ch, release := p.Subscribe(context.Background())
	defer release()
	first := <-ch
	require.NotNil(t, first)

	require.NoError(t, p.SignOut(context.Background()))

	select {
	case sess := <-ch:
		assert.Nil(t, sess)
	case <-time.After(time.Second):
		t.Fatal("no sign-out notification")
	}
}

func TestSignOut_NoSessionIsNoop(t *testing.T) {
	p := newFakeProvider(t, http.NotFoundHandler())
	assert.NoError(t, p.SignOut(context.Background()))
}

func TestRefreshSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/accounts:signUp", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"localId":      "anon-uid-1",
			"idToken":      "id-token-1",
			"refreshToken": "refresh-1",
			"expiresIn":    "3600",
		})
	})
	var gotGrant, gotRefresh string
	mux.HandleFunc("/v1/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrant = r.PostForm.Get("grant_type")
		gotRefresh = r.PostForm.Get("refresh_token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "id-token-2",
			"refresh_token": "refresh-2",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})
	p := newFakeProvider(t, mux)

	_, err := p.SignInAnonymously(context.Background())
	require.NoError(t, err)

	ch, release := p.Subscribe(context.Background())
	defer release()
	<-ch

	require.NoError(t, p.RefreshSession(context.Background()))

	assert.Equal(t, "refresh_token", gotGrant)
	assert.Equal(t, "refresh-1", gotRefresh)

	select {
	case sess := <-ch:
		require.NotNil(t, sess)
		assert.Equal(t, "anon-uid-1", sess.UID, "UID must survive a refresh")
		assert.Equal(t, "id-token-2", sess.IDToken)
		assert.Equal(t, "refresh-2", sess.RefreshToken)
	case <-time.After(time.Second):
		t.Fatal("no refresh notification")
	}
}

func TestRefreshSession_NoSession(t *testing.T) {
	p := newFakeProvider(t, http.NotFoundHandler())
	assert.Error(t, p.RefreshSession(context.Background()))
}
