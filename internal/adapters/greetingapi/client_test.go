package greetingapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camixfedex/saludo-app/internal/domain/greeting"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://localhost:3000", MessageExpr: "]["})
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:3000"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/saludo", client.Endpoint())
	assert.Equal(t, 7*time.Second, client.timeout)
	assert.Equal(t, "mensaje", client.messageExpr)
}

func TestFetch_Success(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mensaje": "hola"}`))
	}, Config{})

	reply, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/saludo", gotPath)
	assert.True(t, reply.HasMessage)
	assert.Equal(t, "hola", reply.Message)
	assert.Equal(t, "hola", reply.DisplayMessage())
}

func TestFetch_EmptyBodyObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, Config{})

	reply, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.False(t, reply.HasMessage)
	assert.Equal(t, greeting.MsgDefaultSuccess, reply.DisplayMessage())
}

func TestFetch_NonStringMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"mensaje": 42}`))
	}, Config{})

	reply, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.False(t, reply.HasMessage)
}

func TestFetch_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Config{})

	_, err := client.Fetch(context.Background())

	var statusErr *greeting.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestFetch_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Hold the response past the client's bound.
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}, Config{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := client.Fetch(context.Background())

	require.ErrorIs(t, err, greeting.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	client, err := NewClient(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, greeting.ErrTimeout)
}

func TestFetch_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, Config{})

	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetch_CustomExpr(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"greeting": "buenos dias"}}`))
	}, Config{MessageExpr: "data.greeting"})

	reply, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "buenos dias", reply.Message)
}

type failingEvaluator struct{}

func (failingEvaluator) Validate(string) error          { return nil }
func (failingEvaluator) Evaluate(string, any) (any, error) { return nil, errors.New("eval boom") }

func TestFetch_EvaluatorFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"mensaje": "hola"}`))
	}, Config{Evaluator: failingEvaluator{}})

	_, err := client.Fetch(context.Background())
	assert.ErrorContains(t, err, "eval boom")
}
