package greetingapi

// Package greetingapi implements the GreetingClient port over HTTP. It
// issues a single unauthenticated GET against the greeting endpoint and
// maps the outcome onto the domain's typed errors.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/camixfedex/saludo-app/internal/domain/greeting"
)

// maxBodyBytes bounds how much of a greeting body we are willing to read.
const maxBodyBytes = 1 << 20

// MessageEvaluator abstracts JMESPath operations for testability.
type MessageEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements MessageEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.New("message expression is empty")
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// Config captures the greeting endpoint contract: fixed host and path,
// a bounded wait, and the wire field holding the message.
type Config struct {
	BaseURL     string
	Path        string        // default "/saludo"
	Timeout     time.Duration // default 7s
	MessageExpr string        // JMESPath into the 200 body, default "mensaje"
	Client      *http.Client
	Evaluator   MessageEvaluator
}

// Client fetches greetings over HTTP.
type Client struct {
	endpoint    string
	timeout     time.Duration
	messageExpr string
	client      *http.Client
	eval        MessageEvaluator
}

// NewClient builds a greeting client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("greeting base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid greeting base URL %q", base)
	}

	path := cfg.Path
	if path == "" {
		path = "/saludo"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 7 * time.Second
	}

	expr := strings.TrimSpace(cfg.MessageExpr)
	if expr == "" {
		expr = "mensaje"
	}

	eval := cfg.Evaluator
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	if err := eval.Validate(expr); err != nil {
		return nil, fmt.Errorf("invalid message expression %q: %w", expr, err)
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		endpoint:    u.String(),
		timeout:     timeout,
		messageExpr: expr,
		client:      hc,
		eval:        eval,
	}, nil
}

// Endpoint returns the resolved greeting URL. Useful for startup logs.
func (c *Client) Endpoint() string { return c.endpoint }

// Fetch issues the GET and decodes the reply. Non-200 maps to
// *greeting.StatusError, an elapsed bound to greeting.ErrTimeout, and
// anything else surfaces as a transport fault.
func (c *Client) Fetch(ctx context.Context) (greeting.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return greeting.Reply{}, fmt.Errorf("build greeting request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return greeting.Reply{}, fmt.Errorf("fetch greeting: %w", greeting.ErrTimeout)
		}
		return greeting.Reply{}, fmt.Errorf("fetch greeting: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on a read-only body

	if resp.StatusCode != http.StatusOK {
		// The body is not part of the contract on failure.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return greeting.Reply{}, &greeting.StatusError{Code: resp.StatusCode}
	}

	var payload any
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return greeting.Reply{}, fmt.Errorf("decode greeting body: %w", err)
	}

	result, err := c.eval.Evaluate(c.messageExpr, payload)
	if err != nil {
		return greeting.Reply{}, fmt.Errorf("evaluate message expression: %w", err)
	}

	msg, ok := result.(string)
	if !ok {
		// Absent or non-string field: the fixed default substitutes.
		return greeting.Reply{}, nil
	}
	return greeting.Reply{Message: msg, HasMessage: true}, nil
}

// isTimeout reports whether the request failed because the bounded wait
// elapsed rather than from some other transport fault.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
