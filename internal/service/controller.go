package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/camixfedex/saludo-app/internal/domain/greeting"
	"github.com/camixfedex/saludo-app/internal/domain/model"
	"github.com/camixfedex/saludo-app/internal/ports"
)

// ControllerOptions groups dependencies for Controller.
type ControllerOptions struct {
	Provider ports.IdentityProvider // Required: identity provider adapter
	Greeting ports.GreetingClient   // Required: greeting endpoint client
	Deps     ControllerDeps
}

// ControllerDeps groups the optional dependencies.
type ControllerDeps struct {
	Logger  *slog.Logger
	Metrics *ControllerMetrics
}

// Controller is the state store driving the single screen: the auth
// half and the request half advance through the pure reducer, and every
// new state fans out to subscribers. All mutations are serialized
// behind one mutex, so a fetch completion and a provider notification
// can never interleave mid-transition.
type Controller struct {
	provider ports.IdentityProvider
	greeting ports.GreetingClient
	logger   *slog.Logger
	metrics  *ControllerMetrics

	mu       sync.Mutex
	state    model.State
	fetchGen uint64 // bumped on every auth transition; stale fetch results are discarded
	subs     map[uint64]chan model.State
	nextSub  uint64
}

// NewController constructs a controller in the initial state. Panics
// when a required dependency is missing; wiring errors are programmer
// errors, not runtime conditions.
func NewController(opts ControllerOptions) *Controller {
	if opts.Provider == nil {
		panic("service: Controller requires an identity provider")
	}
	if opts.Greeting == nil {
		panic("service: Controller requires a greeting client")
	}
	logger := opts.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		provider: opts.Provider,
		greeting: opts.Greeting,
		logger:   logger,
		metrics:  opts.Deps.Metrics,
		state:    model.NewState(),
		subs:     make(map[uint64]chan model.State),
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// subscriberBuffer bounds how many undelivered states a subscriber may
// hold before the oldest is dropped. The latest state always arrives.
const subscriberBuffer = 16

// Subscribe registers a state observer. The channel carries the current
// state immediately and every change after it, in order; a slow
// receiver loses the oldest undelivered states first. The release
// function (or ctx ending) closes the channel; calling it twice is safe.
func (c *Controller) Subscribe(ctx context.Context) (<-chan model.State, func()) {
	ch := make(chan model.State, subscriberBuffer)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state
	c.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	release := func() {
		once.Do(func() {
			close(done)
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}

	// The watcher exits on explicit release too, not only when ctx ends.
	go func() {
		select {
		case <-ctx.Done():
			release()
		case <-done:
		}
	}()

	return ch, release
}

// Run consumes the provider's session-change stream until ctx ends.
// The subscription is acquired here and released on return, whatever
// the exit path.
func (c *Controller) Run(ctx context.Context) error {
	ch, release := c.provider.Subscribe(ctx)
	defer release()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sess, ok := <-ch:
			if !ok {
				return nil
			}
			c.apply(model.SessionChanged{Session: sess})
		}
	}
}

// RequestSignIn signs in anonymously. Idempotent: an active session is
// re-affirmed without contacting the provider. A provider rejection
// lands in the error state with the failure detail; the session stays
// absent. Returns the resulting state.
func (c *Controller) RequestSignIn(ctx context.Context) model.State {
	c.mu.Lock()
	if c.state.Auth.IsSignedIn() {
		// Re-affirm inside the same critical section as the check: a
		// provider sign-out landing between the two must not be
		// overwritten by a stale re-affirmation.
		current := *c.state.Auth.Session
		st := c.applyLocked(model.SignInSucceeded{Session: current})
		c.mu.Unlock()
		return st
	}
	c.mu.Unlock()

	sess, err := c.provider.SignInAnonymously(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "anonymous sign-in failed", "error", err)
		c.metrics.RecordSignIn(err)
		return c.apply(model.SignInFailed{Detail: err.Error()})
	}

	c.logger.InfoContext(ctx, "signed in anonymously", "uid", sess.UID)
	c.metrics.RecordSignIn(nil)
	return c.apply(model.SignInSucceeded{Session: sess})
}

// RequestSignOut signs the session out. On provider rejection the auth
// phase is left unchanged and only the failure detail surfaces as a
// message. Returns the resulting state.
func (c *Controller) RequestSignOut(ctx context.Context) model.State {
	if err := c.provider.SignOut(ctx); err != nil {
		c.logger.WarnContext(ctx, "sign-out failed", "error", err)
		c.metrics.RecordSignOut(err)
		return c.apply(model.SignOutFailed{Detail: err.Error()})
	}

	c.metrics.RecordSignOut(nil)
	return c.apply(model.SignOutSucceeded{})
}

// Fetch requests one greeting. Without an active session it refuses
// immediately with no network call. A second trigger while a fetch is
// in flight is a no-op. A completion that lands after an auth
// transition is discarded: the reset state wins. Returns the resulting
// state; for an accepted fetch that is the classified outcome.
func (c *Controller) Fetch(ctx context.Context) model.State {
	c.mu.Lock()
	if !c.state.Auth.IsSignedIn() {
		st := c.applyLocked(model.FetchBlocked{})
		c.mu.Unlock()
		c.metrics.RecordFetchBlocked()
		return st
	}
	if c.state.Request.Phase == greeting.PhaseLoading {
		st := c.state
		c.mu.Unlock()
		return st
	}
	gen := c.fetchGen
	c.applyLocked(model.FetchStarted{})
	c.mu.Unlock()

	outcome, err := c.runFetch(ctx)

	c.mu.Lock()
	if c.fetchGen != gen {
		// Auth moved while the request was in flight; the reset state
		// stands and this result is dropped.
		st := c.state
		c.mu.Unlock()
		c.logger.InfoContext(ctx, "discarding stale fetch result")
		return st
	}
	var st model.State
	if err != nil {
		st = c.applyLocked(model.FetchFailed{Message: greeting.Classify(err).Message})
	} else {
		st = c.applyLocked(model.FetchSucceeded{Message: outcome})
	}
	c.mu.Unlock()
	return st
}

// runFetch performs the network call and resolves the success message.
func (c *Controller) runFetch(ctx context.Context) (string, error) {
	start := time.Now()

	reply, err := c.greeting.Fetch(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "greeting fetch failed", "error", err)
		c.metrics.RecordFetch(time.Since(start), err)
		return "", err
	}

	c.metrics.RecordFetch(time.Since(start), nil)
	return reply.DisplayMessage(), nil
}

// apply advances the state through the reducer and notifies subscribers.
func (c *Controller) apply(ev model.Event) model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(ev)
}

// applyLocked is apply for callers already holding c.mu.
func (c *Controller) applyLocked(ev model.Event) model.State {
	next := model.Reduce(c.state, ev)
	if isAuthTransition(ev) && next.Auth != c.state.Auth {
		c.fetchGen++
	}
	if next == c.state {
		return c.state
	}
	c.state = next

	for _, ch := range c.subs {
		select {
		case ch <- next:
		default:
			// Drop the oldest undelivered state to make room.
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
	return next
}

// isAuthTransition reports whether ev can move the auth half. A failed
// sign-out is excluded: it surfaces a message without transitioning.
func isAuthTransition(ev model.Event) bool {
	switch ev.(type) {
	case model.SessionChanged, model.SignInSucceeded, model.SignInFailed, model.SignOutSucceeded:
		return true
	default:
		return false
	}
}
