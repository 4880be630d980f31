// Package identity provides the shared session-change notification hub
// used by identity provider adapters. The hub owns the provider-visible
// session value and fans every change out to subscribers.
package identity

import (
	"context"
	"sync"

	domainauth "github.com/camixfedex/saludo-app/internal/domain/auth"
)

// Hub broadcasts session-or-absent values to subscribers. Each
// subscriber channel holds at most one pending value: a stale unread
// notification is replaced rather than queued, so receivers always
// observe the most recent session state. Safe for concurrent use.
type Hub struct {
	mu      sync.Mutex
	current *domainauth.Session
	subs    map[uint64]chan *domainauth.Session
	nextSub uint64
}

// NewHub returns a hub with no active session.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan *domainauth.Session)}
}

// Subscribe registers a listener. The channel carries the current
// session immediately and the latest value after every change. The
// release function (or ctx ending) unregisters and closes the channel;
// calling it more than once is safe.
func (h *Hub) Subscribe(ctx context.Context) (<-chan *domainauth.Session, func()) {
	ch := make(chan *domainauth.Session, 1)

	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch
	ch <- clone(h.current)
	h.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	release := func() {
		once.Do(func() {
			close(done)
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			// Safe: sends only target channels still registered, under mu.
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

// Set stores the session (nil for signed out) and notifies subscribers.
func (h *Hub) Set(sess *domainauth.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = clone(sess)
	for _, ch := range h.subs {
		select {
		case ch <- clone(h.current):
		default:
			// Replace the unread stale value with the latest.
			select {
			case <-ch:
			default:
			}
			ch <- clone(h.current)
		}
	}
}

// Current returns a copy of the active session, or nil.
func (h *Hub) Current() *domainauth.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.current)
}

func clone(s *domainauth.Session) *domainauth.Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
