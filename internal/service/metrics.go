package service

import (
	"sync"
	"time"

	obserrors "github.com/camixfedex/saludo-app/internal/observability/errors"
)

// ControllerMetrics tracks counters for the auth and greeting flows.
// All methods are safe on a nil receiver so metrics stay optional.
type ControllerMetrics struct {
	mu sync.RWMutex

	// Sign-in/out metrics
	SignInsSucceeded  int64 `json:"sign_ins_succeeded"`
	SignInsFailed     int64 `json:"sign_ins_failed"`
	SignOutsSucceeded int64 `json:"sign_outs_succeeded"`
	SignOutsFailed    int64 `json:"sign_outs_failed"`

	// Fetch metrics
	FetchesSucceeded int64 `json:"fetches_succeeded"`
	FetchesFailed    int64 `json:"fetches_failed"`
	FetchesBlocked   int64 `json:"fetches_blocked"`

	// Performance metrics
	AvgFetchTime time.Duration `json:"avg_fetch_time"`
	LastFetchAt  time.Time     `json:"last_fetch_at"`

	// Internal tracking
	totalFetchTime time.Duration
	fetchCount     int64
	sink           metricsSink
}

type metricsSink interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// NewControllerMetrics creates a new metrics tracker.
func NewControllerMetrics() *ControllerMetrics {
	return &ControllerMetrics{}
}

// SetSink wires a metrics sink used to emit external metrics (e.g., StatsD).
func (m *ControllerMetrics) SetSink(sink metricsSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = sink
}

// RecordSignIn records a sign-in attempt outcome.
func (m *ControllerMetrics) RecordSignIn(err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if err != nil {
		m.SignInsFailed++
	} else {
		m.SignInsSucceeded++
	}
	sink := m.sink
	m.mu.Unlock()

	emitOutcome(sink, "auth.signin", err)
}

// RecordSignOut records a sign-out attempt outcome.
func (m *ControllerMetrics) RecordSignOut(err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if err != nil {
		m.SignOutsFailed++
	} else {
		m.SignOutsSucceeded++
	}
	sink := m.sink
	m.mu.Unlock()

	emitOutcome(sink, "auth.signout", err)
}

// RecordFetchBlocked records a greeting request refused for lack of a session.
func (m *ControllerMetrics) RecordFetchBlocked() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.FetchesBlocked++
	sink := m.sink
	m.mu.Unlock()

	if sink != nil {
		sink.Count("greeting.fetch.blocked", 1, nil)
	}
}

// RecordFetch records a completed greeting request and its duration.
func (m *ControllerMetrics) RecordFetch(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if err != nil {
		m.FetchesFailed++
	} else {
		m.FetchesSucceeded++
	}
	m.LastFetchAt = time.Now()

	m.totalFetchTime += d
	m.fetchCount++
	m.AvgFetchTime = m.totalFetchTime / time.Duration(m.fetchCount)

	sink := m.sink
	m.mu.Unlock()

	emitOutcome(sink, "greeting.fetch", err)
	if sink != nil {
		sink.Timing("greeting.fetch.duration", d, nil)
	}
}

func emitOutcome(sink metricsSink, name string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"outcome": "ok"}
	if err != nil {
		tags["outcome"] = "error"
		tags["error_type"] = obserrors.Classify(err)
	}
	sink.Count(name, 1, tags)
}

// Snapshot returns a copy of the current counters.
func (m *ControllerMetrics) Snapshot() ControllerMetrics {
	if m == nil {
		return ControllerMetrics{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy without the mutex to avoid copylocks issues.
	return ControllerMetrics{
		SignInsSucceeded:  m.SignInsSucceeded,
		SignInsFailed:     m.SignInsFailed,
		SignOutsSucceeded: m.SignOutsSucceeded,
		SignOutsFailed:    m.SignOutsFailed,
		FetchesSucceeded:  m.FetchesSucceeded,
		FetchesFailed:     m.FetchesFailed,
		FetchesBlocked:    m.FetchesBlocked,
		AvgFetchTime:      m.AvgFetchTime,
		LastFetchAt:       m.LastFetchAt,
		totalFetchTime:    m.totalFetchTime,
		fetchCount:        m.fetchCount,
	}
}
