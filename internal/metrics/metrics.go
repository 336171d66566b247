package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type loadStats struct {
	loads      int
	errors     int
	coalesced  int
	lastLoadMs int64
}

// Recorder captures lightweight, in-memory metrics about provider calls and state loads.
// When built through Setup it also forwards every observation to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	loads loadStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordStateLoad tracks one load cycle of the state container.
// Coalesced loads joined an in-flight fetch instead of starting their own.
func (r *Recorder) RecordStateLoad(intent string, duration time.Duration, err error, coalesced bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.loads.loads++
	r.loads.lastLoadMs = duration.Milliseconds()
	if err != nil {
		r.loads.errors++
	}
	if coalesced {
		r.loads.coalesced++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStateLoad(intent, duration, err, coalesced)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks auto-refresh cycles and errors.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration, err)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the current stats for a provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// LoadSnapshot is a copy of the state container load counters.
type LoadSnapshot struct {
	Loads      int
	Errors     int
	Coalesced  int
	LastLoadMs int64
}

// Loads returns the state container load counters.
func (r *Recorder) Loads() LoadSnapshot {
	if r == nil {
		return LoadSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return LoadSnapshot{
		Loads:      r.loads.loads,
		Errors:     r.loads.errors,
		Coalesced:  r.loads.coalesced,
		LastLoadMs: r.loads.lastLoadMs,
	}
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
