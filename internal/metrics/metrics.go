package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/toa-client/toa"
)

type endpointStats struct {
	calls           int
	errors          int
	retries         int
	rateLimitHits   int
	lastStatus      int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type watchStats struct {
	cycles  int
	errors  int
	changes int
}

// Recorder captures in-memory metrics about TOA calls and watch cycles and
// mirrors them to OpenTelemetry instruments when configured. A nil Recorder
// is a no-op.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*endpointStats
	watch watchStats
	otel  *otelInstruments
}

var _ toa.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// ObserveRequest records one completed TOA request for endpoint.
func (r *Recorder) ObserveRequest(endpoint string, statusCode int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.calls++
	stats.lastStatus = statusCode
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRequest(endpoint, statusCode, duration, err)
	}
}

// RecordRetry counts a retry scheduled for endpoint.
func (r *Recorder) RecordRetry(endpoint string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(endpoint).retries++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRetry(endpoint)
	}
}

// RecordRateLimit tracks a 429 from endpoint and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordWatchCycle tracks one ranking watch poll and how many rows changed.
func (r *Recorder) RecordWatchCycle(eventKey string, duration time.Duration, changes int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.watch.cycles++
	r.watch.changes += changes
	if err != nil {
		r.watch.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordWatch(eventKey, duration, changes, err)
	}
}

// Snapshot is a copy of the current stats for one endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	Retries         int
	RateLimitHits   int
	LastStatus      int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Retries:         stats.retries,
		RateLimitHits:   stats.rateLimitHits,
		LastStatus:      stats.lastStatus,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// WatchSnapshot is a copy of the watch cycle totals.
type WatchSnapshot struct {
	Cycles  int
	Errors  int
	Changes int
}

func (r *Recorder) WatchSnapshot() WatchSnapshot {
	if r == nil {
		return WatchSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return WatchSnapshot{
		Cycles:  r.watch.cycles,
		Errors:  r.watch.errors,
		Changes: r.watch.changes,
	}
}

// Endpoints lists every endpoint with recorded activity, sorted.
func (r *Recorder) Endpoints() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.stats))
	for endpoint := range r.stats {
		out = append(out, endpoint)
	}
	sort.Strings(out)
	return out
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(endpoint string) *endpointStats {
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}

// ErrorKind classifies a client error for the AttrErrorKind attribute.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case isTransport(err):
		return ErrorKindTransport
	case isStatus(err):
		return ErrorKindStatus
	case isDecode(err):
		return ErrorKindDecode
	default:
		return ErrorKindOther
	}
}

func isTransport(err error) bool {
	_, ok := toa.AsTransportError(err)
	return ok
}

func isStatus(err error) bool {
	_, ok := toa.AsAPIStatusError(err)
	return ok
}

func isDecode(err error) bool {
	_, ok := toa.AsDeserializationError(err)
	return ok
}
