// Package watch polls an event's rankings and reports which teams moved.
package watch

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/toa-client/internal/logging"
	"github.com/preston-bernstein/toa-client/toa"
)

const (
	defaultInterval = time.Minute
	// Failures in a row before Status stops reporting ready.
	readyFailureLimit = 3
)

// FetchFunc returns the current rankings for the watched event.
type FetchFunc func(ctx context.Context) ([]toa.Ranking, error)

// Recorder is the subset of metrics.Recorder the watcher reports to.
type Recorder interface {
	RecordWatchCycle(eventKey string, duration time.Duration, changes int, err error)
}

// Options configures a Watcher. Only Interval has a default.
type Options struct {
	EventKey string
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  Recorder
	// OnChange receives the full rankings and the sorted team keys whose rank
	// or record differs from the previous poll. It runs on the watch goroutine.
	OnChange func(rankings []toa.Ranking, changed []string)
}

// Watcher polls rankings on an interval and diffs consecutive results.
type Watcher struct {
	fetch    FetchFunc
	opts     Options
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	previous map[string]standing

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the watch loop.
type Status struct {
	Cycles              int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastChangeCount     int
	Teams               int
}

// IsReady reports whether the watcher has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

type standing struct {
	rank   int
	wins   int
	losses int
	ties   int
}

func New(fetch FetchFunc, opts Options) *Watcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		fetch:    fetch,
		opts:     opts,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start polls once immediately, then on every tick until ctx is cancelled or
// Stop is called. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.ticker = time.NewTicker(w.interval)
	w.startMu.Unlock()

	logger := w.opts.Logger
	go func() {
		defer close(w.exited)
		logging.Info(logger, "watch started",
			logging.FieldEventKey, w.opts.EventKey,
			slog.Int64(logging.FieldDurationMS, w.interval.Milliseconds()),
		)
		w.pollOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				w.ticker.Stop()
				logging.Info(logger, "watch stopped", logging.FieldEventKey, w.opts.EventKey)
				return
			case <-w.done:
				w.ticker.Stop()
				logging.Info(logger, "watch stopped", logging.FieldEventKey, w.opts.EventKey)
				return
			case <-w.ticker.C:
				w.pollOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for the in-flight poll, bounded by ctx.
func (w *Watcher) Stop(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.done) })

	w.startMu.Lock()
	started := w.started
	w.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-w.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the watcher's recent health.
func (w *Watcher) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}

func (w *Watcher) pollOnce(ctx context.Context) {
	start := w.now()
	logger := w.opts.Logger

	rankings, err := w.fetch(ctx)
	duration := w.now().Sub(start)
	if err != nil {
		if w.opts.Metrics != nil {
			w.opts.Metrics.RecordWatchCycle(w.opts.EventKey, duration, 0, err)
		}
		logging.Error(logger, "watch fetch failed", err,
			logging.FieldEventKey, w.opts.EventKey,
			logging.FieldDurationMS, duration.Milliseconds(),
		)
		w.recordFailure(err, start)
		return
	}

	current := make(map[string]standing, len(rankings))
	for _, r := range rankings {
		current[r.TeamKey] = standing{rank: r.Rank, wins: r.Wins, losses: r.Losses, ties: r.Ties}
	}
	changed := diff(w.previous, current)
	w.previous = current

	if w.opts.Metrics != nil {
		w.opts.Metrics.RecordWatchCycle(w.opts.EventKey, duration, len(changed), nil)
	}
	w.recordSuccess(start, len(changed), len(rankings))

	logging.Debug(logger, "watch refreshed rankings",
		logging.FieldEventKey, w.opts.EventKey,
		logging.FieldCount, len(rankings),
		"changed", len(changed),
		logging.FieldDurationMS, duration.Milliseconds(),
	)
	if len(changed) > 0 && w.opts.OnChange != nil {
		w.opts.OnChange(rankings, changed)
	}
}

// diff returns the sorted keys present in either map whose standing differs.
func diff(previous, current map[string]standing) []string {
	var changed []string
	for key, cur := range current {
		if prev, ok := previous[key]; !ok || prev != cur {
			changed = append(changed, key)
		}
	}
	for key := range previous {
		if _, ok := current[key]; !ok {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}

func (w *Watcher) recordSuccess(at time.Time, changes, teams int) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Cycles++
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastAttempt = at
	w.status.LastSuccess = at
	w.status.LastChangeCount = changes
	w.status.Teams = teams
}

func (w *Watcher) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Cycles++
	w.status.ConsecutiveFailures++
	w.status.LastError = err.Error()
	w.status.LastAttempt = at
}
