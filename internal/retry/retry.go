// Package retry wraps TOA client calls with exponential backoff. The client
// itself never retries; callers opt in per call.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/toa-client/internal/logging"
	"github.com/preston-bernstein/toa-client/toa"
)

const (
	defaultMaxAttempts     = 3
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 10 * time.Second
	defaultMultiplier      = 2.0
)

// Policy bounds how often and how fast a call is retried.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// Recorder is the subset of metrics.Recorder retry reports to.
type Recorder interface {
	RecordRetry(endpoint string)
	RecordRateLimit(endpoint string, retryAfter time.Duration)
}

// Options carries per-call collaborators. All fields are optional.
type Options struct {
	Logger  *slog.Logger
	Metrics Recorder
	// Endpoint labels logs and metrics when the error does not carry one.
	Endpoint string

	sleep func(ctx context.Context, d time.Duration) error
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = defaultInitialInterval
	}
	if p.MaxInterval < p.InitialInterval {
		p.MaxInterval = defaultMaxInterval
		if p.MaxInterval < p.InitialInterval {
			p.MaxInterval = p.InitialInterval
		}
	}
	if p.Multiplier <= 1 {
		p.Multiplier = defaultMultiplier
	}
	return p
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.Multiplier = p.Multiplier
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)
}

// Do calls fn until it succeeds, returns a non-retryable error, or the policy
// is exhausted. A 429 carrying Retry-After replaces the next backoff interval,
// capped at MaxInterval.
// The last error from fn is returned unchanged.
func Do[T any](ctx context.Context, policy Policy, opts Options, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	policy = policy.withDefaults()
	b := policy.backOff(ctx)
	sleep := opts.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 1; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}

		endpoint := endpointOf(err, opts.Endpoint)
		var retryAfter time.Duration
		if statusErr, ok := toa.AsAPIStatusError(err); ok && statusErr.StatusCode == http.StatusTooManyRequests {
			retryAfter = statusErr.RetryAfter
			if opts.Metrics != nil {
				opts.Metrics.RecordRateLimit(endpoint, retryAfter)
			}
		}

		if !Retryable(err) || ctx.Err() != nil {
			return zero, err
		}

		delay := b.NextBackOff()
		if delay == backoff.Stop {
			logging.Warn(logging.FromContext(ctx, opts.Logger), "toa call failed after retries",
				logging.FieldEndpoint, endpoint,
				logging.FieldAttempt, attempt,
				"error", err,
			)
			return zero, err
		}
		if retryAfter > 0 {
			delay = retryAfter
			if delay > policy.MaxInterval {
				delay = policy.MaxInterval
			}
		}

		logging.Warn(logging.FromContext(ctx, opts.Logger), "toa call retry",
			logging.FieldEndpoint, endpoint,
			logging.FieldAttempt, attempt,
			"max_attempts", policy.MaxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
		if opts.Metrics != nil {
			opts.Metrics.RecordRetry(endpoint)
		}

		if serr := sleep(ctx, delay); serr != nil {
			return zero, err
		}
	}
}

// Retryable reports whether err is worth another attempt: transport failures
// that are not cancellations, 429 and 5xx.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := toa.AsTransportError(err); ok {
		return true
	}
	if statusErr, ok := toa.AsAPIStatusError(err); ok {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}

func endpointOf(err error, fallback string) string {
	if tErr, ok := toa.AsTransportError(err); ok && tErr.Endpoint != "" {
		return tErr.Endpoint
	}
	if statusErr, ok := toa.AsAPIStatusError(err); ok && statusErr.Endpoint != "" {
		return statusErr.Endpoint
	}
	if dErr, ok := toa.AsDeserializationError(err); ok && dErr.Endpoint != "" {
		return dErr.Endpoint
	}
	return fallback
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
