// Package retry wraps a single fallible operation with a bounded retry
// budget and exponential backoff. It knows nothing about payload semantics:
// every failure consumes budget the same way, whatever its cause.
package retry

import (
	"context"
	"math"
	"net/http"
	"time"

	"tezgah/internal/domain"
)

const (
	DefaultRetries      = 2
	DefaultInitialDelay = 250 * time.Millisecond
	DefaultMaxDelay     = 2 * time.Second
	DefaultFactor       = 2.0
)

// Options tunes the retry budget and the backoff curve. The zero value uses
// the package defaults.
type Options struct {
	Retries      int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Factor       float64
}

func (o Options) withDefaults() Options {
	if o.Retries <= 0 {
		o.Retries = DefaultRetries
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = DefaultInitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = DefaultMaxDelay
	}
	if o.Factor <= 0 {
		o.Factor = DefaultFactor
	}
	return o
}

// Do executes op up to 1+Retries times, sleeping
// min(InitialDelay * Factor^attempt, MaxDelay) between attempts. Once the
// budget is exhausted the last error is surfaced; an error that is not
// already classified is normalized to a 502 "external service failed".
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()

	var zero T
	var lastErr error

	for attempt := 0; attempt <= opts.Retries; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt == opts.Retries {
			break
		}
		if err := sleep(ctx, backoffDelay(opts, attempt)); err != nil {
			lastErr = err
			break
		}
	}

	if appErr, ok := domain.AsAppError(lastErr); ok {
		return zero, appErr
	}
	return zero, domain.NewAppError("external service failed", http.StatusBadGateway)
}

func backoffDelay(opts Options, attempt int) time.Duration {
	delay := time.Duration(float64(opts.InitialDelay) * math.Pow(opts.Factor, float64(attempt)))
	if delay > opts.MaxDelay || delay <= 0 {
		delay = opts.MaxDelay
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
