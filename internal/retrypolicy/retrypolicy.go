// Package retrypolicy provides bounded retry with pluggable backoff.
// The sleep function is injectable so tests run without waiting.
package retrypolicy

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultMaxAttempts bounds retried operations when the caller does not
// say otherwise.
const DefaultMaxAttempts = 3

// Policy controls how an operation is retried. The zero value is not
// usable; construct with [New] or [Exponential].
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Backoff returns the delay before the given attempt (1-based, so
	// Backoff(1) is the delay after the first failure).
	Backoff func(attempt int) time.Duration

	// Sleep waits for d or until ctx is done. Overridable in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New returns a policy with a fixed delay between attempts.
func New(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     func(int) time.Duration { return delay },
		Sleep:       sleepCtx,
	}
}

// Exponential returns a policy whose delay doubles after each failure:
// base, 2*base, 4*base, and so on.
func Exponential(maxAttempts int, base time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff: func(attempt int) time.Duration {
			return base << (attempt - 1)
		},
		Sleep: sleepCtx,
	}
}

// Do runs op until it succeeds, the attempt budget is exhausted, or the
// context is canceled. The returned error is the last failure, wrapped
// with the attempt count.
func (p Policy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == maxAttempts {
			break
		}

		delay := time.Duration(0)
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		slog.Warn("operation failed, retrying",
			"op", name,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"delay", delay,
			"error", lastErr)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, maxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
