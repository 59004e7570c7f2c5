// Package retry provides a generic retrying-call combinator driven by an
// explicit policy: maximum attempts, a backoff schedule, and a predicate
// deciding which errors are worth another attempt.
package retry

import (
	"context"
	"time"
)

// Default policy constants.
const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 250 * time.Millisecond
)

// BackoffFunc returns the delay to sleep before attempt n+1, given the
// 1-based attempt that just failed.
type BackoffFunc func(attempt int) time.Duration

// Exponential doubles the base delay after every failed attempt:
// base, 2*base, 4*base, ...
func Exponential(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}

// Linear grows the delay proportionally to the attempt number:
// base, 2*base, 3*base, ...
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Policy controls how Do retries a call.
type Policy struct {
	maxAttempts int
	backoff     BackoffFunc
	retryable   func(error) bool
	sleep       func(ctx context.Context, d time.Duration) error
	onRetry     func(attempt int, delay time.Duration, err error)
}

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithMaxAttempts sets the total number of attempts, including the first.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithBackoff sets the backoff schedule.
func WithBackoff(fn BackoffFunc) Option {
	return func(p *Policy) {
		if fn != nil {
			p.backoff = fn
		}
	}
}

// WithRetryable sets the predicate deciding whether an error is transient.
// Without it every error is considered terminal.
func WithRetryable(fn func(error) bool) Option {
	return func(p *Policy) {
		if fn != nil {
			p.retryable = fn
		}
	}
}

// WithSleep replaces the delay primitive. Tests use this to observe backoff
// without waiting for it.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Policy) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithOnRetry registers a callback invoked after each failed attempt that
// will be retried.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(p *Policy) {
		p.onRetry = fn
	}
}

// NewPolicy creates a Policy with defaults: 3 attempts, exponential backoff
// from 250ms, nothing retryable.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		maxAttempts: defaultMaxAttempts,
		backoff:     Exponential(defaultBackoffBase),
		retryable:   func(error) bool { return false },
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxAttempts returns the configured attempt budget.
func (p *Policy) MaxAttempts() int { return p.maxAttempts }

// Do runs fn up to the policy's attempt budget. Retryable failures sleep the
// full backoff delay before the next attempt; terminal failures and exhausted
// budgets return the last error. The delay honors ctx cancellation.
func (p *Policy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == p.maxAttempts || !p.retryable(err) {
			return err
		}

		delay := p.backoff(attempt)
		if p.onRetry != nil {
			p.onRetry(attempt, delay, err)
		}
		if err := p.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
