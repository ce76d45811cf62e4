package mailer

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryMailer is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryMailer struct {
	inner  Mailer
	config RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a Mailer with retry logic.
func WithRetry(m Mailer, cfg RetryConfig) Mailer {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryMailer{inner: m, config: cfg, sleep: sleepCtx}
}

func (r *RetryMailer) Send(ctx context.Context, msg Message) (*Receipt, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		receipt, err := r.inner.Send(ctx, msg)
		if err == nil {
			return receipt, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt: return the error without sleeping.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		if err := r.sleep(ctx, r.backoff(attempt, err)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryMailer) Name() string {
	return r.inner.Name()
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A malformed message fails the same way every time.
	var invalid *ErrInvalidMessage
	if errors.As(err, &invalid) {
		return false
	}

	// Auth and validation rejections fail the same way on every attempt.
	var rejected *ErrRejected
	if errors.As(err, &rejected) {
		return false
	}

	// Rate limits, provider outages and network errors are transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryMailer) backoff(attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
