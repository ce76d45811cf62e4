package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// New creates a Mailer from configuration.
// It returns the provider wrapped with retry and logging middleware.
func New(cfg Config, logger zerolog.Logger) (Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Mailer
	switch cfg.Provider {
	case "resend":
		rm, err := NewResendMailer(cfg.Resend)
		if err != nil {
			return nil, fmt.Errorf("initializing resend provider: %w", err)
		}
		base = rm
	case "log":
		base = NewLogMailer(logger)
	case "mock":
		return NewMockMailer(), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %q", cfg.Provider)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	logged := WithLogging(base, logger.With().Str("component", "mailer").Logger())
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}

// TimeoutMailer bounds every Send with a deadline.
type TimeoutMailer struct {
	inner   Mailer
	timeout time.Duration
}

// WithTimeout wraps m so each Send runs under timeout. A non-positive
// timeout returns m unchanged.
func WithTimeout(m Mailer, timeout time.Duration) Mailer {
	if timeout <= 0 {
		return m
	}
	return &TimeoutMailer{inner: m, timeout: timeout}
}

func (t *TimeoutMailer) Send(ctx context.Context, msg Message) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Send(ctx, msg)
}

func (t *TimeoutMailer) Name() string {
	return t.inner.Name()
}
