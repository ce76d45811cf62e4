package mailer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoggingMailer is a decorator that records every send attempt.
type LoggingMailer struct {
	inner  Mailer
	logger zerolog.Logger
}

// WithLogging wraps a Mailer with structured logging.
func WithLogging(m Mailer, logger zerolog.Logger) Mailer {
	return &LoggingMailer{inner: m, logger: logger}
}

func (l *LoggingMailer) Send(ctx context.Context, msg Message) (*Receipt, error) {
	start := time.Now()

	receipt, err := l.inner.Send(ctx, msg)

	var ev *zerolog.Event
	if err != nil {
		ev = l.logger.Warn().Err(err)
	} else {
		ev = l.logger.Info()
	}
	ev = ev.
		Str("provider", l.inner.Name()).
		Str("subject", msg.Subject).
		Int("recipients", len(msg.To)).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Bool("success", err == nil)
	if receipt != nil {
		ev = ev.Str("message_id", receipt.ID)
	}
	ev.Msg("mail send")

	return receipt, err
}

func (l *LoggingMailer) Name() string {
	return l.inner.Name()
}
