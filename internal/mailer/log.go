package mailer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of delivering them. It is the
// default provider so that a fresh checkout works without credentials.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) (*Receipt, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	m.logger.Info().
		Str("message_id", id).
		Str("from", msg.From).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("mail not delivered (log provider)")
	return &Receipt{ID: id, Provider: m.Name()}, nil
}

// Name returns "log".
func (m *LogMailer) Name() string {
	return "log"
}
