package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/capilize/capilize/internal/mailer"
)

// DefaultOperatorAddress receives every notification unless configured.
const DefaultOperatorAddress = "vendascapilize@gmail.com"

// Notifier is the in-process Dispatcher: it renders the notification and
// hands it to a mailer addressed to the operator inbox.
type Notifier struct {
	mailer mailer.Mailer
	from   string
	to     []string
	logger zerolog.Logger
}

// NewNotifier creates a Notifier. An empty to list falls back to
// DefaultOperatorAddress.
func NewNotifier(m mailer.Mailer, from string, to []string, logger zerolog.Logger) *Notifier {
	if len(to) == 0 {
		to = []string{DefaultOperatorAddress}
	}
	return &Notifier{mailer: m, from: from, to: to, logger: logger}
}

// Dispatch validates the payload, renders it and sends it.
func (n *Notifier) Dispatch(ctx context.Context, p Payload) error {
	if strings.TrimSpace(p.Email) == "" {
		return &ErrInvalidPayload{Err: fmt.Errorf("email is required")}
	}
	answers, err := p.QuizAnswers()
	if err != nil {
		return &ErrInvalidPayload{Err: err}
	}

	var photo string
	if p.HasPhoto() {
		photo = *p.Photo
	}
	html, err := RenderNotification(p.Email, answers, photo)
	if err != nil {
		return &ErrInvalidPayload{Err: err}
	}

	msg := mailer.Message{
		From:    n.from,
		To:      n.to,
		ReplyTo: p.Email,
		Subject: Subject(p.Email),
		HTML:    html,
		Tags:    map[string]string{"source": "funnel"},
	}
	receipt, err := n.mailer.Send(ctx, msg)
	if err != nil {
		return &ErrDispatchFailed{Err: fmt.Errorf("send notification: %w", err)}
	}

	n.logger.Info().
		Str("message_id", receipt.ID).
		Str("provider", receipt.Provider).
		Bool("photo", photo != "").
		Msg("diagnosis dispatched")
	return nil
}
