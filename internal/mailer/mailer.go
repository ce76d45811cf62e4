package mailer

import "context"

// Mailer is the core abstraction for transactional email delivery.
type Mailer interface {
	// Send delivers msg and returns the provider's receipt.
	Send(ctx context.Context, msg Message) (*Receipt, error)

	// Name returns the provider identifier this mailer is configured to use.
	Name() string
}

// Message describes a single outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string

	// HTML is the rendered body. Inline images travel as data URIs inside it.
	HTML string

	// Tags are provider-side labels used for filtering in dashboards.
	Tags map[string]string
}

// Receipt is what the provider reports back for an accepted message.
type Receipt struct {
	ID       string
	Provider string
}

// Validate checks the fields every provider requires.
func (m Message) Validate() error {
	if m.From == "" {
		return &ErrInvalidMessage{Field: "from"}
	}
	if len(m.To) == 0 {
		return &ErrInvalidMessage{Field: "to"}
	}
	if m.Subject == "" {
		return &ErrInvalidMessage{Field: "subject"}
	}
	if m.HTML == "" {
		return &ErrInvalidMessage{Field: "html"}
	}
	return nil
}
