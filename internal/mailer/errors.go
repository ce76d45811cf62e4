package mailer

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider throttled the request (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
// StatusCode is 0 when no response was received.
type ErrProviderUnavailable struct {
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mail provider unavailable: %v", e.Err)
	}
	return "mail provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRejected indicates the provider refused the request (bad request,
// auth or validation). Never retried.
type ErrRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("mail provider rejected message (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// ErrInvalidMessage indicates a message is missing a required field.
// Never retried.
type ErrInvalidMessage struct {
	Field string
}

func (e *ErrInvalidMessage) Error() string {
	return fmt.Sprintf("invalid message: missing %s", e.Field)
}
