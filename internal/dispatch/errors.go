package dispatch

import "fmt"

// ErrInvalidPayload indicates a request body that does not match the
// dispatch contract.
type ErrInvalidPayload struct {
	Err error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid dispatch payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// ErrDispatchFailed indicates the dispatcher could not deliver the
// notification. StatusCode is zero when the request never got a response.
type ErrDispatchFailed struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ErrDispatchFailed) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("dispatch failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("dispatch failed (HTTP %d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("dispatch failed (HTTP %d)", e.StatusCode)
	}
}

func (e *ErrDispatchFailed) Unwrap() error { return e.Err }

// Unreachable reports whether the failure happened before any response
// arrived (network error, refused connection, timeout).
func (e *ErrDispatchFailed) Unreachable() bool {
	return e.StatusCode == 0
}
