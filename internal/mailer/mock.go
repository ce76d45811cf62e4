package mailer

import (
	"context"
	"fmt"
	"sync"
)

// MockResult is a canned outcome for the MockMailer.
type MockResult struct {
	ID  string
	Err error
}

// MockMailer is a deterministic Mailer for testing.
// It returns canned results in FIFO order and records all messages.
// Once the queue is empty every Send succeeds.
type MockMailer struct {
	mu      sync.Mutex
	results []MockResult
	Sent    []Message
}

// NewMockMailer creates a MockMailer with the given canned results.
func NewMockMailer(results ...MockResult) *MockMailer {
	return &MockMailer{results: results}
}

func (m *MockMailer) Send(_ context.Context, msg Message) (*Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = append(m.Sent, msg)

	if len(m.results) == 0 {
		return &Receipt{ID: fmt.Sprintf("mock-%d", len(m.Sent)), Provider: "mock"}, nil
	}

	res := m.results[0]
	m.results = m.results[1:]

	if res.Err != nil {
		return nil, res.Err
	}
	id := res.ID
	if id == "" {
		id = fmt.Sprintf("mock-%d", len(m.Sent))
	}
	return &Receipt{ID: id, Provider: "mock"}, nil
}

// Name returns "mock".
func (m *MockMailer) Name() string {
	return "mock"
}

// AddResult appends a canned result to the queue.
func (m *MockMailer) AddResult(res MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}

// CallCount returns the number of Send calls made.
func (m *MockMailer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// LastMessage returns the most recent message, or false if none was sent.
func (m *MockMailer) LastMessage() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
