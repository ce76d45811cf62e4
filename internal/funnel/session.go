package funnel

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/quiz"
)

// Ticket binds an asynchronous completion to the session and the exact
// entry into analyzing/sending that started it.
type Ticket struct {
	Session string
	Seq     uint64
}

func (t Ticket) String() string {
	return fmt.Sprintf("%s#%d", t.Session, t.Seq)
}

// Session is the state of one visitor's pass through the funnel. It is a
// plain value: transitions take a Session and return a new one.
type Session struct {
	ID      string
	Step    Step
	Answers quiz.Answers
	Photo   capture.Photo
	Email   string

	IsAnalyzing bool
	IsSending   bool

	// LastError is the retry prompt shown after a failed dispatch.
	LastError string

	seq     uint64
	pending Ticket
}

// NewSession starts a session on the home step.
func NewSession() Session {
	return NewSessionWithID(uuid.NewString())
}

// NewSessionWithID starts a session with a caller-chosen identifier.
func NewSessionWithID(id string) Session {
	return Session{ID: id, Step: Home()}
}

// CurrentQuestionIndex returns the active question index. ok is false
// outside the core questions.
func (s Session) CurrentQuestionIndex() (int, bool) {
	if s.Step.Kind != StepCoreQuestion {
		return 0, false
	}
	return s.Step.Question, true
}

// Pending returns the ticket of the in-flight async operation, if any.
func (s Session) Pending() (Ticket, bool) {
	if !s.IsAnalyzing && !s.IsSending {
		return Ticket{}, false
	}
	return s.pending, true
}

// Diagnosis derives the diagnosis for the current answers.
func (s Session) Diagnosis() diagnosis.Diagnosis {
	return diagnosis.Derive(s.Answers)
}

// CanAdvance reports whether Advance would be accepted right now.
func (s Session) CanAdvance() bool {
	return !Transition(s, Advance{}).Refused
}

func (s *Session) issueTicket() Ticket {
	s.seq++
	s.pending = Ticket{Session: s.ID, Seq: s.seq}
	return s.pending
}

func (s Session) owns(t Ticket) bool {
	return t == s.pending && t.Session == s.ID && t.Seq != 0
}
