package funnel

import (
	"errors"
	"net/url"
	"strings"

	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/dispatch"
	"github.com/capilize/capilize/internal/quiz"
)

// Retry prompts shown on the email step after a failed dispatch.
const (
	PromptRetry       = "We could not send your diagnosis. Please try again."
	PromptUnreachable = "We could not reach the server. Check your connection and try again."
)

// EffectKind names the asynchronous work a transition asks for.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectAnalyze
	EffectDispatch
)

// Effect describes async work the caller must start. Its completion must be
// posted back as an event carrying Ticket.
type Effect struct {
	Kind    EffectKind
	Ticket  Ticket
	Photo   capture.Photo
	Payload dispatch.Payload
}

// Outcome is the result of applying one event to a session.
type Outcome struct {
	Session Session
	Effect  Effect
	// Refused is true when the event was not valid for the current step or
	// its guard failed. Session is then the input unchanged.
	Refused bool
	// Stale is true for a completion whose ticket no longer matches.
	Stale bool
}

type handler func(s Session, ev Event) (Session, Effect, bool)

type transitionKey struct {
	step  StepKind
	event EventKind
}

// transitions lists every accepted (step, event) pair. Anything absent is a
// refusal.
var transitions = map[transitionKey]handler{
	{StepHome, EventAdvance}: func(s Session, _ Event) (Session, Effect, bool) {
		s.Step = CoreQuestion(0)
		return s, Effect{}, true
	},

	{StepCoreQuestion, EventSelectAnswer}: func(s Session, ev Event) (Session, Effect, bool) {
		if err := s.Answers.Set(s.Step.Question, ev.(SelectAnswer).Value); err != nil {
			return s, Effect{}, false
		}
		return s, Effect{}, true
	},
	{StepCoreQuestion, EventAdvance}: func(s Session, _ Event) (Session, Effect, bool) {
		i := s.Step.Question
		if !s.Answers.IsAnswered(i) {
			return s, Effect{}, false
		}
		if i == quiz.NumCoreQuestions-1 {
			s.Step = Difficulties()
		} else {
			s.Step = CoreQuestion(i + 1)
		}
		return s, Effect{}, true
	},
	{StepCoreQuestion, EventBack}: func(s Session, _ Event) (Session, Effect, bool) {
		if s.Step.Question == 0 {
			s.Step = Home()
		} else {
			s.Step = CoreQuestion(s.Step.Question - 1)
		}
		return s, Effect{}, true
	},

	{StepDifficulties, EventToggleDifficulty}: func(s Session, ev Event) (Session, Effect, bool) {
		d := ev.(ToggleDifficulty).Difficulty
		if !d.Valid() {
			return s, Effect{}, false
		}
		s.Answers.Toggle(d)
		return s, Effect{}, true
	},
	{StepDifficulties, EventAdvance}: func(s Session, _ Event) (Session, Effect, bool) {
		if s.Answers.DifficultyCount() == 0 {
			return s, Effect{}, false
		}
		s.Step = PhotoCapture()
		return s, Effect{}, true
	},
	{StepDifficulties, EventBack}: func(s Session, _ Event) (Session, Effect, bool) {
		s.Step = CoreQuestion(quiz.NumCoreQuestions - 1)
		return s, Effect{}, true
	},

	{StepPhotoCapture, EventPhotoCaptured}: func(s Session, ev Event) (Session, Effect, bool) {
		s.Photo = ev.(PhotoCaptured).Photo
		s.Step = Analyzing()
		s.IsAnalyzing = true
		t := s.issueTicket()
		return s, Effect{Kind: EffectAnalyze, Ticket: t, Photo: s.Photo}, true
	},
	{StepPhotoCapture, EventBack}: func(s Session, _ Event) (Session, Effect, bool) {
		s.Step = Difficulties()
		return s, Effect{}, true
	},

	{StepAnalyzing, EventAnalysisDone}: func(s Session, _ Event) (Session, Effect, bool) {
		s.IsAnalyzing = false
		s.pending = Ticket{}
		s.Step = Result()
		return s, Effect{}, true
	},

	{StepResult, EventAdvance}: func(s Session, _ Event) (Session, Effect, bool) {
		s.Step = EmailCollection()
		return s, Effect{}, true
	},

	{StepEmailCollection, EventSetEmail}: func(s Session, ev Event) (Session, Effect, bool) {
		s.Email = ev.(SetEmail).Email
		return s, Effect{}, true
	},
	{StepEmailCollection, EventBack}: func(s Session, _ Event) (Session, Effect, bool) {
		if s.IsSending {
			return s, Effect{}, false
		}
		s.LastError = ""
		s.Step = Result()
		return s, Effect{}, true
	},
	{StepEmailCollection, EventSubmit}: func(s Session, _ Event) (Session, Effect, bool) {
		if strings.TrimSpace(s.Email) == "" || s.IsSending {
			return s, Effect{}, false
		}
		s.LastError = ""
		s.IsSending = true
		s.Step = Sending()
		t := s.issueTicket()
		payload := dispatch.NewPayload(strings.TrimSpace(s.Email), s.Answers, string(s.Photo))
		return s, Effect{Kind: EffectDispatch, Ticket: t, Payload: payload}, true
	},

	{StepSending, EventDispatchSucceeded}: func(s Session, _ Event) (Session, Effect, bool) {
		s.IsSending = false
		s.pending = Ticket{}
		s.Step = Success()
		return s, Effect{}, true
	},
	{StepSending, EventDispatchFailed}: func(s Session, ev Event) (Session, Effect, bool) {
		s.IsSending = false
		s.pending = Ticket{}
		s.LastError = retryPrompt(ev.(DispatchFailed).Err)
		s.Step = EmailCollection()
		return s, Effect{}, true
	},

	{StepSuccess, EventRestart}: func(s Session, _ Event) (Session, Effect, bool) {
		return NewSession(), Effect{}, true
	},
}

// Transition applies ev to s. It never mutates s; the returned Outcome
// holds the next session, or s itself when the event is refused or stale.
func Transition(s Session, ev Event) Outcome {
	if t, ok := ticketOf(ev); ok && !s.owns(t) {
		return Outcome{Session: s, Refused: true, Stale: true}
	}
	h, ok := transitions[transitionKey{s.Step.Kind, ev.Kind()}]
	if !ok {
		return Outcome{Session: s, Refused: true}
	}
	next, effect, ok := h(s, ev)
	if !ok {
		return Outcome{Session: s, Refused: true}
	}
	return Outcome{Session: next, Effect: effect}
}

// Accepts reports whether the step has any transition for the event kind.
func Accepts(step StepKind, kind EventKind) bool {
	_, ok := transitions[transitionKey{step, kind}]
	return ok
}

func ticketOf(ev Event) (Ticket, bool) {
	switch e := ev.(type) {
	case AnalysisDone:
		return e.Ticket, true
	case DispatchSucceeded:
		return e.Ticket, true
	case DispatchFailed:
		return e.Ticket, true
	}
	return Ticket{}, false
}

func retryPrompt(err error) string {
	var df *dispatch.ErrDispatchFailed
	var ue *url.Error
	if errors.As(err, &df) && df.Unreachable() && errors.As(err, &ue) {
		return PromptUnreachable
	}
	return PromptRetry
}
