package funnel

import (
	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/quiz"
)

// EventKind identifies an input to the state machine.
type EventKind int

const (
	EventAdvance EventKind = iota
	EventBack
	EventSelectAnswer
	EventToggleDifficulty
	EventPhotoCaptured
	EventAnalysisDone
	EventSetEmail
	EventSubmit
	EventDispatchSucceeded
	EventDispatchFailed
	EventRestart
)

var eventNames = [...]string{
	EventAdvance:           "advance",
	EventBack:              "back",
	EventSelectAnswer:      "select-answer",
	EventToggleDifficulty:  "toggle-difficulty",
	EventPhotoCaptured:     "photo-captured",
	EventAnalysisDone:      "analysis-done",
	EventSetEmail:          "set-email",
	EventSubmit:            "submit",
	EventDispatchSucceeded: "dispatch-succeeded",
	EventDispatchFailed:    "dispatch-failed",
	EventRestart:           "restart",
}

func (k EventKind) String() string {
	if int(k) >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is anything that can drive a transition.
type Event interface {
	Kind() EventKind
}

// Advance moves forward from the current step.
type Advance struct{}

// Back navigates to the previous step.
type Back struct{}

// SelectAnswer answers the active core question.
type SelectAnswer struct{ Value string }

// ToggleDifficulty adds or removes a difficulty.
type ToggleDifficulty struct{ Difficulty quiz.Difficulty }

// PhotoCaptured is posted by Media Capture. An empty Photo means the
// visitor continued without one.
type PhotoCaptured struct{ Photo capture.Photo }

// AnalysisDone is posted when the analysis started under Ticket finishes.
type AnalysisDone struct{ Ticket Ticket }

// SetEmail replaces the email being typed.
type SetEmail struct{ Email string }

// Submit asks to dispatch the diagnosis.
type Submit struct{}

// DispatchSucceeded is posted when the dispatch started under Ticket succeeds.
type DispatchSucceeded struct{ Ticket Ticket }

// DispatchFailed is posted when the dispatch started under Ticket fails.
type DispatchFailed struct {
	Ticket Ticket
	Err    error
}

// Restart begins a brand-new session from the confirmation screen.
type Restart struct{}

func (Advance) Kind() EventKind           { return EventAdvance }
func (Back) Kind() EventKind              { return EventBack }
func (SelectAnswer) Kind() EventKind      { return EventSelectAnswer }
func (ToggleDifficulty) Kind() EventKind  { return EventToggleDifficulty }
func (PhotoCaptured) Kind() EventKind     { return EventPhotoCaptured }
func (AnalysisDone) Kind() EventKind      { return EventAnalysisDone }
func (SetEmail) Kind() EventKind          { return EventSetEmail }
func (Submit) Kind() EventKind            { return EventSubmit }
func (DispatchSucceeded) Kind() EventKind { return EventDispatchSucceeded }
func (DispatchFailed) Kind() EventKind    { return EventDispatchFailed }
func (Restart) Kind() EventKind           { return EventRestart }
