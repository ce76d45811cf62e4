package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capilize/capilize/internal/dispatch"
	"github.com/capilize/capilize/internal/quiz"
)

// apply runs events in order and fails the test on the first refusal.
func apply(t *testing.T, s Session, events ...Event) Session {
	t.Helper()
	for _, ev := range events {
		out := Transition(s, ev)
		require.False(t, out.Refused, "event %s refused at %s", ev.Kind(), s.Step)
		s = out.Session
	}
	return s
}

func answeredThrough(t *testing.T) Session {
	t.Helper()
	return apply(t, NewSessionWithID("s1"),
		Advance{},
		SelectAnswer{Value: string(quiz.OilNormal)}, Advance{},
		SelectAnswer{Value: string(quiz.ChemicalRare)}, Advance{},
		SelectAnswer{Value: string(quiz.StrandDryDamaged)}, Advance{},
	)
}

func TestHomeAdvancesToFirstQuestion(t *testing.T) {
	s := apply(t, NewSessionWithID("s1"), Advance{})
	assert.Equal(t, CoreQuestion(0), s.Step)
	i, ok := s.CurrentQuestionIndex()
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestAdvanceRefusedWhileQuestionUnanswered(t *testing.T) {
	for i := 0; i < quiz.NumCoreQuestions; i++ {
		s := NewSessionWithID("s1")
		s.Step = CoreQuestion(i)

		out := Transition(s, Advance{})
		assert.True(t, out.Refused, "question %d", i)
		assert.Equal(t, s, out.Session, "question %d", i)
		assert.False(t, s.CanAdvance())
	}
}

func TestSelectAnswerRejectsUnknownValue(t *testing.T) {
	s := apply(t, NewSessionWithID("s1"), Advance{})
	out := Transition(s, SelectAnswer{Value: "greasy"})
	assert.True(t, out.Refused)
	assert.False(t, out.Session.Answers.IsAnswered(0))
}

func TestBackFromFirstQuestionReturnsHome(t *testing.T) {
	s := apply(t, NewSessionWithID("s1"), Advance{}, Back{})
	assert.Equal(t, Home(), s.Step)
}

func TestBackNeverRequiresValidation(t *testing.T) {
	s := answeredThrough(t)
	require.Equal(t, Difficulties(), s.Step)

	s = apply(t, s, Back{})
	assert.Equal(t, CoreQuestion(2), s.Step)

	// Clear the answer to question 1 and go back through it.
	s.Answers.ChemicalFrequency = ""
	s = apply(t, s, Back{}, Back{})
	assert.Equal(t, CoreQuestion(0), s.Step)
}

func TestDifficultiesGuard(t *testing.T) {
	s := answeredThrough(t)

	out := Transition(s, Advance{})
	assert.True(t, out.Refused)

	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{})
	assert.Equal(t, PhotoCapture(), s.Step)
}

func TestToggleDifficultyTwiceRestoresEmptySet(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s,
		ToggleDifficulty{Difficulty: quiz.DifficultyFrizz},
		ToggleDifficulty{Difficulty: quiz.DifficultyFrizz},
	)
	assert.Zero(t, s.Answers.DifficultyCount())
	assert.True(t, Transition(s, Advance{}).Refused)
}

func TestToggleRejectsUnknownDifficulty(t *testing.T) {
	s := answeredThrough(t)
	assert.True(t, Transition(s, ToggleDifficulty{Difficulty: "baldness"}).Refused)
}

func TestPhotoCaptureBackKeepsState(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{}, Back{})
	assert.Equal(t, Difficulties(), s.Step)
	assert.True(t, s.Answers.Has(quiz.DifficultyDryness))
}

func TestPhotoCapturedStartsAnalysis(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{})

	out := Transition(s, PhotoCaptured{Photo: "data:image/png;base64,AAAA"})
	require.False(t, out.Refused)
	assert.Equal(t, Analyzing(), out.Session.Step)
	assert.True(t, out.Session.IsAnalyzing)
	assert.Equal(t, EffectAnalyze, out.Effect.Kind)
	assert.Equal(t, "s1", out.Effect.Ticket.Session)

	pending, ok := out.Session.Pending()
	assert.True(t, ok)
	assert.Equal(t, out.Effect.Ticket, pending)
}

func TestAnalyzingRefusesVisitorInput(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{}, PhotoCaptured{})

	for _, ev := range []Event{Advance{}, Back{}, Restart{}, Submit{}} {
		assert.True(t, Transition(s, ev).Refused, ev.Kind().String())
	}
}

func TestStaleAnalysisCompletionIsDiscarded(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{})
	out := Transition(s, PhotoCaptured{})
	ticket := out.Effect.Ticket

	other := Transition(out.Session, AnalysisDone{Ticket: Ticket{Session: "someone-else", Seq: ticket.Seq}})
	assert.True(t, other.Stale)
	assert.Equal(t, Analyzing(), other.Session.Step)

	done := Transition(out.Session, AnalysisDone{Ticket: ticket})
	require.False(t, done.Refused)
	assert.Equal(t, Result(), done.Session.Step)
	assert.False(t, done.Session.IsAnalyzing)

	// A second delivery of the same completion is no longer owned.
	again := Transition(done.Session, AnalysisDone{Ticket: ticket})
	assert.True(t, again.Stale)
	assert.Equal(t, done.Session, again.Session)
}

func TestEmailCollectionGuards(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s,
		ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{},
		PhotoCaptured{},
	)
	s = apply(t, s, AnalysisDone{Ticket: s.pending}, Advance{})
	require.Equal(t, EmailCollection(), s.Step)

	assert.True(t, Transition(s, Submit{}).Refused, "empty email")

	s = apply(t, s, SetEmail{Email: "user@example.com"}, Back{})
	assert.Equal(t, Result(), s.Step)
	assert.Equal(t, "user@example.com", s.Email)
}

func TestSubmitBuildsPayload(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{}, PhotoCaptured{})
	s = apply(t, s, AnalysisDone{Ticket: s.pending}, Advance{}, SetEmail{Email: "user@example.com"})

	out := Transition(s, Submit{})
	require.False(t, out.Refused)
	assert.Equal(t, Sending(), out.Session.Step)
	assert.True(t, out.Session.IsSending)
	assert.Equal(t, EffectDispatch, out.Effect.Kind)

	want := dispatch.NewPayload("user@example.com", s.Answers, "")
	assert.Equal(t, want, out.Effect.Payload)
	assert.Nil(t, out.Effect.Payload.Photo)
}

func TestDispatchFailurePrompts(t *testing.T) {
	s := answeredThrough(t)
	s = apply(t, s, ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{}, PhotoCaptured{})
	s = apply(t, s, AnalysisDone{Ticket: s.pending}, Advance{}, SetEmail{Email: "a@b.c"}, Submit{})

	rejected := apply(t, s, DispatchFailed{Ticket: s.pending, Err: &dispatch.ErrDispatchFailed{StatusCode: 500, Message: "boom"}})
	assert.Equal(t, PromptRetry, rejected.LastError)

	// Leaving the email step clears the prompt.
	back := apply(t, rejected, Back{})
	assert.Empty(t, back.LastError)
}

func TestAcceptsMatchesTable(t *testing.T) {
	assert.True(t, Accepts(StepHome, EventAdvance))
	assert.False(t, Accepts(StepHome, EventBack))
	assert.False(t, Accepts(StepResult, EventBack))
	assert.True(t, Accepts(StepSuccess, EventRestart))
	assert.False(t, Accepts(StepSending, EventBack))
}

func TestCoreQuestionPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { CoreQuestion(quiz.NumCoreQuestions) })
	assert.Panics(t, func() { CoreQuestion(-1) })
}
