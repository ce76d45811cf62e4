package funnel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/dispatch"
	"github.com/capilize/capilize/internal/quiz"
)

// recordingDispatcher records payloads and fails while failing is set.
type recordingDispatcher struct {
	mu       sync.Mutex
	payloads []dispatch.Payload
	failing  bool
}

func (d *recordingDispatcher) Dispatch(_ context.Context, p dispatch.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payloads = append(d.payloads, p)
	if d.failing {
		return &dispatch.ErrDispatchFailed{StatusCode: 500, Message: "provider down"}
	}
	return nil
}

func instant() Analyzer {
	return AnalyzerFunc(func(context.Context, capture.Photo) error { return nil })
}

// walkToEmail drives a controller through scenario A's answers up to the
// email step.
func walkToEmail(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	for _, ev := range []Event{
		Advance{},
		SelectAnswer{Value: "normal"}, Advance{},
		SelectAnswer{Value: "rare"}, Advance{},
		SelectAnswer{Value: "dry-damaged"}, Advance{},
		ToggleDifficulty{Difficulty: quiz.DifficultyDryness}, Advance{},
		PhotoCaptured{},
	} {
		out := c.Drive(ctx, ev)
		require.False(t, out.Refused, "event %s", ev.Kind())
	}
	require.Equal(t, Result(), c.Session().Step)
	c.Drive(ctx, Advance{})
	require.Equal(t, EmailCollection(), c.Session().Step)
}

func TestScenarioA_NoPhotoDispatchSucceeds(t *testing.T) {
	d := &recordingDispatcher{}
	c := NewController(instant(), d)
	walkToEmail(t, c)

	diag := c.Session().Diagnosis()
	assert.Equal(t, diagnosis.KindDehydration, diag.Kind)
	assert.Contains(t, diag.Headline, "dryness")

	c.Drive(context.Background(), SetEmail{Email: "user@example.com"})
	out := c.Drive(context.Background(), Submit{})

	assert.Equal(t, Success(), out.Session.Step)
	assert.False(t, out.Session.IsSending)
	require.Len(t, d.payloads, 1)

	p := d.payloads[0]
	assert.Equal(t, "user@example.com", p.Email)
	assert.Equal(t, dispatch.WireAnswers{
		OilScalp:          "normal",
		ChemicalFrequency: "rare",
		StrandCondition:   "dry-damaged",
		Difficulties:      []string{"dryness"},
	}, p.Answers)
	assert.Nil(t, p.Photo)
}

func TestScenarioB_DispatchFailureAllowsRetry(t *testing.T) {
	d := &recordingDispatcher{failing: true}
	c := NewController(instant(), d)
	walkToEmail(t, c)
	c.Drive(context.Background(), SetEmail{Email: "user@example.com"})
	before := c.Session()

	out := c.Drive(context.Background(), Submit{})
	assert.Equal(t, EmailCollection(), out.Session.Step)
	assert.False(t, out.Session.IsSending)
	assert.Equal(t, PromptRetry, out.Session.LastError)
	assert.True(t, before.Answers.Equal(out.Session.Answers))
	assert.Equal(t, "user@example.com", out.Session.Email)

	d.failing = false
	out = c.Drive(context.Background(), Submit{})
	assert.Equal(t, Success(), out.Session.Step)
	assert.Empty(t, out.Session.LastError)
	assert.Len(t, d.payloads, 2)
	assert.Equal(t, d.payloads[0], d.payloads[1])
}

func TestScenarioC_RestartClearsSession(t *testing.T) {
	c := NewController(instant(), &recordingDispatcher{})
	walkToEmail(t, c)
	c.Drive(context.Background(), SetEmail{Email: "user@example.com"})
	c.Drive(context.Background(), Submit{})
	old := c.Session()
	require.Equal(t, Success(), old.Step)

	out := c.Drive(context.Background(), Restart{})
	s := out.Session
	assert.Equal(t, Home(), s.Step)
	assert.NotEqual(t, old.ID, s.ID)
	assert.True(t, s.Answers.Equal(quiz.Answers{}))
	for i := 0; i < quiz.NumCoreQuestions; i++ {
		assert.False(t, s.Answers.IsAnswered(i))
	}
	assert.Zero(t, s.Answers.DifficultyCount())
	assert.Empty(t, s.Email)
	assert.Empty(t, s.Photo)
	assert.False(t, s.IsAnalyzing)
	assert.False(t, s.IsSending)
	_, pending := s.Pending()
	assert.False(t, pending)
}

func TestControllerCompletionFromOldSessionIsIgnored(t *testing.T) {
	c := NewController(instant(), &recordingDispatcher{})
	walkToEmail(t, c)
	c.Drive(context.Background(), SetEmail{Email: "user@example.com"})

	task, out := c.Handle(Submit{})
	require.NotNil(t, task)
	ticket := out.Effect.Ticket

	// The completion arrives twice; only the first applies.
	_, first := c.Handle(DispatchSucceeded{Ticket: ticket})
	assert.False(t, first.Refused)
	c.Handle(Restart{})

	_, second := c.Handle(DispatchSucceeded{Ticket: ticket})
	assert.True(t, second.Stale)
	assert.Equal(t, Home(), c.Session().Step)
}

func TestControllerRefusalKeepsState(t *testing.T) {
	c := NewController(instant(), nil)
	c.Handle(Advance{})
	before := c.Session()

	task, out := c.Handle(Advance{})
	assert.Nil(t, task)
	assert.True(t, out.Refused)
	assert.Equal(t, before, c.Session())
}

func TestControllerWithoutDispatcherFails(t *testing.T) {
	c := NewController(instant(), nil)
	walkToEmail(t, c)
	c.Drive(context.Background(), SetEmail{Email: "x@y.z"})

	out := c.Drive(context.Background(), Submit{})
	assert.Equal(t, EmailCollection(), out.Session.Step)
	assert.NotEmpty(t, out.Session.LastError)
}

func TestAnalysisTaskCarriesPhoto(t *testing.T) {
	var got capture.Photo
	analyzer := AnalyzerFunc(func(_ context.Context, p capture.Photo) error {
		got = p
		return errors.New("model offline")
	})
	c := NewController(analyzer, nil, WithSession(answeredThrough(t)))
	c.Handle(ToggleDifficulty{Difficulty: quiz.DifficultyFrizz})
	c.Handle(Advance{})

	task, _ := c.Handle(PhotoCaptured{Photo: "data:image/png;base64,AAAA"})
	require.NotNil(t, task)

	// An analyzer error still completes the step.
	ev := task(context.Background())
	require.IsType(t, AnalysisDone{}, ev)
	assert.Equal(t, capture.Photo("data:image/png;base64,AAAA"), got)

	_, out := c.Handle(ev)
	assert.Equal(t, Result(), out.Session.Step)
}

func TestAnalysisTaskCancelledPostsNothing(t *testing.T) {
	a := NewDelayAnalyzer(time.Hour)
	c := NewController(a, nil, WithSession(answeredThrough(t)))
	c.Handle(ToggleDifficulty{Difficulty: quiz.DifficultyFrizz})
	c.Handle(Advance{})
	task, _ := c.Handle(PhotoCaptured{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, task(ctx))
	assert.Equal(t, Analyzing(), c.Session().Step)
}

func TestDelayAnalyzerWaitsConfiguredDelay(t *testing.T) {
	var waited time.Duration
	a := NewDelayAnalyzer(0)
	a.after = func(d time.Duration) <-chan time.Time {
		waited = d
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}

	require.NoError(t, a.Analyze(context.Background(), ""))
	assert.Equal(t, DefaultAnalysisDelay, waited)
	assert.Equal(t, 3*time.Second, a.Delay())
}
