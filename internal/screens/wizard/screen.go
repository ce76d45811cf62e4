// Package wizard is the terminal front end of the diagnosis funnel. One
// screen renders every step; the step itself lives in funnel.Controller.
package wizard

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/funnel"
	"github.com/capilize/capilize/internal/quiz"
	"github.com/capilize/capilize/internal/router"
	"github.com/capilize/capilize/internal/screen"
	"github.com/capilize/capilize/internal/ui/components"
)

const busyTickInterval = 100 * time.Millisecond

// Capturer turns what the visitor typed on the photo step into a photo.
type Capturer func(path string) (capture.Photo, error)

// WizardScreen drives a funnel.Controller from key presses.
type WizardScreen struct {
	ctx        context.Context
	controller *funnel.Controller
	capture    Capturer
	delay      time.Duration

	step       funnel.Step
	homeMenu   components.Menu
	choices    components.ChoiceList
	checklist  components.Checklist
	photoInput components.TextInput
	emailInput components.TextInput
	doneMenu   components.Menu

	// notice is a transient hint, e.g. why Continue did nothing.
	notice    string
	busyTicks int
	ticking   bool
	tick      func() tea.Cmd
}

var _ screen.Screen = (*WizardScreen)(nil)

// Option customizes a WizardScreen.
type Option func(*WizardScreen)

// WithCapturer overrides how photo paths are read.
func WithCapturer(c Capturer) Option {
	return func(s *WizardScreen) {
		if c != nil {
			s.capture = c
		}
	}
}

// WithAnalysisDelay sets the duration the analyzing progress bar spans.
func WithAnalysisDelay(d time.Duration) Option {
	return func(s *WizardScreen) {
		if d > 0 {
			s.delay = d
		}
	}
}

// New creates the funnel screen. Tasks started by the controller run
// under ctx.
func New(ctx context.Context, c *funnel.Controller, opts ...Option) *WizardScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &WizardScreen{
		ctx:        ctx,
		controller: c,
		capture:    capture.FromFile,
		delay:      funnel.DefaultAnalysisDelay,
		tick:       busyTick,
		photoInput: components.NewTextInput("Path to a photo of your hair", "~/Pictures/hair.jpg (leave empty to skip)", 512),
		emailInput: components.NewTextInput("Where should we send your full diagnosis?", "you@example.com", 254),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.enterStep()
	return s
}

// Session exposes the controller's current session.
func (s *WizardScreen) Session() funnel.Session {
	return s.controller.Session()
}

func (s *WizardScreen) Init() tea.Cmd {
	return nil
}

// HandlesBack reports that Esc is handled as funnel back navigation.
func (s *WizardScreen) HandlesBack() bool {
	return true
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return s, s.apply(msg.ev)

	case busyTickMsg:
		sess := s.controller.Session()
		if !sess.IsAnalyzing && !sess.IsSending {
			s.ticking = false
			return s, nil
		}
		s.busyTicks++
		return s, s.tick()

	case components.ChoiceMadeMsg:
		return s, s.selectAnswer(msg.Index)

	case components.ItemToggledMsg:
		if msg.Index < 0 || msg.Index >= len(quiz.DifficultyOptions) {
			return s, nil
		}
		d := quiz.Difficulty(quiz.DifficultyOptions[msg.Index].Value)
		return s, s.apply(funnel.ToggleDifficulty{Difficulty: d})

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	return s, nil
}

func (s *WizardScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		return s.apply(funnel.Back{})
	}

	var cmd tea.Cmd
	switch s.step.Kind {
	case funnel.StepHome:
		s.homeMenu, cmd = s.homeMenu.Update(msg)

	case funnel.StepCoreQuestion:
		switch key {
		case "enter":
			// Pick the option under the cursor and move on.
			return tea.Batch(s.selectAnswer(s.choices.Cursor), s.advance())
		case "tab", "right":
			return s.advance()
		case "shift+tab", "left":
			return s.apply(funnel.Back{})
		}
		s.choices, cmd = s.choices.Update(msg)

	case funnel.StepDifficulties:
		switch key {
		case "enter", "tab", "right":
			return s.advance()
		case "shift+tab", "left":
			return s.apply(funnel.Back{})
		}
		s.checklist, cmd = s.checklist.Update(msg)

	case funnel.StepPhotoCapture:
		if key == "enter" {
			return s.submitPhoto()
		}
		s.photoInput, cmd = s.photoInput.Update(msg)

	case funnel.StepResult:
		switch key {
		case "enter":
			return s.advance()
		case "d", "?":
			details := newDetailsScreen(s.controller.Session())
			return func() tea.Msg { return router.PushScreenMsg{Screen: details} }
		}

	case funnel.StepEmailCollection:
		if key == "enter" {
			return s.submitEmail()
		}
		s.emailInput, cmd = s.emailInput.Update(msg)

	case funnel.StepSuccess:
		s.doneMenu, cmd = s.doneMenu.Update(msg)
	}
	return cmd
}

func (s *WizardScreen) selectAnswer(idx int) tea.Cmd {
	i, ok := s.controller.Session().CurrentQuestionIndex()
	if !ok {
		return nil
	}
	opts := quiz.CoreQuestions[i].Options
	if idx < 0 || idx >= len(opts) {
		return nil
	}
	s.choices.Chosen = idx
	return s.apply(funnel.SelectAnswer{Value: opts[idx].Value})
}

func (s *WizardScreen) advance() tea.Cmd {
	cmd, refused := s.applyOutcome(funnel.Advance{})
	if refused {
		switch s.step.Kind {
		case funnel.StepCoreQuestion:
			s.notice = "Choose an option to continue."
		case funnel.StepDifficulties:
			s.notice = "Select at least one difficulty to continue."
		}
	}
	return cmd
}

func (s *WizardScreen) submitPhoto() tea.Cmd {
	path := s.photoInput.Value()
	var photo capture.Photo
	if path != "" {
		p, err := s.capture(path)
		if err != nil {
			s.photoInput.SetError(err.Error())
			return nil
		}
		photo = p
	}
	return s.apply(funnel.PhotoCaptured{Photo: photo})
}

func (s *WizardScreen) submitEmail() tea.Cmd {
	email := s.emailInput.Value()
	s.apply(funnel.SetEmail{Email: email})
	cmd, refused := s.applyOutcome(funnel.Submit{})
	if refused {
		s.emailInput.SetError("Please enter your email.")
	}
	return cmd
}

// apply posts ev to the controller and returns the follow-up commands.
func (s *WizardScreen) apply(ev funnel.Event) tea.Cmd {
	cmd, _ := s.applyOutcome(ev)
	return cmd
}

func (s *WizardScreen) applyOutcome(ev funnel.Event) (tea.Cmd, bool) {
	task, out := s.controller.Handle(ev)
	if out.Refused {
		return nil, true
	}
	s.notice = ""

	var cmds []tea.Cmd
	if out.Session.Step != s.step {
		s.enterStep()
	}
	if task != nil {
		cmds = append(cmds, s.run(task))
		if !s.ticking {
			s.ticking = true
			s.busyTicks = 0
			cmds = append(cmds, s.tick())
		}
	}
	return tea.Batch(cmds...), false
}

// run wraps a controller task as a Bubble Tea command.
func (s *WizardScreen) run(task funnel.Task) tea.Cmd {
	ctx := s.ctx
	return func() tea.Msg {
		ev := task(ctx)
		if ev == nil {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

func busyTick() tea.Cmd {
	return tea.Tick(busyTickInterval, func(t time.Time) tea.Msg {
		return busyTickMsg(t)
	})
}

// enterStep rebuilds the widgets for the controller's current step.
func (s *WizardScreen) enterStep() {
	sess := s.controller.Session()
	s.step = sess.Step

	switch s.step.Kind {
	case funnel.StepHome:
		s.homeMenu = components.NewMenu([]components.MenuItem{
			{Label: "Start my diagnosis", Action: func() tea.Cmd { return event(funnel.Advance{}) }},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		})
		s.photoInput.SetValue("")
		s.emailInput.SetValue("")

	case funnel.StepCoreQuestion:
		q := quiz.CoreQuestions[s.step.Question]
		labels := make([]string, len(q.Options))
		chosen := -1
		for i, o := range q.Options {
			labels[i] = o.Label
			if o.Value == sess.Answers.Value(s.step.Question) {
				chosen = i
			}
		}
		s.choices = components.NewChoiceList(labels, chosen)

	case funnel.StepDifficulties:
		labels := make([]string, len(quiz.DifficultyOptions))
		for i, o := range quiz.DifficultyOptions {
			labels[i] = o.Label
		}
		cursor := s.checklist.Cursor
		s.checklist = components.NewChecklist(labels)
		s.checklist.Cursor = min(cursor, len(labels)-1)

	case funnel.StepEmailCollection:
		s.emailInput.SetValue(sess.Email)

	case funnel.StepSuccess:
		s.doneMenu = components.NewMenu([]components.MenuItem{
			{Label: "Start a new diagnosis", Action: func() tea.Cmd { return event(funnel.Restart{}) }},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		})
	}
}

func event(ev funnel.Event) tea.Cmd {
	return func() tea.Msg { return eventMsg{ev: ev} }
}
