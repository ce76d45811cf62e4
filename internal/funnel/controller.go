package funnel

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/dispatch"
)

// Task is asynchronous work started by a transition. It returns the event
// to post back to the controller once done, or nil when there is nothing
// to post.
type Task func(ctx context.Context) Event

// Controller owns one session and turns effects into Tasks. It has a
// single owner: Handle must not be called concurrently. Tasks may run on
// any goroutine since they only return events.
type Controller struct {
	session    Session
	analyzer   Analyzer
	dispatcher dispatch.Dispatcher
	logger     zerolog.Logger
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transitions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSession starts the controller from an existing session.
func WithSession(s Session) Option {
	return func(c *Controller) { c.session = s }
}

// NewController creates a controller on a fresh session. A nil analyzer
// selects a DelayAnalyzer with the default delay.
func NewController(analyzer Analyzer, dispatcher dispatch.Dispatcher, opts ...Option) *Controller {
	if analyzer == nil {
		analyzer = NewDelayAnalyzer(0)
	}
	c := &Controller{
		session:    NewSession(),
		analyzer:   analyzer,
		dispatcher: dispatcher,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	return c.session
}

// Diagnosis derives the diagnosis for the session's current answers.
func (c *Controller) Diagnosis() diagnosis.Diagnosis {
	return c.session.Diagnosis()
}

// Handle applies ev. When the transition starts async work the returned
// Task is non-nil and its result must be fed back through Handle.
func (c *Controller) Handle(ev Event) (Task, Outcome) {
	from := c.session.Step
	out := Transition(c.session, ev)

	switch {
	case out.Stale:
		c.logger.Debug().
			Str("session", c.session.ID).
			Str("step", from.String()).
			Str("event", ev.Kind().String()).
			Msg("discarded stale completion")
		return nil, out
	case out.Refused:
		c.logger.Debug().
			Str("session", c.session.ID).
			Str("step", from.String()).
			Str("event", ev.Kind().String()).
			Msg("transition refused")
		return nil, out
	}

	c.session = out.Session
	c.logger.Info().
		Str("session", c.session.ID).
		Str("from", from.String()).
		Str("to", c.session.Step.String()).
		Str("event", ev.Kind().String()).
		Msg("transition")

	return c.task(out.Effect), out
}

// Drive applies ev and runs any resulting tasks inline until the session
// settles. It is the headless counterpart of an event loop.
func (c *Controller) Drive(ctx context.Context, ev Event) Outcome {
	task, out := c.Handle(ev)
	for task != nil {
		next := task(ctx)
		if next == nil {
			break
		}
		task, out = c.Handle(next)
	}
	return out
}

func (c *Controller) task(e Effect) Task {
	switch e.Kind {
	case EffectAnalyze:
		analyzer, logger := c.analyzer, c.logger
		return func(ctx context.Context) Event {
			if err := analyzer.Analyze(ctx, e.Photo); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn().Err(err).Str("ticket", e.Ticket.String()).Msg("analysis failed")
			}
			return AnalysisDone{Ticket: e.Ticket}
		}
	case EffectDispatch:
		dispatcher, logger := c.dispatcher, c.logger
		return func(ctx context.Context) Event {
			if dispatcher == nil {
				return DispatchFailed{Ticket: e.Ticket, Err: errNoDispatcher}
			}
			if err := dispatcher.Dispatch(ctx, e.Payload); err != nil {
				logger.Warn().Err(err).Str("ticket", e.Ticket.String()).Msg("dispatch failed")
				return DispatchFailed{Ticket: e.Ticket, Err: err}
			}
			return DispatchSucceeded{Ticket: e.Ticket}
		}
	}
	return nil
}
