package dispatch

import (
	"context"
	"fmt"

	"github.com/capilize/capilize/internal/quiz"
)

// Dispatcher delivers a finished diagnosis to the sales inbox. It reports
// only success or failure; delivery metadata stays with the implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, p Payload) error
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, p Payload) error

func (f DispatcherFunc) Dispatch(ctx context.Context, p Payload) error { return f(ctx, p) }

// WireAnswers is the JSON shape of the questionnaire answers.
type WireAnswers struct {
	OilScalp          string   `json:"oilScalp"`
	ChemicalFrequency string   `json:"chemicalFrequency"`
	StrandCondition   string   `json:"strandCondition"`
	Difficulties      []string `json:"difficulties"`
}

// Payload is the body sent to the dispatcher.
type Payload struct {
	Email   string      `json:"email"`
	Answers WireAnswers `json:"answers"`
	Photo   *string     `json:"photo"` // data URI, or null when no photo was captured
}

// NewPayload builds the dispatch payload for a visitor. An empty photo is
// encoded as null.
func NewPayload(email string, a quiz.Answers, photo string) Payload {
	ds := a.Difficulties()
	wire := make([]string, 0, len(ds))
	for _, d := range ds {
		wire = append(wire, string(d))
	}

	p := Payload{
		Email: email,
		Answers: WireAnswers{
			OilScalp:          string(a.OilScalp),
			ChemicalFrequency: string(a.ChemicalFrequency),
			StrandCondition:   string(a.StrandCondition),
			Difficulties:      wire,
		},
	}
	if photo != "" {
		p.Photo = &photo
	}
	return p
}

// HasPhoto reports whether the payload carries a photo.
func (p Payload) HasPhoto() bool {
	return p.Photo != nil && *p.Photo != ""
}

// QuizAnswers converts the wire answers back into the typed model.
func (p Payload) QuizAnswers() (quiz.Answers, error) {
	var a quiz.Answers
	var err error
	if a.OilScalp, err = quiz.ParseOilScalp(p.Answers.OilScalp); err != nil {
		return quiz.Answers{}, err
	}
	if a.ChemicalFrequency, err = quiz.ParseChemicalFrequency(p.Answers.ChemicalFrequency); err != nil {
		return quiz.Answers{}, err
	}
	if a.StrandCondition, err = quiz.ParseStrandCondition(p.Answers.StrandCondition); err != nil {
		return quiz.Answers{}, err
	}
	ds := make([]quiz.Difficulty, 0, len(p.Answers.Difficulties))
	for _, raw := range p.Answers.Difficulties {
		d, err := quiz.ParseDifficulty(raw)
		if err != nil {
			return quiz.Answers{}, fmt.Errorf("difficulties: %w", err)
		}
		ds = append(ds, d)
	}
	return a.WithDifficulties(ds...), nil
}
