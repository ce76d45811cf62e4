package funnel

import (
	"fmt"

	"github.com/capilize/capilize/internal/quiz"
)

// StepKind identifies a screen of the funnel.
type StepKind int

const (
	StepHome            StepKind = iota // Landing screen
	StepCoreQuestion                    // One of the single-choice questions
	StepDifficulties                    // Multi-select difficulties checklist
	StepPhotoCapture                    // Waiting for Media Capture
	StepAnalyzing                       // Simulated analysis in flight
	StepResult                          // Diagnosis shown
	StepEmailCollection                 // Asking for the visitor's email
	StepSending                         // Dispatch in flight
	StepSuccess                         // Confirmation
)

var stepNames = map[StepKind]string{
	StepHome:            "home",
	StepCoreQuestion:    "core-question",
	StepDifficulties:    "difficulties-selection",
	StepPhotoCapture:    "photo-capture",
	StepAnalyzing:       "analyzing",
	StepResult:          "result",
	StepEmailCollection: "email-collection",
	StepSending:         "sending",
	StepSuccess:         "success",
}

func (k StepKind) String() string {
	if name, ok := stepNames[k]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(k))
}

// Step is the tagged state value of the funnel. Question carries the index
// of the active question and is only meaningful for StepCoreQuestion.
type Step struct {
	Kind     StepKind
	Question int
}

func (s Step) String() string {
	if s.Kind == StepCoreQuestion {
		return fmt.Sprintf("%s(%d)", s.Kind, s.Question)
	}
	return s.Kind.String()
}

func Home() Step            { return Step{Kind: StepHome} }
func Difficulties() Step    { return Step{Kind: StepDifficulties} }
func PhotoCapture() Step    { return Step{Kind: StepPhotoCapture} }
func Analyzing() Step       { return Step{Kind: StepAnalyzing} }
func Result() Step          { return Step{Kind: StepResult} }
func EmailCollection() Step { return Step{Kind: StepEmailCollection} }
func Sending() Step         { return Step{Kind: StepSending} }
func Success() Step         { return Step{Kind: StepSuccess} }

// CoreQuestion returns the step showing question i. It panics on an index
// outside the questionnaire, which is always a programming error.
func CoreQuestion(i int) Step {
	if i < 0 || i >= quiz.NumCoreQuestions {
		panic(fmt.Sprintf("funnel: core question %d out of range", i))
	}
	return Step{Kind: StepCoreQuestion, Question: i}
}
