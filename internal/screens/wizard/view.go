package wizard

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/capilize/capilize/internal/funnel"
	"github.com/capilize/capilize/internal/quiz"
	"github.com/capilize/capilize/internal/ui/components"
	"github.com/capilize/capilize/internal/ui/layout"
	"github.com/capilize/capilize/internal/ui/theme"
)

// quizSteps counts the steps shown in the header progress: the core
// questions, the difficulties checklist and the photo.
const quizSteps = quiz.NumCoreQuestions + 2

var stepTitles = map[funnel.StepKind]string{
	funnel.StepHome:            "Welcome",
	funnel.StepDifficulties:    "Difficulties",
	funnel.StepPhotoCapture:    "Photo",
	funnel.StepAnalyzing:       "Analyzing",
	funnel.StepResult:          "Your diagnosis",
	funnel.StepEmailCollection: "Full diagnosis",
	funnel.StepSending:         "Sending",
	funnel.StepSuccess:         "All set",
}

var questionTitles = [quiz.NumCoreQuestions]string{"Scalp", "Chemicals", "Strands"}

func (s *WizardScreen) Title() string {
	if s.step.Kind == funnel.StepCoreQuestion {
		return questionTitles[s.step.Question]
	}
	return stepTitles[s.step.Kind]
}

// Status returns the quiz progress shown in the header.
func (s *WizardScreen) Status() string {
	if n, ok := quizPosition(s.step); ok {
		return fmt.Sprintf("Step %d of %d", n, quizSteps)
	}
	return ""
}

func quizPosition(step funnel.Step) (int, bool) {
	switch step.Kind {
	case funnel.StepCoreQuestion:
		return step.Question + 1, true
	case funnel.StepDifficulties:
		return quiz.NumCoreQuestions + 1, true
	case funnel.StepPhotoCapture:
		return quizSteps, true
	}
	return 0, false
}

// KeyHints returns the footer hints for the current step.
func (s *WizardScreen) KeyHints() []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	back := layout.KeyHint{Key: "Esc", Description: "Back"}

	switch s.step.Kind {
	case funnel.StepHome, funnel.StepSuccess:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quit}
	case funnel.StepCoreQuestion:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Choose"}, {Key: "Tab", Description: "Next"}, back, quit}
	case funnel.StepDifficulties:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Space", Description: "Toggle"}, {Key: "Enter", Description: "Continue"}, back, quit}
	case funnel.StepPhotoCapture:
		return []layout.KeyHint{{Key: "Enter", Description: "Analyze"}, back, quit}
	case funnel.StepResult:
		return []layout.KeyHint{{Key: "Enter", Description: "Get it by email"}, {Key: "D", Description: "Why?"}, quit}
	case funnel.StepEmailCollection:
		return []layout.KeyHint{{Key: "Enter", Description: "Send"}, back, quit}
	}
	return []layout.KeyHint{quit}
}

func (s *WizardScreen) View(width, height int) string {
	sess := s.controller.Session()
	cw := components.ContentWidth(width)

	var body string
	switch s.step.Kind {
	case funnel.StepHome:
		body = s.viewHome(cw)
	case funnel.StepCoreQuestion:
		body = s.viewQuestion(sess, cw)
	case funnel.StepDifficulties:
		body = s.viewDifficulties(sess, cw)
	case funnel.StepPhotoCapture:
		body = s.viewPhoto(cw)
	case funnel.StepAnalyzing:
		body = s.viewBusy("Analyzing your hair...", cw, true)
	case funnel.StepResult:
		body = s.viewResult(sess, cw)
	case funnel.StepEmailCollection:
		body = s.viewEmail(sess, cw)
	case funnel.StepSending:
		body = s.viewBusy("Sending your diagnosis...", cw, false)
	case funnel.StepSuccess:
		body = s.viewSuccess(sess, cw)
	}

	return components.Centered(body, width, height)
}

func (s *WizardScreen) viewHome(cw int) string {
	lines := []string{
		RenderMascot(MascotIdle),
		"",
		theme.Title.Width(cw).Render("Free hair diagnosis"),
		theme.Subtitle.Width(cw).Render("Answer a few quick questions and find out what your hair needs."),
		"",
		s.homeMenu.View(),
	}
	return strings.Join(lines, "\n")
}

func (s *WizardScreen) progress(cw int) string {
	n, _ := quizPosition(s.step)
	return components.NewProgressBar("", float64(n)/float64(quizSteps), false, cw).View()
}

func (s *WizardScreen) viewQuestion(sess funnel.Session, cw int) string {
	q := quiz.CoreQuestions[s.step.Question]
	next := components.NewButton("Next", sess.Answers.IsAnswered(s.step.Question), nil)

	parts := []string{
		s.progress(cw),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Prompt),
		"",
		s.choices.View(),
		next.View(),
	}
	return s.withNotice(strings.Join(parts, "\n"))
}

func (s *WizardScreen) viewDifficulties(sess funnel.Session, cw int) string {
	next := components.NewButton("Continue", sess.Answers.DifficultyCount() > 0, nil)
	checked := func(i int) bool {
		return sess.Answers.Has(quiz.Difficulty(quiz.DifficultyOptions[i].Value))
	}

	parts := []string{
		s.progress(cw),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(quiz.DifficultyPrompt),
		theme.Hint.Render("Select all that apply."),
		"",
		s.checklist.View(checked),
		next.View(),
	}
	return s.withNotice(strings.Join(parts, "\n"))
}

func (s *WizardScreen) viewPhoto(cw int) string {
	parts := []string{
		s.progress(cw),
		"",
		s.photoInput.View(),
		"",
		theme.Hint.Width(cw).Render("A clear photo of your strands in natural light works best. Leave the path empty to continue without one."),
	}
	return strings.Join(parts, "\n")
}

func (s *WizardScreen) viewBusy(label string, cw int, analyzing bool) string {
	parts := []string{
		RenderMascot(MascotWorking),
		"",
		theme.Selected.Render(components.SpinnerFrame(s.busyTicks) + " " + label),
	}
	if analyzing {
		elapsed := time.Duration(s.busyTicks) * busyTickInterval
		pct := float64(elapsed) / float64(s.delay)
		parts = append(parts, "", components.NewProgressBar("", pct, true, cw).View())
	}
	return strings.Join(parts, "\n")
}

func (s *WizardScreen) viewResult(sess funnel.Session, cw int) string {
	d := sess.Diagnosis()
	card := strings.Join([]string{
		theme.Title.Width(cw - 6).Render(d.Headline),
		"",
		theme.Body.Width(cw - 6).Render(d.Recommendation),
	}, "\n")

	parts := []string{components.HighlightCard(card, cw), ""}
	if sess.Photo != "" {
		parts = append(parts, theme.Hint.Render(fmt.Sprintf("Photo attached (%s).", sess.Photo.MIMEType())), "")
	}
	parts = append(parts,
		s.answerSummary(sess.Answers, cw),
		"",
		components.NewButton("Get the full diagnosis by email", true, nil).View(),
	)
	return strings.Join(parts, "\n")
}

func (s *WizardScreen) answerSummary(a quiz.Answers, cw int) string {
	var b strings.Builder
	for i, q := range quiz.CoreQuestions {
		b.WriteString(theme.Hint.Render(questionTitles[i]+": "))
		b.WriteString(theme.Body.Render(quiz.Label(q.Options, a.Value(i))))
		b.WriteString("\n")
	}
	labels := make([]string, 0, a.DifficultyCount())
	for _, d := range a.Difficulties() {
		labels = append(labels, quiz.DifficultyLabel(d))
	}
	b.WriteString(theme.Hint.Render("Difficulties: "))
	b.WriteString(theme.Body.Render(strings.Join(labels, ", ")))
	return components.Card(b.String(), cw)
}

func (s *WizardScreen) viewEmail(sess funnel.Session, cw int) string {
	parts := []string{
		s.emailInput.View(),
		"",
		theme.Hint.Width(cw).Render("We will send your answers and diagnosis to our specialists, who will reply with a personalized treatment plan."),
	}
	if sess.LastError != "" {
		parts = append(parts, "", theme.ErrorText.Width(cw).Render(sess.LastError))
	}
	return strings.Join(parts, "\n")
}

func (s *WizardScreen) viewSuccess(sess funnel.Session, cw int) string {
	lines := []string{
		RenderMascot(MascotHappy),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Diagnosis sent!"),
		theme.Subtitle.Width(cw).Render(fmt.Sprintf("Our specialists will contact you at %s soon.", sess.Email)),
		"",
		s.doneMenu.View(),
	}
	return strings.Join(lines, "\n")
}

func (s *WizardScreen) withNotice(body string) string {
	if s.notice == "" {
		return body
	}
	return body + "\n\n" + theme.Hint.Render(s.notice)
}
