package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/funnel"
	"github.com/capilize/capilize/internal/quiz"
	"github.com/capilize/capilize/internal/router"
	"github.com/capilize/capilize/internal/screen"
	"github.com/capilize/capilize/internal/ui/components"
	"github.com/capilize/capilize/internal/ui/layout"
	"github.com/capilize/capilize/internal/ui/theme"
)

// DetailsScreen explains which answers selected the diagnosis. It is
// pushed over the result step and popped with Esc or Enter.
type DetailsScreen struct {
	answers   quiz.Answers
	diagnosis diagnosis.Diagnosis
}

var _ screen.Screen = (*DetailsScreen)(nil)

func newDetailsScreen(sess funnel.Session) *DetailsScreen {
	return &DetailsScreen{answers: sess.Answers, diagnosis: sess.Diagnosis()}
}

func (d *DetailsScreen) Init() tea.Cmd {
	return nil
}

func (d *DetailsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "q":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return d, nil
}

func (d *DetailsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var reasons strings.Builder
	for _, r := range matchReasons(d.diagnosis.Kind, d.answers) {
		reasons.WriteString(theme.Selected.Render("• "))
		reasons.WriteString(theme.Body.Render(r))
		reasons.WriteString("\n")
	}

	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(d.diagnosis.Headline),
		"",
		theme.Hint.Render("Why this diagnosis:"),
		strings.TrimRight(reasons.String(), "\n"),
		"",
		theme.Hint.Width(cw).Render("Scalp and chemical treatment answers are shared with our specialists but do not change the diagnosis."),
	}
	return components.Centered(components.Card(strings.Join(parts, "\n"), cw), width, height)
}

func (d *DetailsScreen) Title() string {
	return "Why this diagnosis"
}

func (d *DetailsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back to result"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// matchReasons lists the answers that made kind's rule fire.
func matchReasons(kind diagnosis.Kind, a quiz.Answers) []string {
	strand := "Your strands: " + quiz.Label(quiz.CoreQuestions[2].Options, string(a.StrandCondition))
	difficulty := func(d quiz.Difficulty) string {
		return "You reported " + strings.ToLower(quiz.DifficultyLabel(d))
	}

	var out []string
	switch kind {
	case diagnosis.KindDehydration:
		if a.StrandCondition == quiz.StrandDryDamaged {
			out = append(out, strand)
		}
		if a.Has(quiz.DifficultyDryness) {
			out = append(out, difficulty(quiz.DifficultyDryness))
		}
	case diagnosis.KindBreakage:
		if a.StrandCondition == quiz.StrandBrittle {
			out = append(out, strand)
		}
		if a.Has(quiz.DifficultySplitEnds) {
			out = append(out, difficulty(quiz.DifficultySplitEnds))
		}
	case diagnosis.KindFrizz:
		out = append(out, difficulty(quiz.DifficultyFrizz))
	}
	if len(out) == 0 {
		out = append(out, "No signs of dryness or breakage were reported, so a maintenance routine fits best.")
	}
	return out
}
