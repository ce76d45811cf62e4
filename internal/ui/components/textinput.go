package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/capilize/capilize/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Capilize styling.
type TextInput struct {
	Model    textinput.Model
	Label    string
	MaxWidth int
	errMsg   string
}

// NewTextInput creates a new focused text input.
func NewTextInput(label, placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Label:    label,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Editing clears any error shown below the input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.errMsg = ""
	}
	return t, cmd
}

// View renders the label, the input and the error line if set.
func (t TextInput) View() string {
	var b strings.Builder
	if t.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t.Label))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Card.Render(t.Model.View()))
	if t.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(t.errMsg))
	}
	return b.String()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetBlink turns cursor blinking on or off.
func (t *TextInput) SetBlink(on bool) {
	st := t.Model.Styles()
	st.Cursor.Blink = on
	t.Model.SetStyles(st)
}

// SetValue replaces the input text.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetError shows msg below the input until the text changes.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Err returns the error currently shown.
func (t TextInput) Err() string {
	return t.errMsg
}
