package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/capilize/capilize/internal/ui/theme"
)

// Checklist is a multi-select list. It does not own the checked state;
// callers pass it to View so the list always mirrors the source of truth.
type Checklist struct {
	Labels []string
	Cursor int
}

// ItemToggledMsg reports the index toggled in a Checklist.
type ItemToggledMsg struct {
	Index int
}

// NewChecklist creates a checklist.
func NewChecklist(labels []string) Checklist {
	return Checklist{Labels: labels}
}

// Update moves the cursor and emits ItemToggledMsg on Space or x.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Labels)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		if len(c.Labels) == 0 {
			return c, nil
		}
		idx := c.Cursor
		return c, func() tea.Msg { return ItemToggledMsg{Index: idx} }
	}
	return c, nil
}

// View renders the list. checked reports whether item i is selected.
func (c Checklist) View(checked func(i int) bool) string {
	var s string
	for i, label := range c.Labels {
		box := "[ ]"
		on := checked != nil && checked(i)
		if on {
			box = "[x]"
		}
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		line := prefix + box + " " + label

		switch {
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case on:
			s += theme.Checked.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
