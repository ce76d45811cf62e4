package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/capilize/capilize/internal/ui/theme"
)

// ChoiceList is a single-select radio list. Moving the cursor does not
// change the choice; Enter or Space picks the option under the cursor.
type ChoiceList struct {
	Labels []string
	Cursor int
	Chosen int // -1 when nothing is chosen
}

// ChoiceMadeMsg reports the index picked in a ChoiceList.
type ChoiceMadeMsg struct {
	Index int
}

// NewChoiceList creates a list with chosen preselected (-1 for none). The
// cursor starts on the chosen option.
func NewChoiceList(labels []string, chosen int) ChoiceList {
	if chosen < -1 || chosen >= len(labels) {
		chosen = -1
	}
	cursor := chosen
	if cursor < 0 {
		cursor = 0
	}
	return ChoiceList{Labels: labels, Cursor: cursor, Chosen: chosen}
}

// Update handles keyboard navigation and selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
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
	case "enter", "space", " ":
		if len(c.Labels) == 0 {
			return c, nil
		}
		c.Chosen = c.Cursor
		idx := c.Chosen
		return c, func() tea.Msg { return ChoiceMadeMsg{Index: idx} }
	}
	return c, nil
}

// View renders the list with radio markers.
func (c ChoiceList) View() string {
	var s string
	for i, label := range c.Labels {
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		line := prefix + mark + "  " + label

		switch {
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case i == c.Chosen:
			s += theme.Checked.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
