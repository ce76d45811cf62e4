package components

import (
	"charm.land/lipgloss/v2"

	"github.com/capilize/capilize/internal/ui/theme"
)

// ContentWidth returns the inner width used for funnel cards so every
// step lines up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// HighlightCard is a Card with the primary color border, used for results.
func HighlightCard(content string, cw int) string {
	return theme.Card.
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Render(content)
}

// Centered places content in the middle of a width x height box.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
