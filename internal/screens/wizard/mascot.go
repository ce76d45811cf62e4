package wizard

import (
	"charm.land/lipgloss/v2"

	"github.com/capilize/capilize/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // Landing
	MascotWorking                      // Analyzing or sending
	MascotHappy                        // Diagnosis sent
)

const mascotIdle = ` ╭─────╮
 │ ◠ ◠ │
 │  ‿  │
 ╰┬┬┬┬┬╯
  ╵╵╵╵╵`

const mascotWorking = ` ╭─────╮
 │ ◔ ◔ │
 │  ○  │
 ╰┬┬┬┬┬╯
  ╵╵╵╵╵`

const mascotHappy = ` ╭─────╮
 │ ★ ★ │
 │  ◡  │
 ╰┬┬┬┬┬╯
  ╵╵╵╵╵`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotWorking:
		art = mascotWorking
		fg = theme.Secondary
	case MascotHappy:
		art = mascotHappy
		fg = theme.Success
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
