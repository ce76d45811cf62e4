package wizard

import (
	"time"

	"github.com/capilize/capilize/internal/funnel"
)

// eventMsg carries a funnel event, usually a completion produced by a task,
// back into the Bubble Tea loop.
type eventMsg struct {
	ev funnel.Event
}

// busyTickMsg animates the spinner while analysis or sending is in flight.
type busyTickMsg time.Time
