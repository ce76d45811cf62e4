package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/capilize/capilize/internal/screen"
)

type pingMsg struct{}

// recordingScreen counts Init calls and the messages it receives.
type recordingScreen struct {
	name  string
	inits int
	pings int
}

func (s *recordingScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *recordingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(pingMsg); ok {
		s.pings++
	}
	return s, nil
}

func (s *recordingScreen) View(int, int) string { return s.name }
func (s *recordingScreen) Title() string        { return s.name }

func TestNavigationMessages(t *testing.T) {
	wizard := &recordingScreen{name: "wizard"}
	details := &recordingScreen{name: "details"}
	help := &recordingScreen{name: "help"}

	tests := []struct {
		msg        tea.Msg
		wantActive string
		wantDepth  int
	}{
		{PushScreenMsg{Screen: details}, "details", 2},
		{ReplaceScreenMsg{Screen: help}, "help", 2},
		{PopScreenMsg{}, "wizard", 1},
		{PopScreenMsg{}, "wizard", 1}, // the last screen is never popped
	}

	r := New(wizard)
	for i, tt := range tests {
		r.Update(tt.msg)
		if got := r.Active().Title(); got != tt.wantActive {
			t.Errorf("step %d: active = %q, want %q", i, got, tt.wantActive)
		}
		if got := r.Depth(); got != tt.wantDepth {
			t.Errorf("step %d: depth = %d, want %d", i, got, tt.wantDepth)
		}
	}

	if details.inits != 1 || help.inits != 1 {
		t.Errorf("pushed and replacing screens init once, got %d and %d", details.inits, help.inits)
	}
	if wizard.inits != 0 {
		t.Errorf("uncovering a screen must not re-init it, got %d", wizard.inits)
	}
}

func TestOnlyActiveScreenReceivesMessages(t *testing.T) {
	wizard := &recordingScreen{name: "wizard"}
	details := &recordingScreen{name: "details"}
	r := New(wizard)

	r.Update(pingMsg{})
	r.Push(details)
	r.Update(pingMsg{})
	r.Update(pingMsg{})
	r.Pop()
	r.Update(pingMsg{})

	if wizard.pings != 2 {
		t.Errorf("wizard pings = %d, want 2", wizard.pings)
	}
	if details.pings != 2 {
		t.Errorf("details pings = %d, want 2", details.pings)
	}
}

func TestViewRendersActiveScreen(t *testing.T) {
	r := New(&recordingScreen{name: "wizard"})
	r.Push(&recordingScreen{name: "details"})
	if got := r.View(80, 24); got != "details" {
		t.Errorf("View = %q, want details", got)
	}
	r.Pop()
	if got := r.View(80, 24); got != "wizard" {
		t.Errorf("View = %q, want wizard", got)
	}
}

func TestInitRunsInitialScreen(t *testing.T) {
	s := &recordingScreen{name: "welcome"}
	New(s).Init()
	if s.inits != 1 {
		t.Errorf("inits = %d, want 1", s.inits)
	}
}

func TestReplaceOnEmptyRouter(t *testing.T) {
	var r Router
	if r.Active() != nil || r.View(80, 24) != "" {
		t.Fatal("empty router has no active screen")
	}
	r.Replace(&recordingScreen{name: "wizard"})
	if r.Depth() != 1 || r.Active().Title() != "wizard" {
		t.Errorf("replace on empty router should push, depth %d", r.Depth())
	}
}
