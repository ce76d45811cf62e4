package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/dispatch"
	"github.com/capilize/capilize/internal/funnel"
	"github.com/capilize/capilize/internal/screens/welcome"
	"github.com/capilize/capilize/internal/screens/wizard"
)

func testController() *funnel.Controller {
	analyzer := funnel.AnalyzerFunc(func(context.Context, capture.Photo) error { return nil })
	d := dispatch.DispatcherFunc(func(context.Context, dispatch.Payload) error { return nil })
	return funnel.NewController(analyzer, d)
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(context.Background(), Options{Controller: testController()})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("expected welcome screen, got %T", m.router.Active())
	}

	m, cmd := update(m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	m, _ = update(m, cmd())
	if _, ok := m.router.Active().(*wizard.WizardScreen); !ok {
		t.Fatalf("expected wizard screen, got %T", m.router.Active())
	}
}

func TestEscIsFunnelBack(t *testing.T) {
	c := testController()
	m := newAppModel(context.Background(), Options{Controller: c, SkipWelcome: true})

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = update(m, cmd())
	if c.Session().Step != funnel.CoreQuestion(0) {
		t.Fatalf("expected first question, got %s", c.Session().Step)
	}

	update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if c.Session().Step != funnel.Home() {
		t.Errorf("esc should navigate back, got %s", c.Session().Step)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(context.Background(), Options{Controller: testController(), SkipWelcome: true})
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestViewRendersFrame(t *testing.T) {
	m := newAppModel(context.Background(), Options{Controller: testController(), SkipWelcome: true})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
	content := m.render()
	for _, want := range []string{"Capilize", "Welcome", "Start my diagnosis", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(context.Background(), Options{Controller: testController()})
	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestDetailsScreenPushedAndPoppedWithEsc(t *testing.T) {
	sess := funnel.NewSessionWithID("details")
	sess.Step = funnel.Result()
	c := funnel.NewController(nil, nil, funnel.WithSession(sess))
	m := newAppModel(context.Background(), Options{Controller: c, SkipWelcome: true})

	m, cmd := update(m, tea.KeyPressMsg{Code: 'd', Text: "d"})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	m, _ = update(m, cmd())
	if _, ok := m.router.Active().(*wizard.DetailsScreen); !ok {
		t.Fatalf("expected details screen, got %T", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", m.router.Depth())
	}

	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	m, _ = update(m, cmd())
	if _, ok := m.router.Active().(*wizard.WizardScreen); !ok {
		t.Fatalf("expected wizard after pop, got %T", m.router.Active())
	}
	if c.Session().Step != funnel.Result() {
		t.Errorf("esc on details must not move the funnel, got %s", c.Session().Step)
	}
}
