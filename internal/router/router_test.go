package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/screen"
)

// stubScreen records lifecycle calls.
type stubScreen struct {
	title   string
	inits   int
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "view:" + s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestNavigation(t *testing.T) {
	explorer := &stubScreen{title: "Skill Explorer"}
	paths := &stubScreen{title: "Career Paths"}

	r := New(explorer)
	steps := []struct {
		name      string
		msg       tea.Msg
		wantTitle string
		wantDepth int
	}{
		{"push paths", PushScreenMsg{Screen: paths}, "Career Paths", 2},
		{"pop", PopScreenMsg{}, "Skill Explorer", 1},
		{"pop at root is noop", PopScreenMsg{}, "Skill Explorer", 1},
	}
	for _, st := range steps {
		r.Update(st.msg)
		if r.Depth() != st.wantDepth {
			t.Errorf("%s: depth = %d, want %d", st.name, r.Depth(), st.wantDepth)
		}
		if got := r.Active().Title(); got != st.wantTitle {
			t.Errorf("%s: active = %q, want %q", st.name, got, st.wantTitle)
		}
	}

	if paths.inits != 1 {
		t.Errorf("Init calls: paths=%d, want 1", paths.inits)
	}
	if explorer.inits != 0 {
		t.Error("the initial screen is initialised by the app, not the router")
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	bottom := &stubScreen{title: "bottom"}
	top := &stubScreen{title: "top"}
	r := New(bottom)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if top.updates != 1 || bottom.updates != 0 {
		t.Errorf("updates: top=%d bottom=%d", top.updates, bottom.updates)
	}
	if got := r.View(80, 24); got != "view:top" {
		t.Errorf("View = %q", got)
	}
}

func TestNavigationMessagesNotForwarded(t *testing.T) {
	s := &stubScreen{title: "only"}
	r := New(s)
	r.Update(PopScreenMsg{})
	if s.updates != 0 {
		t.Error("navigation messages must be handled by the router")
	}
}
