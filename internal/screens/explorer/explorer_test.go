package explorer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/shell"
)

type fakeAdvisor struct {
	adv   *advice.Advice
	err   error
	calls [][]string
}

func (f *fakeAdvisor) RequestCareerAdvice(_ context.Context, skills []string) (*advice.Advice, error) {
	f.calls = append(f.calls, skills)
	return f.adv, f.err
}

type zeroJitter struct{}

func (zeroJitter) Float64() float64 { return 0 }

func newTestScreen(a Advisor) *Screen {
	return New(context.Background(), a, Options{Builder: diagram.NewBuilder(zeroJitter{})})
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func ctrl(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl} }

// findAdvice runs cmd and any batched commands, returning the first adviceMsg.
func findAdvice(t *testing.T, cmd tea.Cmd) adviceMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case adviceMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(adviceMsg); ok {
				return m
			}
		}
	}
	t.Fatal("no advice message produced")
	return adviceMsg{}
}

func sampleAdvice() *advice.Advice {
	return &advice.Advice{
		CareerRoles:   []string{"Data Analyst", "Backend Developer"},
		SkillsToLearn: []string{"Tableau"},
		CareerPaths: []advice.CareerPath{
			{Title: "Analytics track", Steps: []string{"Learn Python", "Build dashboards"}},
			{Title: "Platform track", Steps: []string{"Learn Go"}},
		},
		IndustryInsights: "Demand is steady.",
	}
}

func TestView_PlaceholderBeforeSubmit(t *testing.T) {
	s := newTestScreen(&fakeAdvisor{})
	v := s.View(120, 30)
	if !strings.Contains(v, placeholderText) {
		t.Errorf("idle view missing placeholder:\n%s", v)
	}
	if strings.Contains(v, "Reset") {
		t.Error("reset control must be hidden before a submission")
	}
}

func TestSubmit_RendersRecommendations(t *testing.T) {
	fa := &fakeAdvisor{adv: sampleAdvice()}
	s := newTestScreen(fa)
	s.input.SetValue("SQL, Python")

	_, cmd := s.Update(enter())
	if !s.machine.Loading() {
		t.Fatalf("phase = %v, want loading", s.machine.Phase())
	}
	if v := s.View(120, 30); !strings.Contains(v, loadingText) {
		t.Errorf("loading view missing spinner text:\n%s", v)
	}

	msg := findAdvice(t, cmd)
	s.Update(msg)

	if s.machine.Phase() != shell.PhaseReady {
		t.Fatalf("phase = %v, want ready", s.machine.Phase())
	}
	if len(fa.calls) != 1 || fa.calls[0][0] != "SQL" || fa.calls[0][1] != "Python" {
		t.Errorf("advisor calls = %v", fa.calls)
	}

	v := s.View(120, 40)
	for _, want := range []string{
		"Recommended Roles", "Data Analyst",
		"Skills to Develop", "Tableau",
		"Career Paths", "Analytics track", "1. Learn Python", "2. Build dashboards",
		"Industry Insights", "Demand is steady.",
		"Reset",
	} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmit_EmptyInputIsNoop(t *testing.T) {
	fa := &fakeAdvisor{adv: sampleAdvice()}
	s := newTestScreen(fa)
	s.input.SetValue(" , ")

	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("empty input must not start a request")
	}
	if s.machine.Phase() != shell.PhaseIdle {
		t.Errorf("phase = %v, want idle", s.machine.Phase())
	}
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	fa := &fakeAdvisor{adv: sampleAdvice()}
	s := newTestScreen(fa)
	s.input.SetValue("Go")
	s.Update(enter())

	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("second enter while loading must be ignored")
	}
	if s.machine.Generation() != 1 {
		t.Errorf("generation = %d, want 1", s.machine.Generation())
	}
}

func TestSubmit_ErrorShownInline(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: no key", gateway.ErrConfiguration), "Error: API configuration error"},
		{fmt.Errorf("%w: timeout", gateway.ErrRequest), "Error: Failed to process request"},
	}
	for _, tt := range tests {
		s := newTestScreen(&fakeAdvisor{err: tt.err})
		s.input.SetValue("Go")
		_, cmd := s.Update(enter())
		s.Update(findAdvice(t, cmd))

		if v := s.View(120, 30); !strings.Contains(v, tt.want) {
			t.Errorf("view missing %q:\n%s", tt.want, v)
		}
		if d := s.machine.Diagram(s.builder); d.Layout != diagram.LayoutTable {
			t.Errorf("error layout = %q, want table", d.Layout)
		}
	}
}

func TestReset_DropsLateResponse(t *testing.T) {
	s := newTestScreen(&fakeAdvisor{adv: sampleAdvice()})
	s.input.SetValue("Go")
	_, cmd := s.Update(enter())
	msg := findAdvice(t, cmd)

	s.Update(ctrl('r'))
	if s.machine.Phase() != shell.PhaseIdle || s.input.Value() != "" {
		t.Fatalf("reset left phase=%v input=%q", s.machine.Phase(), s.input.Value())
	}

	s.Update(msg)
	if s.machine.Advice() != nil {
		t.Error("late response applied after reset")
	}
	if v := s.View(120, 30); !strings.Contains(v, placeholderText) {
		t.Error("placeholder not restored after reset")
	}
}

func TestReset_NoopWhenHidden(t *testing.T) {
	s := newTestScreen(&fakeAdvisor{})
	s.input.SetValue("Go")
	s.Update(ctrl('r'))
	if s.input.Value() != "Go" {
		t.Error("reset must be unavailable before a visualization is shown")
	}
}

func TestSpinnerStopsWhenReady(t *testing.T) {
	s := newTestScreen(&fakeAdvisor{adv: sampleAdvice()})
	s.input.SetValue("Go")
	_, cmd := s.Update(enter())

	if _, next := s.Update(spinnerTickMsg{}); next == nil {
		t.Error("spinner must keep ticking while loading")
	}
	s.Update(findAdvice(t, cmd))
	if _, next := s.Update(spinnerTickMsg{}); next != nil {
		t.Error("spinner must stop once ready")
	}
}

func TestCareerPathsPushesScreen(t *testing.T) {
	s := newTestScreen(&fakeAdvisor{adv: sampleAdvice()})

	if _, cmd := s.Update(ctrl('p')); cmd != nil {
		t.Error("paths screen must be unavailable before advice arrives")
	}

	s.input.SetValue("Go")
	_, cmd := s.Update(enter())
	s.Update(findAdvice(t, cmd))

	_, cmd = s.Update(ctrl('p'))
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.PushScreenMsg", cmd())
	}
	if push.Screen.Title() != "Career Paths" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestTypingUpdatesInput(t *testing.T) {
	s := newTestScreen(&fakeAdvisor{})
	for _, r := range "Go" {
		s.Update(keyPress(r))
	}
	if s.input.Value() != "Go" {
		t.Errorf("input = %q, want Go", s.input.Value())
	}
}

func TestRenderDiagram_Table(t *testing.T) {
	d := diagram.NewBuilder(zeroJitter{}).Build([]string{"Figma"}, nil, false)
	out := renderDiagram(d, []string{"Figma"})
	for _, want := range []string{"Figma", "Design", "UI Designer", "Domain fit"} {
		if !strings.Contains(out, want) {
			t.Errorf("table diagram missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDiagram_AI(t *testing.T) {
	adv := &advice.Advice{CareerRoles: []string{"SRE"}, SkillsToLearn: []string{"Kubernetes"}}
	d := diagram.NewBuilder(zeroJitter{}).Build([]string{"Go"}, adv, false)
	out := renderDiagram(d, []string{"Go"})
	for _, want := range []string{"Go ──▶ ", "SRE ┄┄▶ ", "Learn: Kubernetes"} {
		if !strings.Contains(stripANSI(out), want) {
			t.Errorf("ai diagram missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Domain fit") {
		t.Error("domain fit belongs to the table layout only")
	}
}

func TestRenderDiagram_Empty(t *testing.T) {
	d := diagram.NewBuilder(zeroJitter{}).Build(nil, nil, false)
	if out := renderDiagram(d, nil); !strings.Contains(out, "No skills") {
		t.Errorf("empty diagram = %q", out)
	}
}

func TestRenderAdvice_ParseErrorShowsRaw(t *testing.T) {
	out := renderAdvice(&advice.Advice{ParseError: true, RawResponse: "plain words"})
	if !strings.Contains(out, "plain words") {
		t.Errorf("raw response not shown: %q", out)
	}
}

func TestRenderAdvice_EchoShownOnce(t *testing.T) {
	out := renderAdvice(advice.Normalize("I cannot format this as JSON."))
	if n := strings.Count(out, "I cannot format this as JSON."); n != 1 {
		t.Errorf("raw text rendered %d times: %q", n, out)
	}
	if strings.Contains(out, "Response") {
		t.Errorf("duplicate response section: %q", out)
	}
}

func TestPathsScreen_Navigation(t *testing.T) {
	p := NewPathsScreen(sampleAdvice().CareerPaths)
	if sel, _ := p.Selected(); sel.Title != "Analytics track" {
		t.Fatalf("initial selection = %q", sel.Title)
	}
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	sel, _ := p.Selected()
	if sel.Title != "Platform track" {
		t.Errorf("selection after down = %q", sel.Title)
	}
	if v := p.View(120, 30); !strings.Contains(v, "1. Learn Go") {
		t.Errorf("steps of selected path not shown:\n%s", v)
	}
}

// stripANSI removes SGR sequences so arrow layouts can be matched.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
