package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at end moved to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("enter did not run the selected action")
	}
}

func TestButtonView(t *testing.T) {
	if v := NewButton("Analyze", "enter", true).View(); !strings.Contains(v, "Analyze (enter)") {
		t.Errorf("active view = %q", v)
	}
	if v := NewButton("Reset", "", false).View(); !strings.Contains(v, "Reset") {
		t.Errorf("inactive view = %q", v)
	}
}

func TestTextInputValue(t *testing.T) {
	ti := NewTextInput("skills", 0)
	ti.SetValue("Go, SQL")
	if ti.Value() != "Go, SQL" {
		t.Fatalf("value = %q", ti.Value())
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("value after reset = %q", ti.Value())
	}
}

func TestSplitWidths(t *testing.T) {
	l, r := SplitWidths(81)
	if l+r != 81 || l < r {
		t.Errorf("SplitWidths(81) = %d, %d", l, r)
	}
}
