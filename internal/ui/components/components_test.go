package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("down at bottom moved to %d", m.Selected)
	}
	m, _ = m.Update(key("k"))
	if m.Selected != 1 {
		t.Errorf("after k Selected = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(key("enter"))
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestChoiceListMarksAnswers(t *testing.T) {
	c := ChoiceList{
		Options:   []string{"Nile", "Amazon", "Yangtze", "Danube"},
		Selected:  "Amazon",
		Correct:   "Nile",
		Submitted: true,
	}
	view := c.View(40)
	if !strings.Contains(view, "1) Nile  ✓") {
		t.Errorf("correct option not marked:\n%s", view)
	}
	if !strings.Contains(view, "2) Amazon  ✗") {
		t.Errorf("wrong pick not marked:\n%s", view)
	}
	if got := c.IndexOf("Yangtze"); got != 2 {
		t.Errorf("IndexOf = %d, want 2", got)
	}
	if got := c.IndexOf("Thames"); got != -1 {
		t.Errorf("IndexOf missing = %d, want -1", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		view := NewProgressBar("", pct, false, 10).View()
		if strings.Count(view, "█")+strings.Count(view, "░") != 10 {
			t.Errorf("percent %v: bar has wrong width: %q", pct, view)
		}
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{{10, 20}, {50, 44}, {200, 64}}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
