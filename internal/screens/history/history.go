// Package history lists finished quizzes.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/scoring"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/store"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

// pageSize is how many quizzes are loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Results []store.QuizResultEvent
	Err     error
}

// HistoryScreen displays past quizzes, newest first.
type HistoryScreen struct {
	events   store.EventRepo
	results  []store.QuizResultEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		results, err := events.QueryQuizResults(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nCould not load history: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.results) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo quizzes yet. Take one from the home screen!")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		tier := scoring.TierFor(r.Percentage)
		line := fmt.Sprintf("%s%s  %-24s %-6s  %d/%d  %3d%%  %s",
			prefix,
			r.Timestamp.Local().Format("Jan 02 15:04"),
			truncate(r.Config.Topic, 24),
			r.Config.Difficulty,
			r.Results.Score, r.Results.TotalQuestions,
			r.Percentage,
			tier,
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAnswers(r, cw)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderAnswers(r store.QuizResultEvent, cw int) string {
	var lines []string
	for n, d := range r.Results.Details {
		mark := theme.Correct.Render("✓")
		if !d.IsCorrect() {
			mark = theme.Incorrect.Render("✗")
		}
		given := "no answer"
		if d.ProvidedAnswer != nil {
			given = *d.ProvidedAnswer
		}
		lines = append(lines,
			fmt.Sprintf("%s %d. %s", mark, n+1, truncate(d.Question, cw-8)),
			theme.Muted.Render(fmt.Sprintf("     %s (answer: %s)", given, d.CorrectAnswer)),
		)
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
