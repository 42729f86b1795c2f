// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/welcome"
	"github.com/abhisek/quizzy/internal/store"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

const buttonWidth = 22

// Options wire the menu entries. A nil factory disables its entry.
type Options struct {
	NewQuiz    func() screen.Screen
	NewHistory func() screen.Screen
	Events     store.EventRepo

	// Notice is shown above the menu, e.g. when no LLM is configured.
	Notice string
}

type lastQuizMsg struct {
	Result *store.QuizResultEvent
}

// HomeScreen shows the banner, the last quiz and the menu.
type HomeScreen struct {
	menu   components.Menu
	notice string
	events store.EventRepo
	last   *store.QuizResultEvent
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

func New(opts Options) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Disabled: opts.NewQuiz == nil},
		{Label: "HISTORY", Disabled: opts.NewHistory == nil},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	if opts.NewQuiz != nil {
		items[0].Action = push(opts.NewQuiz)
	}
	if opts.NewHistory != nil {
		items[1].Action = push(opts.NewHistory)
	}

	return &HomeScreen{
		menu:   components.NewMenu(items),
		notice: opts.Notice,
		events: opts.Events,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLast()
}

func (h *HomeScreen) loadLast() tea.Cmd {
	if h.events == nil {
		return nil
	}
	events := h.events
	return func() tea.Msg {
		results, err := events.QueryQuizResults(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(results) == 0 {
			return lastQuizMsg{}
		}
		return lastQuizMsg{Result: &results[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lastQuizMsg:
		h.last = msg.Result
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	sections := []string{center.Render(welcome.RenderBanner(width))}
	if height >= 22 {
		sections = append(sections, center.Foreground(theme.TextDim).Render(welcome.Tagline))
	}
	if h.last != nil {
		sections = append(sections, center.Render(renderLast(h.last)))
	}
	if h.notice != "" {
		sections = append(sections, center.Foreground(theme.Accent).Render("⚠ "+h.notice))
	}
	sections = append(sections, center.Render(h.menu.View(buttonWidth)))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderLast(r *store.QuizResultEvent) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Padding(0, 1).
		Render(fmt.Sprintf("Last quiz: %s (%s)  %d/%d  %d%%",
			r.Config.Topic, r.Config.Difficulty,
			r.Results.Score, r.Results.TotalQuestions, r.Percentage))
}

// Resume refreshes the last result when the home screen is shown again.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadLast()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
