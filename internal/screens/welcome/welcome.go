// Package welcome is the splash screen shown on startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 600 * time.Millisecond
	totalDur     = 2 * time.Second
)

// cards are the answer letters that light up one after another.
var cards = []string{"A", "B", "C", "D"}

type tickMsg time.Time

// WelcomeScreen animates the banner, then replaces itself with the screen
// built by next. Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	lit := int(w.elapsed / (bannerAt / time.Duration(len(cards))))

	var row []string
	for i, c := range cards {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		if i < lit {
			style = style.BorderForeground(theme.Primary).Foreground(theme.Highlight).Bold(true)
		} else {
			style = style.BorderForeground(theme.Border).Foreground(theme.TextDim)
		}
		row = append(row, style.Render(c))
	}

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Center, row...)}
	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("press any key"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.TrimRight(content, "\n"))
}
