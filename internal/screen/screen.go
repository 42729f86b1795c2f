package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/ui/layout"
)

// Screen is one page of the TUI, managed by the router stack.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen show a status string on the right of the
// header.
type StatusProvider interface {
	Status() string
}

// Resumer is implemented by screens that refresh when they become the top
// of the stack again.
type Resumer interface {
	Resume() tea.Cmd
}

// BackBlocker is implemented by screens that must not be left with Esc
// while BlocksBack reports true.
type BackBlocker interface {
	BlocksBack() bool
}
