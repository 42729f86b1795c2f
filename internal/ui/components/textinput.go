package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with quiz styling and an inline
// validation message.
type TextInput struct {
	Model textinput.Model
	err   string
}

// NewTextInput creates a focused input limited to charLimit runes.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.err = ""
	}
	return t, cmd
}

// View renders the input and, below it, any validation message.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.err)
	}
	return view
}

func (t TextInput) Value() string { return t.Model.Value() }

func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Blur() { t.Model.Blur() }

// SetError shows msg under the input until the next key press.
func (t *TextInput) SetError(msg string) { t.err = msg }

// Err returns the current validation message.
func (t TextInput) Err() string { return t.err }
