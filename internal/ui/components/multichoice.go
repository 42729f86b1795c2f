package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

// ChoiceList renders four numbered answer options. Before submission the
// selected option is highlighted; after it the correct answer is shown in
// green and a wrong pick in red.
type ChoiceList struct {
	Options   []string
	Selected  string
	Correct   string
	Submitted bool
}

// View renders one option per line, each at most width columns.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		marker := "  "
		if opt == c.Selected {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", marker, i+1, opt)

		style := theme.Unselected
		switch {
		case c.Submitted && opt == c.Correct:
			style = theme.Correct
			line += "  ✓"
		case c.Submitted && opt == c.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case c.Submitted:
			style = theme.Muted
		case opt == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// IndexOf returns the position of opt in the list, or -1.
func (c ChoiceList) IndexOf(opt string) int {
	for i, o := range c.Options {
		if o == opt {
			return i
		}
	}
	return -1
}

// Badge renders a short colored label such as "Correct!".
func Badge(text string, ok bool) string {
	style := theme.Incorrect
	if ok {
		style = theme.Correct
	}
	return lipgloss.NewStyle().Inherit(style).Padding(0, 1).Render(text)
}
