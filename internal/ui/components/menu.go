package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry in a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons navigated with the arrow keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// step returns the next enabled index in direction dir, or the current one.
func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the items as buttons of the given width.
func (m Menu) View(buttonWidth int) string {
	buttons := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		if item.Disabled {
			buttons = append(buttons, DisabledButton(item.Label, buttonWidth))
			continue
		}
		buttons = append(buttons, Button(item.Label, i == m.Selected, buttonWidth))
	}
	return strings.Join(buttons, "\n")
}
