package projectlist

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles navigation keys. It reports whether msg was consumed.
func (m Model) Update(msg tea.Msg) (Model, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	switch {
	case key.Matches(k, m.keyMap.Up):
		m.CursorUp()
	case key.Matches(k, m.keyMap.Down):
		m.CursorDown()
	case key.Matches(k, m.keyMap.Top):
		m.cursor = 0
		m.offset = 0
	case key.Matches(k, m.keyMap.Bottom):
		m.cursor = max(len(m.projects)-1, 0)
		m.ensureVisible()
	default:
		return m, false
	}
	return m, true
}
