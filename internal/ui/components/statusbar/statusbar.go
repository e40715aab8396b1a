// Package statusbar provides the status bar UI component.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

// Model is the status bar component.
type Model struct {
	width    int
	message  string
	severity host.Severity
	help     help.Model
	keyMap   help.KeyMap
}

// New creates a new status bar showing help for keyMap.
func New(keyMap help.KeyMap) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.Overlay0)
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	return Model{help: h, keyMap: keyMap}
}

// SetWidth updates the status bar width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.help.Width = width
}

// SetMessage sets a temporary message.
func (m *Model) SetMessage(msg string, severity host.Severity) {
	m.message = msg
	m.severity = severity
}

// ClearMessage clears the temporary message.
func (m *Model) ClearMessage() {
	m.message = ""
	m.severity = host.SeverityInfo
}

// Message returns the current message.
func (m Model) Message() string {
	return m.message
}

// ToggleHelp switches between short and full help.
func (m *Model) ToggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

// ShowingFullHelp reports whether the full help is shown.
func (m Model) ShowingFullHelp() bool {
	return m.help.ShowAll
}

// Height returns the number of lines View renders.
func (m Model) Height() int {
	return lipgloss.Height(m.View())
}

// View renders the status bar.
func (m Model) View() string {
	brand := styles.StatusBarBrand.Render(" Start Board ")

	var msgArea string
	if m.message != "" {
		msgArea = lipgloss.NewStyle().
			Foreground(styles.SeverityColor(m.severity)).
			Bold(m.severity == host.SeverityError).
			Render(" " + styles.SeverityIcon(m.severity) + " " + m.message + " ")
	}

	if m.help.ShowAll {
		top := m.line(brand, msgArea, "")
		return lipgloss.JoinVertical(lipgloss.Left, top, m.help.View(m.keyMap))
	}
	return m.line(brand, msgArea, m.help.View(m.keyMap))
}

func (m Model) line(left, middle, right string) string {
	avail := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if lipgloss.Width(middle) > avail {
		middle = styles.TruncateWithEllipsis(middle, max(avail, 0))
	}
	padding := max(avail-lipgloss.Width(middle), 0)
	leftPad := padding / 2

	content := left +
		strings.Repeat(" ", leftPad) +
		middle +
		strings.Repeat(" ", padding-leftPad) +
		right

	return styles.StatusBarStyle.Width(m.width).Render(content)
}
