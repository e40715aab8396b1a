// Package dialog provides modal dialog components for Start Board.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/startboard/internal/ui/keys"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

// Confirm is a modal dialog offering a row of action buttons.
type Confirm struct {
	title   string
	message string
	actions []string
	focus   int
	width   int
	height  int
	done    bool
	choice  string
	keyMap  keys.DialogKeyMap
}

// NewConfirm creates a dialog. With no actions it only shows the message
// and closes on enter or esc.
func NewConfirm(title, message string, actions []string) Confirm {
	return Confirm{
		title:   title,
		message: message,
		actions: append([]string(nil), actions...),
		keyMap:  keys.DefaultDialogKeyMap(),
	}
}

// SetSize updates the dialog dimensions.
func (d *Confirm) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update handles dialog keys.
func (d Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || d.done {
		return d, nil
	}

	switch {
	case key.Matches(k, d.keyMap.Prev):
		if len(d.actions) > 0 {
			d.focus = (d.focus - 1 + len(d.actions)) % len(d.actions)
		}
	case key.Matches(k, d.keyMap.Next):
		if len(d.actions) > 0 {
			d.focus = (d.focus + 1) % len(d.actions)
		}
	case key.Matches(k, d.keyMap.Confirm):
		d.done = true
		if len(d.actions) > 0 {
			d.choice = d.actions[d.focus]
		}
	case key.Matches(k, d.keyMap.Cancel):
		d.done = true
		d.choice = ""
	}
	return d, nil
}

// Done reports whether the user answered or dismissed the dialog.
func (d Confirm) Done() bool {
	return d.done
}

// Choice returns the picked action, or "" when dismissed.
func (d Confirm) Choice() string {
	return d.choice
}

// Focused returns the highlighted action.
func (d Confirm) Focused() string {
	if len(d.actions) == 0 {
		return ""
	}
	return d.actions[d.focus]
}

// View renders the dialog.
func (d Confirm) View() string {
	var b strings.Builder

	b.WriteString(styles.DialogTitle.Render(d.title))
	b.WriteString("\n")
	b.WriteString(styles.DialogMessage.Render(d.message))
	b.WriteString("\n")

	buttons := make([]string, 0, len(d.actions))
	for i, action := range d.actions {
		style := styles.DialogButton
		if i == d.focus {
			style = styles.DialogButtonActive
		}
		buttons = append(buttons, style.Render(action))
	}
	if len(buttons) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	helpText := "Enter: Close • Esc: Dismiss"
	if len(d.actions) > 1 {
		helpText = "←/→: Choose • Enter: Confirm • Esc: Cancel"
	} else if len(d.actions) == 1 {
		helpText = "Enter: Confirm • Esc: Dismiss"
	}
	b.WriteString(styles.DialogHelp.Render(helpText))

	content := styles.DialogBox.Render(b.String())

	// Center in screen
	if d.width > 0 && d.height > 0 {
		padX := max((d.width-lipgloss.Width(content))/2, 0)
		padY := max((d.height-lipgloss.Height(content))/2, 0)
		content = lipgloss.NewStyle().
			MarginLeft(padX).
			MarginTop(padY).
			Render(content)
	}

	return content
}
