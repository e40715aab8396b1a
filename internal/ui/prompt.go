package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/ui/components/dialog"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

// promptModel is a standalone program showing a single dialog.
type promptModel struct {
	dialog dialog.Confirm
}

func newPromptModel(n host.Notification) promptModel {
	return promptModel{dialog: dialog.NewConfirm(notificationTitle(n.Severity), n.Message, n.Actions)}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	if m.dialog.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m promptModel) View() string {
	if m.dialog.Done() {
		return ""
	}
	return m.dialog.View() + "\n"
}

// runPrompt shows n in its own program and returns the chosen action.
func runPrompt(ctx context.Context, n host.Notification, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(newPromptModel(n), opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok {
		return "", nil
	}
	return m.dialog.Choice(), nil
}

// toastLine renders n as a single command line message.
func toastLine(n host.Notification) string {
	message := lipgloss.NewStyle().Foreground(styles.SeverityColor(n.Severity)).Render(n.Message)
	return styles.ToastLabel(n.Severity) + " " + message
}
