package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/protocol"
)

// Update handles all messages for the dashboard.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If a dialog is open, only intercept key input; allow other messages through.
	if a.dialog != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return a.handleDialogUpdate(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeys(msg)

	case outboundMsg:
		a.applyOutbound(msg.msg)
		return a, nil

	case toastMsg:
		return a, a.showToast(msg.notification)

	case clearToastMsg:
		if msg.seq == a.toastSeq {
			a.status.ClearMessage()
		}
		return a, nil

	case promptMsg:
		a.showPrompt(msg)
		return a, nil

	case openMsg:
		done := msg.done
		return a, tea.ExecProcess(msg.cmd, func(err error) tea.Msg {
			return openDoneMsg{err: err, done: done}
		})

	case openDoneMsg:
		msg.done <- msg.err
		if msg.err != nil {
			return a, nil
		}
		// The opened project replaces the dashboard.
		return a.quit()

	case revealMsg:
		return a, tea.ClearScreen

	case tea.ResumeMsg:
		a.hooks.setVisible(true)
		return a, nil

	case commandDoneMsg:
		if msg.err != nil {
			a.logger.Debug("host command failed", zap.String("command", msg.name), zap.Error(msg.err))
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Suspend):
		a.hooks.setVisible(false)
		return a, tea.Suspend

	case key.Matches(msg, a.keys.Help):
		a.status.ToggleHelp()
		a.list.SetSize(a.width, a.listHeight())
		return a, nil

	case key.Matches(msg, a.keys.Open):
		if p, ok := a.list.SelectedProject(); ok {
			a.hooks.emit(protocol.OpenProject{ProjectID: p.ID})
		}
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		if p, ok := a.list.SelectedProject(); ok {
			a.hooks.emit(protocol.ConfirmDelete{ProjectID: p.ID, ProjectName: p.DisplayName()})
		}
		return a, nil
	}

	for _, c := range a.commands {
		if key.Matches(msg, c.Binding) {
			return a, a.runCommand(c)
		}
	}

	a.list, _ = a.list.Update(msg)
	return a, nil
}

func (a App) handleDialogUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	d, cmd := a.dialog.Update(msg)
	a.dialog = &d
	if d.Done() {
		a.finishPrompt(d.Choice())
	}
	return a, cmd
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.dismissPrompts()
	return a, tea.Quit
}
