package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/protocol"
	"github.com/lazyvibe/startboard/internal/ui/components/dialog"
	projectlist "github.com/lazyvibe/startboard/internal/ui/components/project_list"
	"github.com/lazyvibe/startboard/internal/ui/components/statusbar"
	"github.com/lazyvibe/startboard/internal/ui/keys"
)

const (
	minAppWidth  = 40
	minAppHeight = 12

	toastDuration = 4 * time.Second
)

// Command is a host command bound to a key in the dashboard.
type Command struct {
	Name    string
	Binding key.Binding
	Run     func(ctx context.Context) error
}

// hooks connect the dashboard model to its panel.
type hooks struct {
	ctx        context.Context
	emit       func(protocol.Inbound)
	setVisible func(bool)
}

// App is the dashboard model.
type App struct {
	// Components
	list   projectlist.Model
	status statusbar.Model
	dialog *dialog.Confirm

	// State
	splash   model.AsciiArtConfig
	width    int
	height   int
	toastSeq int
	reply    chan<- string
	prompts  []promptMsg
	quitting bool

	// Dependencies
	keys     keys.KeyMap
	commands []Command
	hooks    hooks
	logger   *zap.Logger
}

// newApp creates the dashboard model.
func newApp(h hooks, commands []Command, logger *zap.Logger) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if h.ctx == nil {
		h.ctx = context.Background()
	}
	if h.emit == nil {
		h.emit = func(protocol.Inbound) {}
	}
	if h.setVisible == nil {
		h.setVisible = func(bool) {}
	}
	km := keys.DefaultKeyMap()
	return App{
		list:     projectlist.New(),
		status:   statusbar.New(helpKeys{keys: km, commands: commands}),
		splash:   model.DefaultAsciiArt(),
		keys:     km,
		commands: append([]Command(nil), commands...),
		hooks:    h,
		logger:   logger,
	}
}

// Init announces the dashboard as ready.
func (a App) Init() tea.Cmd {
	emit := a.hooks.emit
	return func() tea.Msg {
		emit(protocol.Ready{})
		return nil
	}
}

// SetSize updates the layout.
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.status.SetWidth(width)
	a.list.SetSize(width, a.listHeight())
	if a.dialog != nil {
		a.dialog.SetSize(width, height)
	}
}

func (a App) windowTooSmall() bool {
	return a.width < minAppWidth || a.height < minAppHeight
}

// applyOutbound updates the dashboard state from a core message.
func (a *App) applyOutbound(msg protocol.Outbound) {
	switch m := msg.(type) {
	case protocol.Init:
		a.splash = m.Config
		a.list.SetProjects(m.Projects)
	case protocol.ProjectsUpdated:
		a.list.SetProjects(m.Projects)
	case protocol.ConfigUpdated:
		a.splash = m.Config
	default:
		a.logger.Warn("unhandled core message", zap.String("type", msg.Type()))
	}
	a.list.SetSize(a.width, a.listHeight())
}

// showToast puts n in the status bar and schedules its removal.
func (a *App) showToast(n host.Notification) tea.Cmd {
	a.toastSeq++
	seq := a.toastSeq
	a.status.SetMessage(n.Message, n.Severity)
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

// showPrompt opens the dialog for msg, or queues it behind the open one.
func (a *App) showPrompt(msg promptMsg) {
	if a.dialog != nil {
		a.prompts = append(a.prompts, msg)
		return
	}
	d := dialog.NewConfirm(notificationTitle(msg.notification.Severity), msg.notification.Message, msg.notification.Actions)
	d.SetSize(a.width, a.height)
	a.dialog = &d
	a.reply = msg.reply
}

// finishPrompt answers the open dialog and shows the next queued one.
func (a *App) finishPrompt(choice string) {
	if a.reply != nil {
		a.reply <- choice
	}
	a.dialog = nil
	a.reply = nil
	if len(a.prompts) > 0 {
		next := a.prompts[0]
		a.prompts = a.prompts[1:]
		a.showPrompt(next)
	}
}

// dismissPrompts answers every open and queued dialog with a dismissal.
func (a *App) dismissPrompts() {
	for a.dialog != nil {
		a.finishPrompt("")
	}
}

// runCommand runs c off the event loop.
func (a App) runCommand(c Command) tea.Cmd {
	ctx := a.hooks.ctx
	return func() tea.Msg {
		return commandDoneMsg{name: c.Name, err: c.Run(ctx)}
	}
}

func notificationTitle(s host.Severity) string {
	switch s {
	case host.SeverityWarning:
		return "Warning"
	case host.SeverityError:
		return "Error"
	default:
		return "Start Board"
	}
}

// helpKeys combines the dashboard keys with the registered host commands.
type helpKeys struct {
	keys     keys.KeyMap
	commands []Command
}

func (h helpKeys) commandBindings() []key.Binding {
	bindings := make([]key.Binding, 0, len(h.commands))
	for _, c := range h.commands {
		bindings = append(bindings, c.Binding)
	}
	return bindings
}

func (h helpKeys) ShortHelp() []key.Binding {
	short := h.keys.ShortHelp()
	return append(short[:2:2], append(h.commandBindings(), short[2:]...)...)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	full := h.keys.FullHelp()
	if len(h.commands) == 0 {
		return full
	}
	return append(full, h.commandBindings())
}
