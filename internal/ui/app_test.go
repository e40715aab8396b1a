package ui

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/protocol"
	"github.com/lazyvibe/startboard/internal/ui/keys"
)

type recorder struct {
	mu      sync.Mutex
	emitted []protocol.Inbound
	visible []bool
}

func (r *recorder) emit(msg protocol.Inbound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted = append(r.emitted, msg)
}

func (r *recorder) setVisible(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = append(r.visible, v)
}

func newTestApp(commands ...Command) (App, *recorder) {
	r := &recorder{}
	a := newApp(hooks{ctx: context.Background(), emit: r.emit, setVisible: r.setVisible}, commands, nil)
	return a, r
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var testProjects = []model.Project{
	{ID: "1", Name: "api", Path: "/src/api", Type: model.ProjectTypeFolder, AddedAt: 1},
	{ID: "2", Name: "", Path: "/src/web", Type: model.ProjectTypeFolder, AddedAt: 2},
	{ID: "3", Name: "team", Path: "/src/team.code-workspace", Type: model.ProjectTypeWorkspace, AddedAt: 3},
}

func loadedApp(t *testing.T, commands ...Command) (App, *recorder) {
	t.Helper()
	a, r := newTestApp(commands...)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})
	a, _ = update(t, a, outboundMsg{msg: protocol.Init{Projects: testProjects, Config: model.DefaultAsciiArt()}})
	return a, r
}

func TestApp_InitEmitsReady(t *testing.T) {
	a, r := newTestApp()

	cmd := a.Init()
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	assert.Equal(t, []protocol.Inbound{protocol.Ready{}}, r.emitted)
}

func TestApp_AppliesOutbound(t *testing.T) {
	a, _ := newTestApp()
	assert.False(t, a.list.Loaded())

	art := model.AsciiArtConfig{Text: "HELLO", FontSize: 24, LineHeight: 1}
	a, _ = update(t, a, outboundMsg{msg: protocol.Init{Projects: testProjects, Config: art}})
	assert.True(t, a.list.Loaded())
	assert.Equal(t, testProjects, a.list.Projects())
	assert.Equal(t, art, a.splash)

	a, _ = update(t, a, outboundMsg{msg: protocol.ProjectsUpdated{Projects: testProjects[:1]}})
	assert.Equal(t, testProjects[:1], a.list.Projects())

	a, _ = update(t, a, outboundMsg{msg: protocol.ConfigUpdated{Config: model.DefaultAsciiArt()}})
	assert.Equal(t, model.DefaultAsciiArt(), a.splash)
}

func TestApp_OpenAndDeleteEmit(t *testing.T) {
	a, r := loadedApp(t)

	a, _ = update(t, a, runes("j"))
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	_, _ = update(t, a, runes("d"))

	assert.Equal(t, []protocol.Inbound{
		protocol.OpenProject{ProjectID: "2"},
		protocol.ConfirmDelete{ProjectID: "2", ProjectName: "web"},
	}, r.emitted)
}

func TestApp_EmptyListEmitsNothing(t *testing.T) {
	a, r := newTestApp()
	a, _ = update(t, a, outboundMsg{msg: protocol.Init{Projects: []model.Project{}}})

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	_, _ = update(t, a, tea.KeyMsg{Type: tea.KeyDelete})

	assert.Empty(t, r.emitted)
}

func TestApp_Prompt(t *testing.T) {
	a, r := loadedApp(t)
	reply := make(chan string, 1)

	a, _ = update(t, a, promptMsg{
		notification: host.Notification{Severity: host.SeverityWarning, Message: `Delete "api"?`, Actions: []string{"Delete", "Cancel"}, Modal: true},
		reply:        reply,
	})
	require.NotNil(t, a.dialog)
	assert.Contains(t, a.View(), `Delete "api"?`)

	// Keys go to the dialog while it is open.
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Cancel", <-reply)
	assert.Nil(t, a.dialog)
	assert.Empty(t, r.emitted)
}

func TestApp_PromptsQueueAndDismissOnQuit(t *testing.T) {
	a, _ := loadedApp(t)
	first := make(chan string, 1)
	second := make(chan string, 1)
	third := make(chan string, 1)

	a, _ = update(t, a, promptMsg{notification: host.Notification{Message: "one", Actions: []string{"A"}}, reply: first})
	a, _ = update(t, a, promptMsg{notification: host.Notification{Message: "two", Actions: []string{"B"}}, reply: second})
	a, _ = update(t, a, promptMsg{notification: host.Notification{Message: "three", Actions: []string{"C"}}, reply: third})

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "A", <-first)
	require.NotNil(t, a.dialog)
	assert.Equal(t, "B", a.dialog.Focused())

	done := make(chan error, 1)
	a, cmd := update(t, a, openDoneMsg{done: done})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", <-second)
	assert.Equal(t, "", <-third)
	assert.Nil(t, a.dialog)
	assert.True(t, a.quitting)
}

func TestApp_Toast(t *testing.T) {
	a, _ := loadedApp(t)

	a, cmd := update(t, a, toastMsg{notification: host.Notification{Severity: host.SeverityInfo, Message: "first"}})
	require.NotNil(t, cmd)
	a, _ = update(t, a, toastMsg{notification: host.Notification{Severity: host.SeverityError, Message: "second"}})
	assert.Equal(t, "second", a.status.Message())

	// A stale timer does not clear the newer toast.
	a, _ = update(t, a, clearToastMsg{seq: 1})
	assert.Equal(t, "second", a.status.Message())

	a, _ = update(t, a, clearToastMsg{seq: 2})
	assert.Empty(t, a.status.Message())
}

func TestApp_SuspendAndResume(t *testing.T) {
	a, r := loadedApp(t)

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.SuspendMsg{}, cmd())

	_, _ = update(t, a, tea.ResumeMsg{})
	assert.Equal(t, []bool{false, true}, r.visible)
}

func TestApp_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			a, _ := loadedApp(t)
			a, cmd := update(t, a, k)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, a.View())
		})
	}
}

func TestApp_HostCommand(t *testing.T) {
	called := 0
	a, _ := loadedApp(t, Command{
		Name:    "add",
		Binding: keys.DefaultKeyMap().Add,
		Run: func(context.Context) error {
			called++
			return errors.New("nothing open")
		},
	})

	a, cmd := update(t, a, runes("a"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, 1, called)
	assert.Equal(t, commandDoneMsg{name: "add", err: errors.New("nothing open")}, msg)

	_, cmd = update(t, a, msg)
	assert.Nil(t, cmd)
}

func TestApp_Open(t *testing.T) {
	a, _ := loadedApp(t)
	done := make(chan error, 1)

	a, cmd := update(t, a, openMsg{cmd: exec.Command("true"), done: done})
	assert.NotNil(t, cmd)

	failure := errors.New("exit status 1")
	a, cmd = update(t, a, openDoneMsg{err: failure, done: done})
	assert.Nil(t, cmd)
	assert.Equal(t, failure, <-done)
	assert.False(t, a.quitting)
}

func TestApp_View(t *testing.T) {
	a, _ := loadedApp(t)

	view := a.View()
	assert.Contains(t, view, "Start Board")
	assert.Contains(t, view, "Welcome")
	assert.Contains(t, view, "Projects")
	assert.Contains(t, view, "api")
	assert.Contains(t, view, "team")

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, a.View(), "Window too small")
}

func TestApp_HelpListsCommands(t *testing.T) {
	a, _ := loadedApp(t, Command{Name: "add", Binding: keys.DefaultKeyMap().Add, Run: func(context.Context) error { return nil }})

	assert.Contains(t, a.status.View(), "add current")

	a, _ = update(t, a, runes("?"))
	assert.True(t, a.status.ShowingFullHelp())
	assert.Contains(t, a.status.View(), "suspend")
}
