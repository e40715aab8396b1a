package projectlist

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/startboard/internal/model"
)

func projects(names ...string) []model.Project {
	out := make([]model.Project, len(names))
	for i, n := range names {
		out[i] = model.Project{ID: n, Name: n, Path: "/src/" + n, Type: model.ProjectTypeFolder, AddedAt: int64(i)}
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSetProjects_KeepsSelection(t *testing.T) {
	m := New()
	m.SetSize(60, 30)
	m.SetProjects(projects("a", "b", "c"))
	m.CursorDown()
	m.CursorDown()

	m.SetProjects(projects("c", "d"))
	p, ok := m.SelectedProject()
	require.True(t, ok)
	assert.Equal(t, "c", p.ID)

	// The selected project went away: the cursor stays in range.
	m.CursorDown()
	m.SetProjects(projects("x"))
	p, ok = m.SelectedProject()
	require.True(t, ok)
	assert.Equal(t, "x", p.ID)

	m.SetProjects(nil)
	_, ok = m.SelectedProject()
	assert.False(t, ok)
	assert.True(t, m.Loaded())
}

func TestUpdate_Navigation(t *testing.T) {
	m := New()
	m.SetSize(60, 30)
	m.SetProjects(projects("a", "b", "c", "d"))

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{keyMsg("j"), 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 2},
		{keyMsg("k"), 1},
		{keyMsg("G"), 3},
		{keyMsg("j"), 3},
		{keyMsg("g"), 0},
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
	}
	for _, s := range steps {
		var handled bool
		m, handled = m.Update(s.key)
		assert.True(t, handled, s.key.String())
		assert.Equal(t, s.want, m.SelectedIndex(), s.key.String())
	}

	_, handled := m.Update(keyMsg("x"))
	assert.False(t, handled)
}

func TestView(t *testing.T) {
	m := New()
	m.SetSize(60, 20)
	assert.Contains(t, m.View(), "Loading projects")

	m.SetProjects(nil)
	assert.Contains(t, m.View(), "No projects yet")
	assert.Contains(t, m.View(), "Press 'a'")

	list := projects("alpha", "beta")
	list[1].Type = model.ProjectTypeWorkspace
	list[1].Path = "/src/beta.code-workspace"
	m.SetProjects(list)
	view := m.View()
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "beta")
	assert.Contains(t, view, "(2)")
	assert.Contains(t, view, "Path: /src/alpha")
	assert.Contains(t, view, "Type: folder")
}

func TestView_Scrolls(t *testing.T) {
	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("project-%02d", i)
	}
	m := New()
	m.SetSize(60, 16)
	m.SetProjects(projects(names...))

	for range 25 {
		m.CursorDown()
	}
	view := m.View()
	assert.Contains(t, view, "project-25")
	assert.NotContains(t, view, "project-00")
	assert.Contains(t, view, "26/30")
}
