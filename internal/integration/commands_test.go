package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/store"
)

func TestAddProjectCommand(t *testing.T) {
	tests := []struct {
		name        string
		ws          host.StaticWorkspace
		wantInput   model.ProjectInput
		wantMessage string
	}{
		{
			name: "workspace file wins over folders",
			ws: host.StaticWorkspace{
				File:        "/src/team/all.code-workspace",
				OpenFolders: []host.Folder{{Name: "team", Path: "/src/team"}},
			},
			wantInput:   model.ProjectInput{Name: "all", Path: "/src/team/all.code-workspace", Type: model.ProjectTypeWorkspace},
			wantMessage: `Start Board: Added "all" to the project list.`,
		},
		{
			name: "first folder",
			ws: host.StaticWorkspace{OpenFolders: []host.Folder{
				{Name: "api", Path: "/src/api"},
				{Name: "web", Path: "/src/web"},
			}},
			wantInput:   model.ProjectInput{Name: "api", Path: "/src/api", Type: model.ProjectTypeFolder},
			wantMessage: `Start Board: Added "api" to the project list.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			cmd := NewAddProjectCommand(tt.ws, f.projects, f.window, nil)

			p, err := cmd.Execute(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantInput, model.ProjectInput{Name: p.Name, Path: p.Path, Type: p.Type})
			assert.Equal(t, []model.Project{p}, f.projects.GetProjects())
			require.Len(t, f.window.shown, 1)
			assert.Equal(t, host.Notification{Severity: host.SeverityInfo, Message: tt.wantMessage}, f.window.shown[0])
		})
	}
}

func TestAddProjectCommand_NoWorkspace(t *testing.T) {
	f := newFixture(t, nil)
	cmd := NewAddProjectCommand(host.StaticWorkspace{}, f.projects, f.window, nil)

	_, err := cmd.Execute(context.Background())

	assert.ErrorIs(t, err, ErrNoWorkspace)
	assert.Empty(t, f.projects.GetProjects())
	require.Len(t, f.window.shown, 1)
	assert.Equal(t, host.SeverityError, f.window.shown[0].Severity)
	assert.Equal(t, "Start Board: Open a folder or workspace to add it as a project.", f.window.shown[0].Message)
}

func TestAddProjectCommand_Duplicate(t *testing.T) {
	f := newFixture(t, nil)
	f.add(t, "existing", "/src/api")
	cmd := NewAddProjectCommand(host.StaticWorkspace{OpenFolders: []host.Folder{{Name: "api", Path: "/src/api"}}}, f.projects, f.window, nil)

	_, err := cmd.Execute(context.Background())

	assert.ErrorIs(t, err, store.ErrDuplicatePath)
	assert.Len(t, f.projects.GetProjects(), 1)
	require.Len(t, f.window.shown, 1)
	assert.Equal(t, host.Notification{
		Severity: host.SeverityWarning,
		Message:  `Start Board: "api" is already in the project list.`,
	}, f.window.shown[0])
}

func TestIsEmptyWindow(t *testing.T) {
	assert.True(t, IsEmptyWindow(nil))
	assert.True(t, IsEmptyWindow([]host.Folder{}))
	assert.False(t, IsEmptyWindow([]host.Folder{{Name: "a", Path: "/a"}}))
}

func TestAutoShowDashboard(t *testing.T) {
	calls := 0
	show := func(context.Context) error { calls++; return nil }

	shown, err := AutoShowDashboard(context.Background(), host.StaticWorkspace{}, show)
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Equal(t, 1, calls)

	shown, err = AutoShowDashboard(context.Background(), host.StaticWorkspace{OpenFolders: []host.Folder{{Name: "a", Path: "/a"}}}, show)
	require.NoError(t, err)
	assert.False(t, shown)
	assert.Equal(t, 1, calls)
}
