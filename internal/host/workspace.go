// Package host defines the collaborators Start Board consumes from its
// environment, with implementations for a terminal session.
package host

import (
	"path/filepath"

	"github.com/lazyvibe/startboard/pkg/utils"
)

// Folder is an open workspace folder.
type Folder struct {
	Name string
	Path string
}

// Workspace reports what the current window has open.
type Workspace interface {
	// Folders returns the open folders, in order. Empty for an empty window.
	Folders() []Folder
	// WorkspaceFile returns the open workspace descriptor path, or "".
	WorkspaceFile() string
}

// Environment is the Workspace of a terminal session.
//
// The launch directory counts as the open folder unless it is the user's
// home directory or the filesystem root; launching from there is an empty
// window. A workspace file, when given, takes precedence and its directory
// is the open folder.
type Environment struct {
	launchDir     string
	homeDir       string
	workspaceFile string
}

// NewEnvironment creates an Environment. Paths are cleaned and made absolute.
func NewEnvironment(launchDir, homeDir, workspaceFile string) *Environment {
	env := &Environment{
		launchDir: cleanPath(launchDir),
		homeDir:   cleanPath(homeDir),
	}
	if workspaceFile != "" {
		env.workspaceFile = utils.ExpandPath(workspaceFile)
	}
	return env
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return utils.ExpandPath(p)
}

// Folders implements Workspace.
func (e *Environment) Folders() []Folder {
	if e.workspaceFile != "" {
		dir := filepath.Dir(e.workspaceFile)
		return []Folder{{Name: filepath.Base(dir), Path: dir}}
	}
	if e.launchDir == "" || e.launchDir == e.homeDir || isRoot(e.launchDir) {
		return nil
	}
	return []Folder{{Name: filepath.Base(e.launchDir), Path: e.launchDir}}
}

// WorkspaceFile implements Workspace.
func (e *Environment) WorkspaceFile() string {
	return e.workspaceFile
}

func isRoot(p string) bool {
	return filepath.Dir(p) == p
}

// StaticWorkspace is a Workspace with fixed contents.
type StaticWorkspace struct {
	OpenFolders []Folder
	File        string
}

// Folders implements Workspace.
func (w StaticWorkspace) Folders() []Folder {
	return w.OpenFolders
}

// WorkspaceFile implements Workspace.
func (w StaticWorkspace) WorkspaceFile() string {
	return w.File
}
