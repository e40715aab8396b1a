// Package utils provides path, command line and environment helpers for Start Board.
package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WorkspaceFileExt is the extension of multi-root workspace descriptor files.
const WorkspaceFileExt = ".code-workspace"

// maxSuggestions caps Complete results.
const maxSuggestions = 10

// PathCompleter suggests folders and workspace files for a partial path.
type PathCompleter struct {
	recentPaths []string
}

// NewPathCompleter creates a new path completer. Recent paths are offered
// first when the input is empty.
func NewPathCompleter(recentPaths []string) *PathCompleter {
	return &PathCompleter{
		recentPaths: recentPaths,
	}
}

// Complete returns completion suggestions for the given input.
func (c *PathCompleter) Complete(input string) []string {
	if input == "" {
		return c.defaultSuggestions()
	}

	expanded := expandHome(input)
	dir := filepath.Dir(expanded)
	prefix := filepath.Base(expanded)

	// A trailing separator lists the directory itself.
	if strings.HasSuffix(input, "/") || strings.HasSuffix(input, string(filepath.Separator)) {
		dir = expanded
		prefix = ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return c.matchRecentPaths(input)
	}

	home, _ := os.UserHomeDir()
	var suggestions []string
	for _, entry := range entries {
		name := entry.Name()

		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			continue
		}
		if !entry.IsDir() && !IsWorkspaceFile(name) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		if strings.HasPrefix(input, "~") && home != "" {
			fullPath = "~" + strings.TrimPrefix(fullPath, home)
		}
		if entry.IsDir() {
			fullPath += "/"
		}
		suggestions = append(suggestions, fullPath)
	}

	// Directories first, then alphabetically.
	sort.Slice(suggestions, func(i, j int) bool {
		iDir := strings.HasSuffix(suggestions[i], "/")
		jDir := strings.HasSuffix(suggestions[j], "/")
		if iDir != jDir {
			return iDir
		}
		return suggestions[i] < suggestions[j]
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func (c *PathCompleter) defaultSuggestions() []string {
	home, _ := os.UserHomeDir()
	suggestions := make([]string, 0, len(c.recentPaths)+2)
	for i, p := range c.recentPaths {
		if i >= 5 {
			break
		}
		suggestions = append(suggestions, shortenHome(p, home))
	}
	suggestions = append(suggestions, "~/", "./")
	return dedupe(suggestions)
}

func (c *PathCompleter) matchRecentPaths(prefix string) []string {
	home, _ := os.UserHomeDir()
	expanded := expandHome(prefix)

	var matches []string
	for _, p := range c.recentPaths {
		if strings.HasPrefix(p, expanded) || strings.HasPrefix(p, prefix) {
			matches = append(matches, shortenHome(p, home))
		}
	}
	return matches
}

func shortenHome(path, home string) string {
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// expandHome expands ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// ExpandPath expands ~ and returns a cleaned absolute path.
func ExpandPath(path string) string {
	expanded := expandHome(path)
	if abs, err := filepath.Abs(expanded); err == nil {
		return abs
	}
	return filepath.Clean(expanded)
}

func dedupe(slice []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}

// IsWorkspaceFile reports whether path names a workspace descriptor file.
func IsWorkspaceFile(path string) bool {
	return strings.HasSuffix(path, WorkspaceFileExt)
}

// IsValidProjectPath reports whether path is a directory or an existing
// workspace file.
func IsValidProjectPath(path string) bool {
	info, err := os.Stat(ExpandPath(path))
	if err != nil {
		return false
	}
	if info.IsDir() {
		return true
	}
	return info.Mode().IsRegular() && IsWorkspaceFile(path)
}

// GetProjectName extracts a project name from a path. Workspace files lose
// their extension.
func GetProjectName(path string) string {
	base := filepath.Base(ExpandPath(path))
	if IsWorkspaceFile(base) {
		return strings.TrimSuffix(base, WorkspaceFileExt)
	}
	return base
}
