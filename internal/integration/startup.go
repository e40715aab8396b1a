package integration

import (
	"context"

	"github.com/lazyvibe/startboard/internal/host"
)

// IsEmptyWindow reports whether no folder is open.
func IsEmptyWindow(folders []host.Folder) bool {
	return len(folders) == 0
}

// AutoShowDashboard calls show when ws is an empty window. It reports
// whether show was called.
func AutoShowDashboard(ctx context.Context, ws host.Workspace, show func(context.Context) error) (bool, error) {
	if !IsEmptyWindow(ws.Folders()) {
		return false, nil
	}
	return true, show(ctx)
}
