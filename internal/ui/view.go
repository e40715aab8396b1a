package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/startboard/internal/ui/components/splash"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

// View renders the dashboard.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	if a.dialog != nil {
		return a.dialog.View()
	}

	if a.width == 0 {
		return styles.Placeholder.Render("Loading Start Board…")
	}

	if a.windowTooSmall() {
		notice := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Accent).
			Render(fmt.Sprintf("Window too small: need %dx%d, have %dx%d", minAppWidth, minAppHeight, a.width, a.height))
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(notice)
	}

	parts := []string{styles.RenderFancyHeader("Start Board", a.width)}
	if art := a.splashView(); art != "" {
		parts = append(parts, art)
	}
	parts = append(parts, a.list.View(), a.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// splashView renders the splash, or nothing when it does not leave the
// list enough room.
func (a App) splashView() string {
	art := splash.Render(a.splash, a.width)
	if art == "" {
		return ""
	}
	if a.height-lipgloss.Height(art)-1-a.status.Height() < minListHeight {
		return ""
	}
	return art
}

const minListHeight = 6

// listHeight returns the rows left for the project list.
func (a App) listHeight() int {
	used := 1 + a.status.Height() // header
	if art := a.splashView(); art != "" {
		used += lipgloss.Height(art)
	}
	return max(a.height-used, minListHeight)
}
