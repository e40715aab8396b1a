// Package splash renders the configurable ascii-art banner.
package splash

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

// boldFontSize is the font size from which the splash is drawn bold.
const boldFontSize = 20

// Gap returns the number of blank lines inserted between splash lines for
// the configured line height.
func Gap(lineHeight float64) int {
	if lineHeight <= 1 || math.IsNaN(lineHeight) {
		return 0
	}
	return int(math.Round(lineHeight)) - 1
}

// Render draws cfg centered in width cells. The font family has no effect
// in a terminal.
func Render(cfg model.AsciiArtConfig, width int) string {
	if strings.TrimSpace(cfg.Text) == "" {
		return ""
	}

	style := styles.SplashStyle.Bold(cfg.FontSize >= boldFontSize)
	gap := Gap(cfg.LineHeight)

	lines := strings.Split(strings.TrimRight(cfg.Text, "\n"), "\n")
	out := make([]string, 0, len(lines)*(gap+1))
	for i, line := range lines {
		if i > 0 {
			for range gap {
				out = append(out, "")
			}
		}
		color := styles.GradientPurple[i%len(styles.GradientPurple)]
		out = append(out, style.Foreground(color).Render(line))
	}

	block := lipgloss.JoinVertical(lipgloss.Center, out...)
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
