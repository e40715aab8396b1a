// Package styles defines the visual appearance of the Start Board dashboard.
// Using Catppuccin Mocha color palette.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lazyvibe/startboard/internal/host"
)

// Catppuccin Mocha color palette
var (
	Pink     = lipgloss.Color("#F5C2E7")
	Mauve    = lipgloss.Color("#CBA6F7")
	Red      = lipgloss.Color("#F38BA8")
	Peach    = lipgloss.Color("#FAB387")
	Sky      = lipgloss.Color("#89DCEB")
	Sapphire = lipgloss.Color("#74C7EC")
	Blue     = lipgloss.Color("#89B4FA")
	Lavender = lipgloss.Color("#B4BEFE")

	Text     = lipgloss.Color("#CDD6F4")
	Subtext1 = lipgloss.Color("#BAC2DE")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface1 = lipgloss.Color("#45475A")
	Surface0 = lipgloss.Color("#313244")
	Base     = lipgloss.Color("#1E1E2E")
	Mantle   = lipgloss.Color("#181825")
)

// Semantic colors
var (
	Primary     = Mauve
	Accent      = Sapphire
	Danger      = Red
	Warning     = Peach
	Info        = Blue
	SurfaceCol  = Surface0
	TextCol     = Text
	TextMuted   = Subtext0
	Border      = Surface1
	BorderFocus = Mauve
)

// GradientPurple colors the splash line by line.
var GradientPurple = []lipgloss.Color{Mauve, Pink, Lavender}

// Panel styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderFocus)

	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	PanelTitleIcon = lipgloss.NewStyle().
			Foreground(Accent).
			MarginRight(1)
)

// List item styles
var (
	ListItem = lipgloss.NewStyle().
			Foreground(Subtext1).
			Padding(0, 1)

	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextCol).
				Background(SurfaceCol).
				Bold(true).
				Padding(0, 1)

	ListItemDim = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	Placeholder = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)
)

// StatusBar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Background(Mantle)

	StatusBarBrand = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Dialog styles
var (
	DialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Background(Base).
			Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Sky).
			Padding(0, 1).
			MarginBottom(1)

	DialogMessage = lipgloss.NewStyle().
			Foreground(TextCol).
			MarginBottom(1)

	DialogButton = lipgloss.NewStyle().
			Foreground(TextMuted).
			Background(Surface0).
			Padding(0, 2).
			MarginRight(1)

	DialogButtonActive = lipgloss.NewStyle().
				Foreground(Base).
				Background(Primary).
				Bold(true).
				Padding(0, 2).
				MarginRight(1)

	DialogHelp = lipgloss.NewStyle().
			Foreground(Overlay0).
			MarginTop(1)
)

// SplashStyle renders the ascii-art splash.
var SplashStyle = lipgloss.NewStyle().
	Foreground(Primary)

// SeverityColor returns the color used for notifications of severity s.
func SeverityColor(s host.Severity) lipgloss.Color {
	switch s {
	case host.SeverityWarning:
		return Warning
	case host.SeverityError:
		return Danger
	default:
		return Info
	}
}

// SeverityIcon returns the icon for notifications of severity s.
func SeverityIcon(s host.Severity) string {
	switch s {
	case host.SeverityWarning:
		return IconWarning
	case host.SeverityError:
		return IconError
	default:
		return IconInfo
	}
}

// ToastLabel renders the badge printed before a toast on the command line.
func ToastLabel(s host.Severity) string {
	return lipgloss.NewStyle().
		Foreground(Base).
		Background(SeverityColor(s)).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(s.String()))
}

// TruncateWithEllipsis truncates s to maxWidth cells with an ellipsis.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// Icons
var (
	IconFolder    = "📁"
	IconWorkspace = "🗂"
	IconWarning   = "⚠"
	IconError     = "✗"
	IconInfo      = "ℹ"
	IconSelected  = "›"
)

// RenderFancyHeader renders title between decorative rules spanning width.
func RenderFancyHeader(title string, width int) string {
	left := lipgloss.NewStyle().Foreground(Mauve).Render("╭─")
	right := lipgloss.NewStyle().Foreground(Mauve).Render("─╮")
	titleStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(TextCol).
		Background(Surface0).
		Padding(0, 1).
		Render(title)

	fillWidth := width - lipgloss.Width(titleStyled) - lipgloss.Width(left) - lipgloss.Width(right)
	if fillWidth < 0 {
		fillWidth = 0
	}
	leftFill := fillWidth / 2
	rightFill := fillWidth - leftFill

	rule := lipgloss.NewStyle().Foreground(Surface1)
	return left + rule.Render(strings.Repeat("─", leftFill)) + titleStyled + rule.Render(strings.Repeat("─", rightFill)) + right
}
