// Package model defines core data structures for Start Board.
package model

// ProjectType tells what kind of filesystem entry a project points at.
type ProjectType string

const (
	// ProjectTypeFolder is a single folder.
	ProjectTypeFolder ProjectType = "folder"
	// ProjectTypeWorkspace is a multi-root workspace descriptor file.
	ProjectTypeWorkspace ProjectType = "workspace"
)

// Valid reports whether t is a known project type.
func (t ProjectType) Valid() bool {
	return t == ProjectTypeFolder || t == ProjectTypeWorkspace
}

// AsciiArtConfig describes how the dashboard splash is rendered.
type AsciiArtConfig struct {
	// Text is shown verbatim as the splash.
	Text string `json:"text" koanf:"text" yaml:"text"`
	// FontFamily is the requested font. Terminal panels ignore it.
	FontFamily string `json:"fontFamily" koanf:"font_family" yaml:"font_family"`
	// FontSize is the requested font size in px.
	FontSize float64 `json:"fontSize" koanf:"font_size" yaml:"font_size"`
	// LineHeight is the requested line height multiplier.
	LineHeight float64 `json:"lineHeight" koanf:"line_height" yaml:"line_height"`
}

// DefaultAsciiArt returns the splash shown when nothing is configured.
func DefaultAsciiArt() AsciiArtConfig {
	return AsciiArtConfig{
		Text:       "Welcome\nto\nStart Board",
		FontFamily: "monospace",
		FontSize:   14,
		LineHeight: 1.2,
	}
}
