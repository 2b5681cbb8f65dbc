package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the styling of every pane.
type Styles struct {
	App   lipgloss.Style
	Title lipgloss.Style

	// Chunk list
	ListBorder   lipgloss.Style
	ListItem     lipgloss.Style
	ListCursor   lipgloss.Style
	ListSelected lipgloss.Style

	// Preview
	PreviewBorder lipgloss.Style

	// Inputs
	InputLabel        lipgloss.Style
	InputBorder       lipgloss.Style
	InputBorderActive lipgloss.Style

	// Status line
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style

	Muted lipgloss.Style
}

// DefaultStyles creates the default style set using the default renderer.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles creates the style set using the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		App: r.NewStyle().Padding(0, 1),

		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2),

		ListBorder: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		ListItem: r.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(1),
		ListCursor: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("238")).
			PaddingLeft(1),
		ListSelected: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			PaddingLeft(1),

		PreviewBorder: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),

		InputLabel: r.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(8),
		InputBorder: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")),
		InputBorderActive: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")),

		Status: r.NewStyle().
			Foreground(lipgloss.Color("42")),
		StatusError: r.NewStyle().
			Foreground(lipgloss.Color("196")),
		Help: r.NewStyle().
			Foreground(lipgloss.Color("241")),

		Muted: r.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}
