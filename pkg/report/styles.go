package report

import "github.com/charmbracelet/lipgloss"

var (
	colorHeading = lipgloss.Color("#8B5CF6")
	colorError   = lipgloss.Color("#EF4444")
	colorOption  = lipgloss.Color("#06B6D4")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Heading lipgloss.Style
	Error   lipgloss.Style
	Option  lipgloss.Style
	Muted   lipgloss.Style
	Cell    lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Heading: plain, Error: plain, Option: plain, Muted: plain, Cell: plain}
	}
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(colorHeading),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Option:  lipgloss.NewStyle().Foreground(colorOption),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Cell:    lipgloss.NewStyle(),
	}
}
