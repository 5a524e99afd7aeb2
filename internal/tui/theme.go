package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the picker.
type Theme struct {
	Title    lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Box      lipgloss.Style
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2ECC71")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#2ECC71")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}
