package bookingui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles shared by the renderer.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Modal    lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")),
	Item: lipgloss.NewStyle(),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")),
	Modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 3),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")),
}
