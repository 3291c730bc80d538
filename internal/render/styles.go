package render

import "github.com/charmbracelet/lipgloss"

// Styles define los estilos lipgloss usados por el cliente de terminal.
var Styles = struct {
	User      lipgloss.Style
	Agent     lipgloss.Style
	Heading   lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	ResultBox lipgloss.Style
}{
	User:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
	Agent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130")),
	Heading: lipgloss.NewStyle().Bold(true).Underline(true),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	Muted:   lipgloss.NewStyle().Faint(true),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

	ResultBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("137")).
		Padding(0, 1),
}
