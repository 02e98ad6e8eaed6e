package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	footer      lipgloss.Style
	accent      lipgloss.Style
	border      lipgloss.Color
}

func newTheme(correct, incorrect, pending, current, footer, accent string) theme {
	return theme{
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color(correct)),
		incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color(incorrect)),
		pending:     lipgloss.NewStyle().Foreground(lipgloss.Color(pending)),
		currentWord: lipgloss.NewStyle().Foreground(lipgloss.Color(current)),
		footer:      lipgloss.NewStyle().Foreground(lipgloss.Color(footer)),
		accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		border:      lipgloss.Color(footer),
	}
}

var (
	darkTheme  = newTheme("#F0F0F0", "#FF4D4F", "#8C8C8C", "#C89A3A", "#6E6E6E", "#C89A3A")
	lightTheme = newTheme("#1F1F1F", "#CF1322", "#A0A0A0", "#AD6800", "#8C8C8C", "#AD6800")
)

func themeFor(name string) theme {
	if name == "light" {
		return lightTheme
	}
	return darkTheme
}
