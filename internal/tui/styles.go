package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	tagLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Italic(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	// personColors maps a person's color tag to an ANSI color. Dark variants
	// are drawn bold in the same hue.
	personColors = map[string]lipgloss.Color{
		"blue":   lipgloss.Color("4"),
		"green":  lipgloss.Color("2"),
		"red":    lipgloss.Color("1"),
		"yellow": lipgloss.Color("3"),
		"orange": lipgloss.Color("208"),
		"purple": lipgloss.Color("5"),
		"pink":   lipgloss.Color("13"),
		"teal":   lipgloss.Color("6"),
		"grey":   lipgloss.Color("8"),
		"gray":   lipgloss.Color("8"),
	}
)

func personStyle(tag string) lipgloss.Style {
	tag = strings.ToLower(strings.TrimSpace(tag))
	style := lipgloss.NewStyle()
	if base, ok := strings.CutPrefix(tag, "dark"); ok {
		tag = base
		style = style.Bold(true)
	}
	if c, ok := personColors[tag]; ok {
		style = style.Foreground(c)
	}
	return style
}
