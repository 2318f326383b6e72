package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)

	DetailPane = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Background(Mantle)
)

// Status colors a wager or draft status label.
func Status(status string) string {
	style := lipgloss.NewStyle().Bold(true)
	switch status {
	case "PENDING", "audio_only":
		style = style.Foreground(Subtext0)
	case "DUE", "transcribed":
		style = style.Foreground(Yellow)
	case "AUDITED", "complete":
		style = style.Foreground(Green)
	default:
		style = style.Foreground(Text)
	}
	return style.Render(status)
}

// Score colors an accuracy score: green from 70, yellow from 40, red below.
func Score(score int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(Red)
	switch {
	case score >= 70:
		style = style.Foreground(Green)
	case score >= 40:
		style = style.Foreground(Yellow)
	}
	return style.Render(strconv.Itoa(score) + "%")
}
