package cmd

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	projectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// formatDate renders t relative to now in loc, or a dash when unknown
func formatDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "—"
	}
	local := t.In(loc)
	diff := time.Since(*t)
	switch {
	case diff >= 0 && diff < 24*time.Hour:
		return local.Format("Today 15:04")
	case diff >= 0 && diff < 7*24*time.Hour:
		return local.Format("Mon 15:04")
	case diff >= 0 && diff < 365*24*time.Hour:
		return local.Format("Jan 02 15:04")
	default:
		return local.Format("2006-01-02")
	}
}
