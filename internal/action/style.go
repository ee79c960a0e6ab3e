package action

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"tasnim.dev/lbcheck/internal/model"
)

// Colors
var (
	Muted   = lipgloss.Color("#6B7280")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)

var SectionStyle = lipgloss.NewStyle().
	Foreground(Muted).
	Bold(true)

// StatusColor maps a severity to its display color.
func StatusColor(s model.Severity) color.Color {
	switch s {
	case model.StatusConsistent:
		return Success
	case model.StatusWarn:
		return Warning
	default:
		return Error
	}
}

// StatusStyle renders a severity label.
func StatusStyle(s model.Severity) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(StatusColor(s)).
		Bold(true)
}
