package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorLime    = "154" // Primary accent (#AFFF00)
	ColorLimeDim = "106" // Dimmed lime for labels
	ColorWhite   = "255" // Summary lines
	ColorGray    = "245" // Secondary text
	ColorRed     = "196" // Errors
	ColorYellow  = "220" // Warnings
)

// Styles holds the lipgloss styles used for styled reports.
type Styles struct {
	Header  lipgloss.Style
	Summary lipgloss.Style
	Label   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the lime-accented report styles.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Summary: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
	}
}

// NoColorStyles returns unstyled components.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Summary: lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
	}
}

func (s Styles) palette() palette {
	return palette{
		header:  render(s.Header),
		summary: render(s.Summary),
		label:   render(s.Label),
		warning: render(s.Warning),
	}
}

func render(style lipgloss.Style) paint {
	return func(t string) string { return style.Render(t) }
}
