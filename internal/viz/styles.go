package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	text     lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	panel    lipgloss.Style
	badge    lipgloss.Style
	warning  lipgloss.Style
	progress lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		badge:    lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000")),
		warning:  lipgloss.NewStyle().Foreground(t.Warning),
		progress: lipgloss.NewStyle().Foreground(t.Sorted),
	}
}

func (s styles) modeBadge(t Theme, mode string) string {
	bg := t.Muted
	switch mode {
	case "running":
		bg = t.Primary
	case "paused":
		bg = t.Compare
	case "finished":
		bg = t.Sorted
	}
	return s.badge.Background(bg).Render(strings.ToUpper(mode))
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Separator draws a muted rule with a center mark.
func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	return strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1)
}
