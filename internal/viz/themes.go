package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for bars and chrome.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Compare lipgloss.Color
	Swap    lipgloss.Color
	Sorted  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:    "dark",
		Primary: lipgloss.Color("#7aa2f7"),
		Compare: lipgloss.Color("#e0af68"),
		Swap:    lipgloss.Color("#f7768e"),
		Sorted:  lipgloss.Color("#9ece6a"),
		Text:    lipgloss.Color("#c0caf5"),
		Muted:   lipgloss.Color("#565f89"),
		Accent:  lipgloss.Color("#bb9af7"),
		Border:  lipgloss.Color("#3b4261"),
		Warning: lipgloss.Color("#ff9e64"),
	}

	ThemeLight = Theme{
		Name:    "light",
		Primary: lipgloss.Color("#2e7de9"),
		Compare: lipgloss.Color("#8c6c3e"),
		Swap:    lipgloss.Color("#d20065"),
		Sorted:  lipgloss.Color("#387068"),
		Text:    lipgloss.Color("#3760bf"),
		Muted:   lipgloss.Color("#848cb5"),
		Accent:  lipgloss.Color("#7847bd"),
		Border:  lipgloss.Color("#a8aecb"),
		Warning: lipgloss.Color("#b15c00"),
	}

	Themes = []Theme{ThemeDark, ThemeLight}
)

// GetTheme returns a theme by name, falling back to dark.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == ThemeDark.Name {
		return ThemeLight
	}
	return ThemeDark
}
