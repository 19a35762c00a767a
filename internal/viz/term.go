package viz

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var hasDarkBackground = termenv.HasDarkBackground

// ConfigureOutput picks the lipgloss color profile for headless output: full
// color on a terminal, plain text otherwise.
func ConfigureOutput(f *os.File, noColor bool) {
	if noColor || !isatty.IsTerminal(f.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(f).ColorProfile())
}

// ResolveTheme chooses the theme. An explicit configured theme wins, then the
// persisted preference, then the terminal background.
func ResolveTheme(configured, persisted string) Theme {
	switch configured {
	case ThemeDark.Name, ThemeLight.Name:
		return GetTheme(configured)
	}
	switch persisted {
	case ThemeDark.Name, ThemeLight.Name:
		return GetTheme(persisted)
	}
	if hasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}
