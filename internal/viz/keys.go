package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Generate key.Binding
	Start    key.Binding
	Pause    key.Binding
	Stop     key.Binding
	Back     key.Binding
	Forward  key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Bigger   key.Binding
	Smaller  key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "new sequence")),
		Start:    key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "sort")),
		Pause:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/play")),
		Stop:     key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "stop")),
		Back:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "step back")),
		Forward:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "step forward")),
		Faster:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Bigger:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more bars")),
		Smaller:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "fewer bars")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Back, k.Forward, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Start, k.Pause, k.Stop},
		{k.Back, k.Forward, k.Faster, k.Slower},
		{k.Bigger, k.Smaller, k.Theme, k.Help, k.Quit},
	}
}
