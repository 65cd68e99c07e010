package tui

import "github.com/charmbracelet/bubbles/key"

// PreviewKeyMap defines the key bindings of the scenario preview.
type PreviewKeyMap struct {
	Pause      key.Binding
	Step       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Restart    key.Binding
	Difficulty key.Binding
	History    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Next, k.Prev, k.Difficulty, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Restart},
		{k.Next, k.Prev, k.Difficulty},
		{k.History, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultPreviewKeyMap returns default key bindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "step frame"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "down", "j"),
			key.WithHelp("n", "next seed"),
		),
		Prev: key.NewBinding(
			key.WithKeys("N", "up", "k"),
			key.WithHelp("N", "prev seed"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("d", "tab"),
			key.WithHelp("d", "difficulty"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history"),
			key.WithDisabled(),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
