package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the switch screen.
type KeyMap struct {
	Tap       key.Binding
	Open      key.Binding
	Close     key.Binding
	Shape     key.Binding
	Slideable key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tap: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "close"),
		),
		Shape: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shape"),
		),
		Slideable: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lock/unlock"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Open, k.Close, k.Shape, k.Slideable, k.Quit}
}

// FullHelp returns all bindings grouped by row.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Open, k.Close},
		{k.Shape, k.Slideable},
		{k.Quit, k.ForceQuit},
	}
}
