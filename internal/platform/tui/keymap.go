package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the playground key bindings.
type KeyMap struct {
	Boundary key.Binding
	Clamping key.Binding
	Offset   key.Binding
	Copy     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Boundary, k.Clamping, k.Offset, k.Copy, k.Back, k.Quit}
}

// FullHelp returns key bindings grouped by concern. The playground only
// shows the short form since its layout reserves a single help row.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Boundary, k.Clamping, k.Offset},
		{k.Copy, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Boundary: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle frame"),
		),
		Clamping: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle clamping"),
		),
		Offset: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle offset fix"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy transform"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
