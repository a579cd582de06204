package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// KeyMap defines the key bindings of every screen.
type KeyMap struct {
	Quit     key.Binding
	Back     key.Binding
	NextItem key.Binding
	PrevItem key.Binding
	Activate key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		PrevItem: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// tracklistKeys limits the tracklist viewport to arrow and page keys so
// space and enter keep reaching the buttons.
func (k KeyMap) tracklistKeys() viewport.KeyMap {
	return viewport.KeyMap{
		Up:       k.Up,
		Down:     k.Down,
		PageUp:   k.PageUp,
		PageDown: k.PageDown,
	}
}

// helpKeys adapts a binding list to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// helpFor lists the bindings shown in the footer for state s.
func (k KeyMap) helpFor(s State) helpKeys {
	switch s {
	case StateInput:
		quit := k.Back
		quit.SetHelp("esc", "quit")
		return helpKeys{k.NextItem, k.Activate, quit}
	case StateSearching:
		return helpKeys{k.Quit}
	case StateResults:
		return helpKeys{k.Up, k.Down, k.NextItem, k.Activate, k.Back}
	case StateDetails:
		return helpKeys{k.NextItem, k.Activate, k.PageUp, k.PageDown, k.Back}
	}
	return nil
}
