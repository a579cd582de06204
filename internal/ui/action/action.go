// Package action defines the values widgets and dialogs hand back to the
// screen that owns them.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action represents an action from a UI component.
// The ActionType method returns a string identifier for logging/debugging.
type Action interface {
	ActionType() string
}

// Msg wraps a UI action with its source component name.
// Dialogs deliver their results to the app this way.
type Msg struct {
	Source string // Component name: "confirm", etc.
	Action Action
}

// Ensure Msg implements tea.Msg (compile-time check).
var _ tea.Msg = Msg{}

// Activate is returned by a button that was pressed.
type Activate struct {
	ID string
}

func (Activate) ActionType() string { return "activate" }

// Toggle is returned by a checkbox asking its owner to flip it.
type Toggle struct {
	ID string
}

func (Toggle) ActionType() string { return "toggle" }

// Submit is returned by a text input when Enter is pressed in it.
type Submit struct {
	ID    string
	Value string
}

func (Submit) ActionType() string { return "submit" }
