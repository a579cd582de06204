// Package widget implements the focusable form controls used by every
// screen: text inputs, buttons and checkboxes, plus the groups that cycle
// focus among them and keep checkboxes mutually exclusive.
package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fortyfive/internal/ui/action"
)

// Widget is a focusable control. HandleEvent returns nil when the event
// did not produce an action.
type Widget interface {
	HandleEvent(msg tea.Msg) action.Action
	View() string

	Focus()
	Blur()
	Focused() bool

	SetBounds(r Rect)
	Bounds() Rect
}

// Rect is a widget's bounding box in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// box stores bounds and focus for embedding.
type box struct {
	bounds  Rect
	focused bool
}

func (b *box) SetBounds(r Rect) { b.bounds = r }
func (b *box) Bounds() Rect     { return b.bounds }
func (b *box) Focused() bool    { return b.focused }

// leftPress returns the click position of a left-button press.
func leftPress(msg tea.Msg) (x, y int, ok bool) {
	m, isMouse := msg.(tea.MouseMsg)
	if !isMouse || m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return 0, 0, false
	}
	return m.X, m.Y, true
}

func isActivateKey(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch k.String() {
	case "enter", " ", "space":
		return true
	}
	return false
}
