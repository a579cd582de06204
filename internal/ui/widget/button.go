package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

// Button returns action.Activate when pressed with Enter or Space while
// focused, or clicked.
type Button struct {
	box
	id       string
	label    string
	disabled bool
	theme    *styles.Theme
}

// NewButton creates an enabled, unfocused button.
func NewButton(theme *styles.Theme, id, label string) *Button {
	return &Button{id: id, label: label, theme: theme}
}

// ID returns the identifier carried by the button's actions.
func (b *Button) ID() string { return b.id }

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// SetDisabled greys the button out. A disabled button never activates.
func (b *Button) SetDisabled(disabled bool) { b.disabled = disabled }

// Disabled reports whether the button is greyed out.
func (b *Button) Disabled() bool { return b.disabled }

func (b *Button) Focus() { b.focused = true }
func (b *Button) Blur()  { b.focused = false }

// Width returns the rendered width in cells.
func (b *Button) Width() int {
	return lipgloss.Width(b.text())
}

func (b *Button) HandleEvent(msg tea.Msg) action.Action {
	if x, y, ok := leftPress(msg); ok {
		if !b.bounds.Contains(x, y) {
			b.Blur()
			return nil
		}
		b.Focus()
		return b.activate()
	}
	if b.focused && isActivateKey(msg) {
		return b.activate()
	}
	return nil
}

func (b *Button) activate() action.Action {
	if b.disabled {
		return nil
	}
	return action.Activate{ID: b.id}
}

func (b *Button) View() string {
	s := b.theme.S()
	switch {
	case b.disabled:
		return s.Subtle.Render(b.text())
	case b.focused:
		return s.Cursor.Render(b.text())
	default:
		return s.Base.Render(b.text())
	}
}

func (b *Button) text() string {
	return "[ " + b.label + " ]"
}
