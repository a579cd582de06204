package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/render"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

// Checkbox asks its owner to toggle it by returning action.Toggle. It does
// not flip itself, so a CheckGroup can keep siblings exclusive.
type Checkbox struct {
	box
	id      string
	label   string
	checked bool
	theme   *styles.Theme
}

// NewCheckbox creates an unchecked, unfocused checkbox.
func NewCheckbox(theme *styles.Theme, id, label string) *Checkbox {
	return &Checkbox{id: id, label: label, theme: theme}
}

// ID returns the identifier carried by the checkbox's actions.
func (c *Checkbox) ID() string { return c.id }

// Checked reports whether the box is ticked.
func (c *Checkbox) Checked() bool { return c.checked }

// SetChecked ticks or clears the box.
func (c *Checkbox) SetChecked(checked bool) { c.checked = checked }

func (c *Checkbox) Focus() { c.focused = true }
func (c *Checkbox) Blur()  { c.focused = false }

func (c *Checkbox) HandleEvent(msg tea.Msg) action.Action {
	if x, y, ok := leftPress(msg); ok {
		if !c.bounds.Contains(x, y) {
			c.Blur()
			return nil
		}
		c.Focus()
		return action.Toggle{ID: c.id}
	}
	if c.focused && isActivateKey(msg) {
		return action.Toggle{ID: c.id}
	}
	return nil
}

func (c *Checkbox) View() string {
	s := c.theme.S()

	mark := "[ ]"
	if c.checked {
		mark = "[x]"
	}

	width := c.bounds.W
	if width <= 0 {
		width = 80
	}
	text := mark + " " + render.Truncate(c.label, max(width-4, 1))

	switch {
	case c.focused:
		return s.Cursor.Render(text)
	case c.checked:
		return s.Focused.Render(text)
	default:
		return s.Base.Render(text)
	}
}
