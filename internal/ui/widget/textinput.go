package widget

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/render"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

const labelWidth = 8

// TextInput is a labelled single-line input. Focus doubles as edit mode:
// keystrokes reach the input only while it is focused.
type TextInput struct {
	box
	id          string
	label       string
	placeholder string
	input       textinput.Model
	theme       *styles.Theme
}

// NewTextInput creates an unfocused input.
func NewTextInput(theme *styles.Theme, id, label, placeholder string) *TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 30
	ti.TextStyle = theme.S().Base
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Blur()

	return &TextInput{
		id:          id,
		label:       label,
		placeholder: placeholder,
		input:       ti,
		theme:       theme,
	}
}

// ID returns the identifier carried by the input's actions.
func (t *TextInput) ID() string { return t.id }

// Value returns the typed text. The placeholder is never part of it.
func (t *TextInput) Value() string { return t.input.Value() }

// SetValue replaces the text.
func (t *TextInput) SetValue(s string) {
	t.input.SetValue(s)
	t.input.CursorEnd()
}

// Focus enters edit mode.
func (t *TextInput) Focus() {
	t.focused = true
	_ = t.input.Focus()
}

// Blur leaves edit mode. The text is kept.
func (t *TextInput) Blur() {
	t.focused = false
	t.input.Blur()
}

// SetBounds also sizes the editable field to what is left after the label.
func (t *TextInput) SetBounds(r Rect) {
	t.bounds = r
	t.input.Width = max(r.W-labelWidth-1, 1)
}

// HandleEvent edits the text while focused. Enter submits. A left click
// inside the bounds focuses the input and one outside blurs it.
func (t *TextInput) HandleEvent(msg tea.Msg) action.Action {
	if x, y, ok := leftPress(msg); ok {
		if t.bounds.Contains(x, y) {
			t.Focus()
		} else {
			t.Blur()
		}
		return nil
	}

	if !t.focused {
		return nil
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if k.String() == "enter" {
		return action.Submit{ID: t.id, Value: t.Value()}
	}
	t.input, _ = t.input.Update(k)
	return nil
}

// View renders "Label  text". An empty, unfocused input shows its
// placeholder instead of the text.
func (t *TextInput) View() string {
	s := t.theme.S()

	labelStyle := s.Muted
	if t.focused {
		labelStyle = s.Focused
	}
	label := labelStyle.Render(render.Pad(t.label, labelWidth))

	var field string
	if t.Value() == "" && !t.focused {
		field = s.Subtle.Italic(true).Render(render.Truncate(t.placeholder, t.input.Width))
	} else {
		field = t.input.View()
	}
	return label + " " + field
}
