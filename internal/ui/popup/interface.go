package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal drawn over the current screen. While it is active the
// owning screen routes every key to it, and View returns the body that
// RenderBordered frames.
type Popup interface {
	Active() bool
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string

	// SetSize follows the terminal size; an unsized popup renders nothing.
	SetSize(width, height int)
}
