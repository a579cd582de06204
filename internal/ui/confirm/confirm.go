// Package confirm provides a yes/no confirmation popup component.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/popup"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
	"github.com/llehouerou/fortyfive/internal/ui/widget"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

const (
	yesID = "yes"
	noID  = "no"
)

// Model is a yes/no confirmation popup. The No button has focus when the
// dialog opens.
type Model struct {
	theme   *styles.Theme
	width   int
	height  int
	title   string
	message string
	context any
	active  bool

	yes     *widget.Button
	no      *widget.Button
	buttons *widget.FocusGroup
}

// New creates a new confirmation model.
func New(theme *styles.Theme) Model {
	return Model{
		theme: theme,
		yes:   widget.NewButton(theme, yesID, "Yes"),
		no:    widget.NewButton(theme, noID, "No"),
	}
}

// Show displays the confirmation popup.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.SetSize(width, height)
	m.active = true
	m.buttons = widget.NewFocusGroup(m.yes, m.no)
	m.buttons.Focus(m.no)
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

// Active implements popup.Popup.
func (m *Model) Active() bool {
	return m.active
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m, m.finish(true)
	case "esc", "n", "N":
		return m, m.finish(false)
	case "left", "h":
		m.buttons.Prev()
		return m, nil
	case "right", "l":
		m.buttons.Next()
		return m, nil
	}

	if act, ok := m.buttons.HandleEvent(keyMsg).(action.Activate); ok {
		return m, m.finish(act.ID == yesID)
	}
	return m, nil
}

func (m *Model) finish(confirmed bool) tea.Cmd {
	m.active = false
	ctx := m.context
	return func() tea.Msg {
		return ActionMsg(Result{Confirmed: confirmed, Context: ctx})
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.active || m.width == 0 || m.height == 0 {
		return ""
	}
	s := m.theme.S()

	title := s.Title.Render(m.title)
	message := s.Base.Render(m.message)
	buttons := m.yes.View() + "  " + m.no.View()
	hint := s.Subtle.Render("y/n · ←/→ choose · enter select")

	return title + "\n\n" + message + "\n\n" + buttons + "\n\n" + hint
}
