package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fortyfive/internal/ui/action"
)

// FocusGroup holds the widgets of one screen in tab order. At most one is
// focused. Every operation is safe on an empty group.
//
// A left click on empty space blurs the whole group (Index returns -1)
// rather than keeping the previous focus, so a stray click never leaves a
// text field capturing keys. Tab then focuses the first widget and
// Shift+Tab the last.
type FocusGroup struct {
	items []Widget
	index int // -1 when nothing is focused
}

// NewFocusGroup creates a group and focuses its first widget.
func NewFocusGroup(items ...Widget) *FocusGroup {
	g := &FocusGroup{index: -1}
	for _, w := range items {
		g.Add(w)
	}
	if len(g.items) > 0 {
		g.FocusIndex(0)
	}
	return g
}

// Add appends w to the tab order, unfocused.
func (g *FocusGroup) Add(w Widget) {
	w.Blur()
	g.items = append(g.items, w)
}

// Len returns the number of widgets.
func (g *FocusGroup) Len() int { return len(g.items) }

// Index returns the focused position, or -1.
func (g *FocusGroup) Index() int { return g.index }

// Items returns the widgets in tab order.
func (g *FocusGroup) Items() []Widget { return g.items }

// Current returns the focused widget, or nil.
func (g *FocusGroup) Current() Widget {
	if g.index < 0 || g.index >= len(g.items) {
		return nil
	}
	return g.items[g.index]
}

// Next moves focus to the following widget, wrapping around.
// With nothing focused it focuses the first one.
func (g *FocusGroup) Next() {
	if len(g.items) == 0 {
		return
	}
	g.FocusIndex((g.index + 1) % len(g.items))
}

// Prev moves focus to the preceding widget, wrapping around.
func (g *FocusGroup) Prev() {
	n := len(g.items)
	if n == 0 {
		return
	}
	if g.index < 0 {
		g.FocusIndex(n - 1)
		return
	}
	g.FocusIndex((g.index - 1 + n) % n)
}

// FocusIndex focuses the widget at i and blurs every other one.
// Out of range indexes are ignored.
func (g *FocusGroup) FocusIndex(i int) {
	if i < 0 || i >= len(g.items) {
		return
	}
	for j, w := range g.items {
		if j == i {
			w.Focus()
		} else {
			w.Blur()
		}
	}
	g.index = i
}

// Focus focuses w if it belongs to the group.
func (g *FocusGroup) Focus(w Widget) {
	for i, item := range g.items {
		if item == w {
			g.FocusIndex(i)
			return
		}
	}
}

// Blur leaves the group with nothing focused.
func (g *FocusGroup) Blur() {
	for _, w := range g.items {
		w.Blur()
	}
	g.index = -1
}

// HandleEvent routes msg. Tab and Shift+Tab cycle focus. Other keys go to
// the focused widget only. A left click goes to every widget so each can
// take or drop focus, and the group then follows whichever took it. When
// no widget was hit nothing stays focused.
func (g *FocusGroup) HandleEvent(msg tea.Msg) action.Action {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			g.Next()
			return nil
		case "shift+tab":
			g.Prev()
			return nil
		}
		if cur := g.Current(); cur != nil {
			return cur.HandleEvent(msg)
		}
		return nil

	case tea.MouseMsg:
		if _, _, ok := leftPress(msg); !ok {
			return nil
		}
		var result action.Action
		for _, w := range g.items {
			if a := w.HandleEvent(msg); a != nil && result == nil {
				result = a
			}
		}
		g.index = -1
		for i, w := range g.items {
			if w.Focused() {
				g.FocusIndex(i)
				break
			}
		}
		return result
	}
	return nil
}

// CheckGroup keeps a set of checkboxes mutually exclusive: checking one
// clears the others.
type CheckGroup struct {
	boxes []*Checkbox
}

// NewCheckGroup creates a group over boxes.
func NewCheckGroup(boxes ...*Checkbox) *CheckGroup {
	return &CheckGroup{boxes: boxes}
}

// Boxes returns the checkboxes in order.
func (g *CheckGroup) Boxes() []*Checkbox { return g.boxes }

// IndexOf returns the position of the checkbox with the given ID, or -1.
func (g *CheckGroup) IndexOf(id string) int {
	for i, b := range g.boxes {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

// Check ticks the box at i and clears all others.
func (g *CheckGroup) Check(i int) {
	if i < 0 || i >= len(g.boxes) {
		return
	}
	for j, b := range g.boxes {
		b.SetChecked(j == i)
	}
}

// Toggle clears the box at i when it is ticked, otherwise checks it.
func (g *CheckGroup) Toggle(i int) {
	if i < 0 || i >= len(g.boxes) {
		return
	}
	if g.boxes[i].Checked() {
		g.boxes[i].SetChecked(false)
		return
	}
	g.Check(i)
}

// Apply handles a Toggle action aimed at one of the group's boxes.
// It reports whether the action was consumed.
func (g *CheckGroup) Apply(a action.Action) bool {
	t, ok := a.(action.Toggle)
	if !ok {
		return false
	}
	i := g.IndexOf(t.ID)
	if i < 0 {
		return false
	}
	g.Toggle(i)
	return true
}

// Selected returns the ticked position, if any.
func (g *CheckGroup) Selected() (int, bool) {
	for i, b := range g.boxes {
		if b.Checked() {
			return i, true
		}
	}
	return -1, false
}
