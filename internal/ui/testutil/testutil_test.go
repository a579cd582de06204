package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStripANSI(t *testing.T) {
	if got := StripANSI("\x1b[1;35mBold\x1b[0m text"); got != "Bold text" {
		t.Errorf("StripANSI() = %q, want %q", got, "Bold text")
	}
}

func TestLineIndex(t *testing.T) {
	out := "first\n\x1b[31msecond\x1b[0m\nthird"
	if got := LineIndex(out, "second"); got != 1 {
		t.Errorf("LineIndex() = %d, want 1", got)
	}
	if got := LineIndex(out, "missing"); got != -1 {
		t.Errorf("LineIndex() = %d, want -1", got)
	}
}

func TestKey(t *testing.T) {
	tests := []string{"enter", "tab", "shift+tab", "esc", "ctrl+c", "backspace", "up", "down", "a", "q"}

	for _, k := range tests {
		t.Run(k, func(t *testing.T) {
			if got := Key(k).String(); got != k {
				t.Errorf("Key(%q).String() = %q", k, got)
			}
		})
	}
}

func TestClick(t *testing.T) {
	m := Click(3, 4)
	if m.X != 3 || m.Y != 4 {
		t.Errorf("Click position = (%d,%d), want (3,4)", m.X, m.Y)
	}
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		t.Errorf("Click = %+v, want left press", m)
	}
}

func TestExecuteCmd_UnwrapsBatch(t *testing.T) {
	type done struct{}
	cmd := tea.Batch(nil, func() tea.Msg { return done{} })

	if _, ok := ExecuteCmd(cmd).(done); !ok {
		t.Error("ExecuteCmd should return the batched message")
	}
	if ExecuteCmd(nil) != nil {
		t.Error("ExecuteCmd(nil) should be nil")
	}
}
