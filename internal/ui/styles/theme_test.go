package styles

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestNew_AppliesOverrides(t *testing.T) {
	th := New(Overrides{Primary: "#112233", Error: "#ff0000"})

	if th.Primary != "#112233" {
		t.Errorf("Primary = %q, want %q", th.Primary, "#112233")
	}
	if th.BorderFocus != "#112233" {
		t.Errorf("BorderFocus = %q, want it to follow Primary", th.BorderFocus)
	}
	if th.Error != "#ff0000" {
		t.Errorf("Error = %q, want %q", th.Error, "#ff0000")
	}
	if th.FgMuted != Default().FgMuted {
		t.Errorf("FgMuted = %q, want default", th.FgMuted)
	}
}

func TestThemes_AreIndependent(t *testing.T) {
	a := Default()
	b := New(Overrides{Primary: "#000000"})

	if a.Primary == b.Primary {
		t.Error("overriding one theme changed another")
	}
	if a.S() == b.S() {
		t.Error("themes share a Styles value")
	}
}

func TestS_IsCached(t *testing.T) {
	th := Default()
	if th.S() != th.S() {
		t.Error("S() should build styles once")
	}
}

func TestGradient_PreservesText(t *testing.T) {
	tests := []string{"", "a", "fortyfive", "héllo wörld"}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got := ansi.Strip(Gradient(text, "#ff0000", "#0000ff", true))
			if got != text {
				t.Errorf("Gradient(%q) stripped = %q", text, got)
			}
		})
	}
}

func TestHeading(t *testing.T) {
	out := Default().Heading("fortyfive")
	if !strings.Contains(ansi.Strip(out), "fortyfive") {
		t.Errorf("Heading lost its text: %q", out)
	}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		in   lipgloss.Color
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"#a78bfa", color.RGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 255}},
		{"240", color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := ToRGBA(tt.in); got != tt.want {
				t.Errorf("ToRGBA(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
