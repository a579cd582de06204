package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string unchanged", "Prince - Kiss", "Prince - Kiss"},
		{"control characters removed", "Kiss\x07\x1b", "Kiss"},
		{"tab kept", "A\tB", "A\tB"},
		{"nbsp becomes space", "Love\u00a0Song", "Love Song"},
		{"invalid utf8 dropped", "ab\xffcd", "abcd"},
		{"accents kept", "Café Müller", "Café Müller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"abc", 6, "abc   "},
		{"abcdefghij", 6, "abc..."},
		{"日本", 6, "日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TruncateAndPad(tt.input, tt.width); got != tt.want {
				t.Errorf("TruncateAndPad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 15)
	if got != "left      right" {
		t.Errorf("Row() = %q", got)
	}

	// Never less than one space between the sides
	if got := Row("left", "right", 3); got != "left right" {
		t.Errorf("Row() overflow = %q, want %q", got, "left right")
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(3); got != "───" {
		t.Errorf("Separator(3) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
}

func TestCanvas_Put(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Put(2, 1, "ab\ncd")
	c.Put(8, 0, "xyz")

	lines := strings.Split(c.String(), "\n")
	want := []string{
		"        xy",
		"  ab      ",
		"  cd      ",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestCanvas_PutKeepsStyling(t *testing.T) {
	c := NewCanvas(8, 1)
	c.Put(0, 0, "\x1b[31mred\x1b[0m")
	c.Put(4, 0, "\x1b[32mgo\x1b[0m")

	out := c.String()
	if ansi.Strip(out) != "red go  " {
		t.Errorf("stripped = %q", ansi.Strip(out))
	}
	if !strings.Contains(out, "\x1b[31m") || !strings.Contains(out, "\x1b[32m") {
		t.Errorf("styles lost: %q", out)
	}
}

func TestCanvas_ClipsOutside(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Put(-1, 0, "a")
	c.Put(5, 0, "b")
	c.Put(0, 3, "c")
	c.Put(0, 1, "one\ntwo\nthree")

	if got := c.String(); got != "    \none " {
		t.Errorf("String() = %q", got)
	}
}
