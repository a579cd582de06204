package coverart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func assertBox(t *testing.T, out string, width, height int) {
	t.Helper()
	lines := strings.Split(out, "\n")
	if len(lines) != height {
		t.Fatalf("got %d lines, want %d", len(lines), height)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
}

func TestDecode(t *testing.T) {
	img, err := Decode(testPNG(t, 4, 6))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 4x6", b)
	}

	if _, err := Decode(nil); err == nil {
		t.Error("Decode(nil) should fail")
	}
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Error("Decode(garbage) should fail")
	}
}

func TestRender_FillsBox(t *testing.T) {
	tests := []struct {
		name          string
		imgW, imgH    int
		width, height int
	}{
		{"square image", 100, 100, 16, 8},
		{"wide image", 200, 50, 16, 8},
		{"tall image", 50, 200, 16, 8},
		{"tiny image", 2, 2, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(testPNG(t, tt.imgW, tt.imgH))
			if err != nil {
				t.Fatal(err)
			}
			out := Render(img, tt.width, tt.height)
			assertBox(t, out, tt.width, tt.height)
			if !strings.Contains(out, halfBlock) {
				t.Error("rendered art has no pixels")
			}
		})
	}
}

func TestRender_Degenerate(t *testing.T) {
	if Render(nil, 10, 5) != "" {
		t.Error("Render(nil) should be empty")
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if Render(img, 0, 5) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestPlaceholder(t *testing.T) {
	th := styles.Default()

	out := Placeholder(th, 24, 8, Unavailable)
	assertBox(t, out, 24, 8)
	if !strings.Contains(ansi.Strip(out), Unavailable) {
		t.Errorf("placeholder missing caption:\n%s", ansi.Strip(out))
	}

	small := Placeholder(th, 8, 4, Unavailable)
	assertBox(t, small, 8, 4)
	if strings.Contains(ansi.Strip(small), "Image") {
		t.Error("tiny tile should not try to fit the full caption")
	}

	assertBox(t, Placeholder(th, 2, 2, Unavailable), 2, 2)

	if Placeholder(th, 0, 3, "x") != "" {
		t.Error("zero width placeholder should be empty")
	}
}

func TestFromBytes(t *testing.T) {
	th := styles.Default()

	out, err := FromBytes(th, testPNG(t, 10, 10), 8, 4)
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	assertBox(t, out, 8, 4)

	out, err = FromBytes(th, []byte("broken"), 24, 8)
	if err == nil {
		t.Error("FromBytes(broken) should report the decode error")
	}
	if !strings.Contains(ansi.Strip(out), Unavailable) {
		t.Error("FromBytes(broken) should fall back to the placeholder")
	}
}
