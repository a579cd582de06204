package coverart

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/llehouerou/fortyfive/internal/ui/render"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

// Unavailable is the placeholder caption.
const Unavailable = "Image not available"

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = "▀"

// Decode decodes JPEG, PNG or GIF data, honoring EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Render draws img in a box of width x height cells, two pixels per cell
// vertically. The image keeps its aspect ratio and is centered.
func Render(img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}

	thumb := resize.Thumbnail(uint(width), uint(height*2), img, resize.Lanczos3)
	b := thumb.Bounds()
	padLeft := (width - b.Dx()) / 2
	rows := (b.Dy() + 1) / 2
	padTop := (height - rows) / 2

	blank := strings.Repeat(" ", width)
	lines := make([]string, 0, height)
	for range padTop {
		lines = append(lines, blank)
	}

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", padLeft))
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle()
			if top, ok := colorful.MakeColor(thumb.At(x, y)); ok {
				style = style.Foreground(lipgloss.Color(top.Hex()))
			}
			if y+1 < b.Max.Y {
				if bottom, ok := colorful.MakeColor(thumb.At(x, y+1)); ok {
					style = style.Background(lipgloss.Color(bottom.Hex()))
				}
			}
			sb.WriteString(style.Render(halfBlock))
		}
		sb.WriteString(strings.Repeat(" ", max(width-padLeft-b.Dx(), 0)))
		lines = append(lines, sb.String())
	}

	for len(lines) < height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

// Placeholder draws a bordered tile of width x height cells with label
// centered inside. Used when an image is missing or failed to load.
func Placeholder(theme *styles.Theme, width, height int, label string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if width < 3 || height < 3 {
		return strings.TrimSuffix(strings.Repeat(strings.Repeat("░", width)+"\n", height), "\n")
	}

	inner := width - 2
	text := label
	if lipgloss.Width(text) > inner*(height-2) {
		// Too small for the caption: fall back to a short mark
		text = render.Truncate("N/A", inner)
		if lipgloss.Width(text) > inner {
			text = ""
		}
	}

	return theme.Panel(false).
		Width(inner).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.FgSubtle).
		Render(text)
}

// FromBytes decodes data and renders it, or returns the placeholder tile
// when data is not a usable image.
func FromBytes(theme *styles.Theme, data []byte, width, height int) (string, error) {
	img, err := Decode(data)
	if err != nil {
		return Placeholder(theme, width, height, Unavailable), err
	}
	return Render(img, width, height), nil
}
