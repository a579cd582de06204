package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Heading renders text in bold with the theme's Primary to Secondary
// gradient.
func (t *Theme) Heading(text string) string {
	return Gradient(text, t.Primary, t.Secondary, true)
}

// Gradient colors each grapheme of text along a blend from one color to
// another. Blending happens in HCL space.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().Bold(bold)
	if len(clusters) == 1 {
		return style.Foreground(from).Render(text)
	}

	c1 := toColorful(from)
	c2 := toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		hex := c1.BlendHcl(c2, float64(i)/last).Clamped().Hex()
		b.WriteString(style.Foreground(lipgloss.Color(hex)).Render(cluster))
	}
	return b.String()
}

// ToRGBA converts a hex lipgloss color. ANSI palette indexes come back as
// neutral gray.
func ToRGBA(c lipgloss.Color) color.RGBA {
	cf := toColorful(c)
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func toColorful(c lipgloss.Color) colorful.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
