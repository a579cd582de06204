// Package popup renders centered dialogs and composites them over the
// screen underneath.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/fortyfive/internal/ui/render"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

// Style configures the popup appearance.
type Style struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	TitleStyle  lipgloss.Style
	FooterStyle lipgloss.Style
}

// DefaultStyle returns the popup style for theme t.
func DefaultStyle(t *styles.Theme) Style {
	return Style{
		Border:      lipgloss.RoundedBorder(),
		BorderColor: t.Border,
		TitleStyle:  t.S().Title,
		FooterStyle: t.S().Subtle,
	}
}

// Dialog represents a simple centered popup with title, content, and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Width   int // 0 = auto-fit content
	Height  int // 0 = auto-fit content
	Style   Style
}

// New creates a new dialog styled by theme t.
func New(t *styles.Theme) *Dialog {
	return &Dialog{
		Style: DefaultStyle(t),
	}
}

// Render returns the dialog as a string ready to be overlaid.
// termWidth and termHeight are the terminal dimensions for centering.
func (p *Dialog) Render(termWidth, termHeight int) string {
	style := p.Style

	// Calculate content width
	contentWidth := p.Width
	if contentWidth == 0 {
		// Auto-fit: find widest line
		contentWidth = maxLineWidth(p.Content)
		contentWidth = max(contentWidth, lipgloss.Width(p.Title), lipgloss.Width(p.Footer))
		contentWidth += 2 // padding
	}

	// Limit to terminal width
	maxWidth := termWidth - 4
	if contentWidth > maxWidth {
		contentWidth = maxWidth
	}

	innerWidth := contentWidth
	// Width below includes the horizontal padding
	textWidth := max(innerWidth-2, 1)

	lines := make([]string, 0, strings.Count(p.Content, "\n")+5)

	if p.Title != "" {
		titleText := style.TitleStyle.Render(ansi.Truncate(p.Title, textWidth, "..."))
		lines = append(lines, centerLine(titleText, textWidth), "")
	}

	for line := range strings.SplitSeq(p.Content, "\n") {
		if lipgloss.Width(line) > textWidth {
			line = ansi.Truncate(line, textWidth, "...")
		}
		lines = append(lines, padLine(line, textWidth))
	}

	if p.Footer != "" {
		footerText := style.FooterStyle.Render(ansi.Truncate(p.Footer, textWidth, "..."))
		lines = append(lines, "", centerLine(footerText, textWidth))
	}

	// Apply border and padding
	content := strings.Join(lines, "\n")
	boxStyle := lipgloss.NewStyle().
		Border(style.Border).
		BorderForeground(style.BorderColor).
		Padding(0, 1).
		Width(innerWidth)

	box := boxStyle.Render(content)

	// Center in terminal
	return centerBox(box, termWidth, termHeight)
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		w := lipgloss.Width(line)
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}

func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}

func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func centerBox(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-maxLineWidth(box))/2, 0)

	var result strings.Builder
	for range padTop {
		result.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}

// RenderBordered wraps pre-rendered content in a highlighted rounded border
// sized to the content and centers it. The box never gets closer than two
// cells to any screen edge.
func RenderBordered(t *styles.Theme, content string, screenW, screenH int) string {
	width, height := boxSize(content, screenW, screenH)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Width(width-2).
		Height(height-2).
		Padding(1, 2).
		Render(content)
	return centerBox(box, screenW, screenH)
}

// boxSize returns the outer box dimensions for content: padding and border
// added, clamped to the screen.
func boxSize(content string, screenW, screenH int) (width, height int) {
	width = min(maxLineWidth(content)+6, screenW-4)
	height = min(strings.Count(content, "\n")+5, screenH-4)
	return width, height
}

// Compose overlays popupView on top of base. Leading and trailing blank
// cells of each overlay line are transparent; everything between replaces
// the base. Styling on both sides is kept.
func Compose(base, popupView string, width, height int) string {
	c := render.NewCanvas(width, height)
	c.Put(0, 0, base)

	for i, line := range strings.Split(popupView, "\n") {
		visible := strings.TrimRight(ansi.Strip(line), " ")
		body := strings.TrimLeft(visible, " ")
		if body == "" {
			continue
		}
		start := len(visible) - len(body)
		c.Put(start, i, ansi.Cut(line, start, ansi.StringWidth(visible)))
	}
	return c.String()
}
