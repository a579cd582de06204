package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed-size grid of styled lines. Screens draw widgets onto it
// at their bounding boxes so the rendered position always matches the
// rectangle used for mouse hit testing.
type Canvas struct {
	width, height int
	lines         []string
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	return &Canvas{width: width, height: height, lines: lines}
}

// Put draws block with its top-left corner at (x, y). Lines falling outside
// the canvas are clipped. ANSI styling in both block and canvas is kept.
func (c *Canvas) Put(x, y int, block string) {
	if x < 0 || x >= c.width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= c.height {
			return
		}

		line = ansi.Truncate(line, c.width-x, "")
		w := ansi.StringWidth(line)
		if w == 0 {
			continue
		}

		base := c.lines[row]
		prefix := ansi.Cut(base, 0, x)
		if pw := ansi.StringWidth(prefix); pw < x {
			prefix += strings.Repeat(" ", x-pw)
		}
		suffix := ansi.Cut(base, x+w, c.width)
		c.lines[row] = prefix + line + suffix
	}
}

// String joins the canvas lines.
func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}
