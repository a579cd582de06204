package app

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/fortyfive/internal/coverart"
	"github.com/llehouerou/fortyfive/internal/ui/popup"
	"github.com/llehouerou/fortyfive/internal/ui/render"
	"github.com/llehouerou/fortyfive/internal/ui/widget"
)

const appTitle = "fortyfive"

// View renders the active screen. Widgets are drawn at their bounds.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	c := render.NewCanvas(m.width, m.height)
	screen := m.state
	if screen == StateSearching {
		screen = m.under
	}
	switch screen {
	case StateResults:
		m.drawResults(c)
	case StateDetails:
		m.drawDetails(c)
	default:
		m.drawInput(c)
	}
	m.drawFooter(c)
	view := c.String()

	switch {
	case m.state == StateSearching:
		view = popup.Compose(view, m.searchingView(), m.width, m.height)
	case m.confirm.Active():
		box := popup.RenderBordered(m.theme, m.confirm.View(), m.width, m.height)
		view = popup.Compose(view, box, m.width, m.height)
	}
	return view
}

func (m *Model) drawHeader(c *render.Canvas, subtitle string) {
	line := m.theme.Heading(appTitle)
	if subtitle != "" {
		line += "  " + m.theme.S().Muted.Render(render.Truncate(subtitle, max(m.width-len(appTitle)-6, 1)))
	}
	c.Put(2, 0, line)
}

func drawWidgets(c *render.Canvas, items []widget.Widget) {
	for _, w := range items {
		b := w.Bounds()
		if b.W == 0 {
			continue
		}
		c.Put(b.X, b.Y, w.View())
	}
}

func (m *Model) drawFooter(c *render.Canvas) {
	if m.status != "" {
		style := m.theme.S().Muted
		if m.statusErr {
			style = m.theme.S().Error
		}
		c.Put(2, m.height-2, style.Render(render.Truncate(m.status, max(m.width-4, 1))))
	}
	c.Put(2, m.height-1, m.help.View(m.keys.helpFor(m.state)))
}

func (m *Model) drawInput(c *render.Canvas) {
	m.drawHeader(c, `7" 45 RPM search`)
	drawWidgets(c, m.form.group.Items())
	if m.filePath != "" {
		b := m.form.search.Bounds()
		c.Put(2, b.Y+2, m.theme.S().Subtle.Render("File: "+filepath.Base(m.filePath)))
	}
}

func (m *Model) drawResults(c *render.Canvas) {
	s := m.results
	st := m.theme.S()
	m.drawHeader(c, fmt.Sprintf("%q", s.page.Query))
	c.Put(2, 1, st.Subtle.Render(pageInfo(s)))

	if len(s.page.Releases) == 0 {
		c.Put(2, listTop, st.Base.Render("No results found."))
	}

	for i, b := range s.boxes.Boxes() {
		bounds := b.Bounds()
		if bounds.W == 0 {
			continue
		}
		if m.thumbnails {
			tile := s.thumbs[i]
			if tile == "" {
				tile = coverart.Placeholder(m.theme, thumbWidth, thumbRows, "…")
			}
			c.Put(2, bounds.Y, tile)
		}
		c.Put(bounds.X, bounds.Y, b.View())
		detail := render.Truncate(detailLine(s.page.Releases[i]), max(bounds.W-4, 1))
		c.Put(bounds.X+4, bounds.Y+1, st.Muted.Render(detail))
	}

	drawWidgets(c, []widget.Widget{s.back, s.sel, s.next})
}

func pageInfo(s *resultsScreen) string {
	info := fmt.Sprintf("Page %d", s.page.Number)
	if s.page.Pages > 0 {
		info += fmt.Sprintf(" of %d", s.page.Pages)
	}
	if s.page.Items > 0 {
		info += " · " + humanize.Comma(int64(s.page.Items)) + " records"
	}
	if n := len(s.page.Releases); n > 0 {
		last := min(s.offset+s.visible, n)
		info += fmt.Sprintf(" · showing %d-%d of %d singles", s.offset+1, last, n)
	}
	return info
}

func (m *Model) drawDetails(c *render.Canvas) {
	d := m.details
	st := m.theme.S()
	m.drawHeader(c, d.release.Display())

	c.Put(2, detailsTop, d.coverView)
	if size := d.coverSize(); size != "" {
		c.Put(2, detailsTop+coverRows, st.Subtle.Render(size))
	}

	valueWidth := max(m.width-d.fieldX-2-10, 1)
	y := detailsTop
	for _, f := range d.fields() {
		c.Put(d.fieldX, y, st.Label.Render(render.Pad(f[0]+":", 10))+st.Base.Render(render.Truncate(f[1], valueWidth)))
		y++
	}
	y++
	c.Put(d.fieldX, y, st.Title.Render("Tracklist"))
	c.Put(d.fieldX, y+1, d.tracks.View())

	drawWidgets(c, d.group.Items())
}

func (m *Model) searchingView() string {
	d := popup.New(m.theme)
	d.Title = "Searching..."
	d.Content = fmt.Sprintf("%s %s\npage %d", m.spinner.View(), m.query, m.page)
	d.Footer = "ctrl+c to quit"
	return d.Render(m.width, m.height)
}
