package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/fortyfive/internal/app/handler"
	"github.com/llehouerou/fortyfive/internal/coverart"
	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
	"github.com/llehouerou/fortyfive/internal/ui/widget"
)

// Results list geometry.
const (
	listTop    = 3
	rowHeight  = 4 // title, details, thumbnail bottom, gap
	thumbWidth = 6
	thumbRows  = 3
)

// resultsScreen shows one filtered page: a checkbox per release, its
// thumbnail and the Back/Select/Next buttons.
type resultsScreen struct {
	page SearchResultPage
	err  error

	boxes   *widget.CheckGroup
	thumbs  []string // rendered tiles, "" until loaded
	loading int      // row whose thumbnail is being fetched, -1 if none

	back, sel, next *widget.Button
	group           *widget.FocusGroup

	offset  int // first visible row
	visible int // rows that fit on screen
}

func newResultsScreen(theme *styles.Theme, page SearchResultPage, err error) *resultsScreen {
	boxes := make([]*widget.Checkbox, len(page.Releases))
	items := make([]widget.Widget, 0, len(boxes)+3)
	for i, r := range page.Releases {
		boxes[i] = widget.NewCheckbox(theme, "release-"+strconv.Itoa(i), r.Display())
		items = append(items, boxes[i])
	}

	s := &resultsScreen{
		page:    page,
		err:     err,
		boxes:   widget.NewCheckGroup(boxes...),
		thumbs:  make([]string, len(boxes)),
		loading: -1,
		back:    widget.NewButton(theme, buttonBack, "Back"),
		sel:     widget.NewButton(theme, buttonSelect, "Select"),
		next:    widget.NewButton(theme, buttonNext, "Next"),
	}
	items = append(items, s.back, s.sel, s.next)
	s.group = widget.NewFocusGroup(items...)
	return s
}

func (s *resultsScreen) layout(width, height int, thumbnails bool) {
	buttonsY := height - 3
	s.visible = max((buttonsY-1-listTop)/rowHeight, 1)

	// Keep the focused row on screen
	if i := s.group.Index(); i >= 0 && i < len(s.thumbs) {
		if i < s.offset {
			s.offset = i
		}
		if i >= s.offset+s.visible {
			s.offset = i - s.visible + 1
		}
	}
	s.offset = max(min(s.offset, len(s.thumbs)-s.visible), 0)

	x := 2
	if thumbnails {
		x += thumbWidth + 2
	}
	for i, b := range s.boxes.Boxes() {
		if i < s.offset || i >= s.offset+s.visible {
			b.SetBounds(widget.Rect{})
			continue
		}
		y := listTop + (i-s.offset)*rowHeight
		b.SetBounds(widget.Rect{X: x, Y: y, W: max(width-x-2, 1), H: 2})
	}

	bx := 2
	for _, btn := range []*widget.Button{s.back, s.sel, s.next} {
		btn.SetBounds(widget.Rect{X: bx, Y: buttonsY, W: btn.Width(), H: 1})
		bx += btn.Width() + 2
	}
}

// moveRow moves focus d rows up or down. From the buttons, up goes back
// to the last row.
func (s *resultsScreen) moveRow(d int) {
	n := len(s.thumbs)
	if n == 0 {
		return
	}
	i := s.group.Index()
	if i < 0 || i >= n {
		if d < 0 {
			s.group.FocusIndex(n - 1)
		}
		return
	}
	s.group.FocusIndex(max(min(i+d, n-1), 0))
}

// detailLine is the muted second line of a row.
func detailLine(r discogs.Release) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.FormatSummary(), r.LabelNames(), r.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

func (m *Model) updateResults(msg tea.Msg) tea.Cmd {
	s := m.results

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := handler.Chain(msg, m.handleResultsBack, m.handleResultsMove); handled {
			return cmd
		}
	case tea.MouseMsg:
		switch msg.Button { //nolint:exhaustive // only the wheel scrolls
		case tea.MouseButtonWheelUp:
			s.moveRow(-1)
			return nil
		case tea.MouseButtonWheelDown:
			s.moveRow(1)
			return nil
		}
	}

	act := s.group.HandleEvent(msg)
	if s.boxes.Apply(act) {
		m.clearStatus()
		return nil
	}
	if a, ok := act.(action.Activate); ok {
		switch a.ID {
		case buttonBack:
			return m.backToInput()
		case buttonSelect:
			return m.selectRelease()
		case buttonNext:
			m.page++
			return m.startSearch()
		}
	}
	return nil
}

func (m *Model) handleResultsBack(msg tea.KeyMsg) handler.Result {
	if key.Matches(msg, m.keys.Back) {
		return handler.Handled(m.backToInput())
	}
	return handler.NotHandled
}

func (m *Model) handleResultsMove(msg tea.KeyMsg) handler.Result {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.results.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.results.moveRow(1)
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) backToInput() tea.Cmd {
	m.state = StateInput
	m.clearStatus()
	return nil
}

func (m *Model) selectRelease() tea.Cmd {
	i, ok := m.results.boxes.Selected()
	if !ok {
		m.setStatus("Check a release first.")
		return nil
	}
	release := m.results.page.Releases[i]
	m.details = newDetailsScreen(m.theme, m.keys, release, m.filePath != "")
	m.state = StateDetails
	m.clearStatus()
	m.logger.Info("release selected",
		zap.String("session", m.session),
		zap.Int("release", release.ID),
	)
	return ReleaseCmd(m.ctx, m.catalog, release.ID)
}

// fetchThumbnail starts the fetch of the first missing thumbnail, one at a
// time in row order. Nothing starts while a fetch is pending or outside
// the results screen.
func (m *Model) fetchThumbnail() tea.Cmd {
	s := m.results
	if !m.thumbnails || s == nil || s.loading >= 0 || m.state != StateResults {
		return nil
	}
	for i, tile := range s.thumbs {
		if tile == "" {
			s.loading = i
			url := s.page.Releases[i].ThumbURL()
			return ThumbnailCmd(m.ctx, m.images, m.session, s.page.Number, i, url)
		}
	}
	return nil
}

func (m *Model) handleThumbnail(msg ThumbnailMsg) tea.Cmd {
	s := m.results
	if s == nil || msg.Session != m.session || msg.Page != s.page.Number ||
		msg.Index < 0 || msg.Index >= len(s.thumbs) {
		return nil
	}
	s.loading = -1

	if msg.Err != nil {
		m.logger.Debug("thumbnail unavailable", zap.Int("row", msg.Index), zap.Error(msg.Err))
		s.thumbs[msg.Index] = coverart.Placeholder(m.theme, thumbWidth, thumbRows, coverart.Unavailable)
	} else {
		tile, err := coverart.FromBytes(m.theme, msg.Data, thumbWidth, thumbRows)
		if err != nil {
			m.logger.Debug("thumbnail not decodable", zap.Int("row", msg.Index), zap.Error(err))
		}
		s.thumbs[msg.Index] = tile
	}
	return m.fetchThumbnail()
}
