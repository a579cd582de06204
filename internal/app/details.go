package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/fortyfive/internal/app/handler"
	"github.com/llehouerou/fortyfive/internal/coverart"
	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/errmsg"
	"github.com/llehouerou/fortyfive/internal/tracktime"
	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/confirm"
	"github.com/llehouerou/fortyfive/internal/ui/render"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
	"github.com/llehouerou/fortyfive/internal/ui/widget"
)

// Details geometry.
const (
	detailsTop = 2
	coverWidth = 24
	coverRows  = 12
)

// detailsScreen shows the checked release. It starts from the search
// summary and is completed when the extended record arrives.
type detailsScreen struct {
	theme   *styles.Theme
	release discogs.Release
	loading bool
	err     error

	cover        []byte
	coverView    string
	coverLoading bool

	back  *widget.Button
	apply *widget.Button // nil when no file is being tagged
	group *widget.FocusGroup

	tracks viewport.Model
	fieldX int
}

func newDetailsScreen(theme *styles.Theme, keys KeyMap, r discogs.Release, tagging bool) *detailsScreen {
	d := &detailsScreen{
		theme:   theme,
		release: r,
		loading: true,
		back:    widget.NewButton(theme, buttonBack, "Back"),
		tracks:  viewport.New(0, 0),
	}
	d.tracks.KeyMap = keys.tracklistKeys()
	d.coverView = coverart.Placeholder(theme, coverWidth, coverRows, "Loading...")

	items := []widget.Widget{d.back}
	if tagging {
		d.apply = widget.NewButton(theme, buttonApply, "Apply Tags")
		items = append(items, d.apply)
	}
	d.group = widget.NewFocusGroup(items...)
	return d
}

// fields lists the labelled lines shown next to the cover.
func (d *detailsScreen) fields() [][2]string {
	r := d.release
	genres := strings.Join(r.Genres, ", ")
	if genres == "" {
		genres = tracktime.NotAvailable
	}
	return [][2]string{
		{"Artists", r.ArtistNames()},
		{"Year", r.YearString()},
		{"Country", r.Country},
		{"Labels", r.LabelNames()},
		{"Format", r.FormatSummary()},
		{"Genres", genres},
		{"Styles", strings.Join(r.Styles, ", ")},
		{"Total", tracktime.Summary(durations(r.Tracklist))},
	}
}

func durations(tracks []discogs.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Duration
	}
	return out
}

func (d *detailsScreen) layout(width, height int) {
	buttonsY := height - 3
	d.fieldX = 2 + coverWidth + 3

	tracksTop := detailsTop + len(d.fields()) + 2
	d.tracks.Width = max(width-d.fieldX-2, 1)
	d.tracks.Height = max(buttonsY-1-tracksTop, 1)
	d.tracks.SetContent(d.tracklist(d.tracks.Width))

	bx := 2
	for _, w := range d.group.Items() {
		btn, ok := w.(*widget.Button)
		if !ok {
			continue
		}
		btn.SetBounds(widget.Rect{X: bx, Y: buttonsY, W: btn.Width(), H: 1})
		bx += btn.Width() + 2
	}
}

func (d *detailsScreen) tracklist(width int) string {
	s := d.theme.S()
	if len(d.release.Tracklist) == 0 {
		if d.loading {
			return s.Subtle.Render("Loading tracklist...")
		}
		return s.Subtle.Render("No tracklist.")
	}

	lines := make([]string, 0, len(d.release.Tracklist))
	for _, t := range d.release.Tracklist {
		right := t.Duration
		left := render.Truncate(render.Pad(t.Position, 4)+" "+t.Title, max(width-len(right)-1, 1))
		lines = append(lines, render.Row(left, s.Muted.Render(right), width))
	}
	return strings.Join(lines, "\n")
}

func (d *detailsScreen) coverSize() string {
	if len(d.cover) == 0 {
		return ""
	}
	return "Cover " + humanize.Bytes(uint64(len(d.cover)))
}

func (m *Model) updateDetails(msg tea.Msg) tea.Cmd {
	d := m.details

	switch msg := msg.(type) {
	case ReleaseLoadedMsg:
		return m.handleReleaseLoaded(msg)
	case CoverLoadedMsg:
		m.handleCoverLoaded(msg)
		return nil
	case action.Msg:
		if msg.Source == confirm.Source {
			return m.handleConfirm(msg)
		}
		return nil
	case tea.KeyMsg:
		if m.confirm.Active() {
			_, cmd := m.confirm.Update(msg)
			return cmd
		}
		if handled, cmd := handler.Chain(msg, m.handleDetailsBack); handled {
			return cmd
		}
	case tea.MouseMsg:
		if m.confirm.Active() {
			return nil
		}
	}

	var cmd tea.Cmd
	d.tracks, cmd = d.tracks.Update(msg)

	if a, ok := d.group.HandleEvent(msg).(action.Activate); ok {
		switch a.ID {
		case buttonBack:
			return m.backToResults()
		case buttonApply:
			m.askApplyTags()
			return nil
		}
	}
	return cmd
}

func (m *Model) handleDetailsBack(msg tea.KeyMsg) handler.Result {
	if key.Matches(msg, m.keys.Back) {
		return handler.Handled(m.backToResults())
	}
	return handler.NotHandled
}

// backToResults returns to the same page with the same row checked.
func (m *Model) backToResults() tea.Cmd {
	m.state = StateResults
	m.clearStatus()
	return m.fetchThumbnail()
}

func (m *Model) handleReleaseLoaded(msg ReleaseLoadedMsg) tea.Cmd {
	d := m.details
	if msg.ID != d.release.ID {
		return nil
	}
	d.loading = false

	if msg.Err != nil || msg.Release == nil {
		m.logger.Warn("load release", zap.Int("release", msg.ID), zap.Error(msg.Err))
		d.err = msg.Err
		m.setError(errmsg.FormatWith(errmsg.OpReleaseLoad, d.release.Display(), msg.Err))
	} else {
		d.release = *msg.Release
	}

	url := d.release.CoverURL()
	if url == "" {
		d.coverView = coverart.Placeholder(m.theme, coverWidth, coverRows, coverart.Unavailable)
		return nil
	}
	d.coverLoading = true
	return CoverCmd(m.ctx, m.images, d.release.ID, url)
}

func (m *Model) handleCoverLoaded(msg CoverLoadedMsg) {
	d := m.details
	if msg.ID != d.release.ID {
		return
	}
	d.coverLoading = false

	if msg.Err != nil {
		m.logger.Debug("cover unavailable", zap.Int("release", msg.ID), zap.Error(msg.Err))
		d.coverView = coverart.Placeholder(m.theme, coverWidth, coverRows, coverart.Unavailable)
		return
	}
	view, err := coverart.FromBytes(m.theme, msg.Data, coverWidth, coverRows)
	if err != nil {
		m.logger.Debug("cover not decodable", zap.Int("release", msg.ID), zap.Error(err))
	} else {
		d.cover = msg.Data
	}
	d.coverView = view
}

func (m *Model) askApplyTags() {
	d := m.details
	message := fmt.Sprintf("Write %q\nto %s?", d.release.Display(), filepath.Base(m.filePath))
	if d.coverLoading {
		message += "\n(cover still loading, it will not be embedded)"
	}
	m.confirm.Show("Apply tags?", message, d.release.ID, m.width, m.height)
}

func (m *Model) handleConfirm(msg action.Msg) tea.Cmd {
	res, ok := msg.Action.(confirm.Result)
	if !ok || !res.Confirmed {
		return nil
	}
	d := m.details
	if id, _ := res.Context.(int); id != d.release.ID {
		return nil
	}
	m.setStatus("Writing tags...")
	return ApplyTagsCmd(m.tagStore, m.filePath, d.release, d.cover)
}

// handleTagsWritten reports a finished write on whichever screen is shown.
func (m *Model) handleTagsWritten(msg TagsWrittenMsg) {
	name := filepath.Base(msg.Path)
	if msg.Err != nil {
		m.logger.Warn("write tags", zap.String("path", msg.Path), zap.Error(msg.Err))
		m.setError(errmsg.FormatWith(errmsg.OpTagsWrite, name, msg.Err))
		return
	}
	m.logger.Info("tags written", zap.String("path", msg.Path), zap.Int("release", msg.Release))
	m.setStatus("Tags written to " + name)
}
