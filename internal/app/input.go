package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/fortyfive/internal/app/handler"
	"github.com/llehouerou/fortyfive/internal/errmsg"
	"github.com/llehouerou/fortyfive/internal/ui/action"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
	"github.com/llehouerou/fortyfive/internal/ui/widget"
)

const (
	formTop   = 3  // row of the artist field
	formWidth = 64 // widest the fields get
)

// inputScreen is the artist/title form.
type inputScreen struct {
	artist *widget.TextInput
	title  *widget.TextInput
	search *widget.Button
	group  *widget.FocusGroup
}

func newInputScreen(theme *styles.Theme) *inputScreen {
	artist := widget.NewTextInput(theme, fieldArtist, "Artist", "e.g. Prince")
	title := widget.NewTextInput(theme, fieldTitle, "Title", "e.g. Kiss")
	search := widget.NewButton(theme, buttonSearch, "Search")
	return &inputScreen{
		artist: artist,
		title:  title,
		search: search,
		group:  widget.NewFocusGroup(artist, title, search),
	}
}

func (s *inputScreen) layout(width, _ int) {
	w := max(min(width-4, formWidth), 1)
	s.artist.SetBounds(widget.Rect{X: 2, Y: formTop, W: w, H: 1})
	s.title.SetBounds(widget.Rect{X: 2, Y: formTop + 2, W: w, H: 1})
	s.search.SetBounds(widget.Rect{X: 2, Y: formTop + 4, W: s.search.Width(), H: 1})
}

// prefill sets the fields the user has not typed in yet.
func (s *inputScreen) prefill(artist, title string) {
	if s.artist.Value() == "" {
		s.artist.SetValue(artist)
	}
	if s.title.Value() == "" {
		s.title.SetValue(title)
	}
}

func (s *inputScreen) query() string {
	return BuildQuery(s.artist.Value(), s.title.Value())
}

// BuildQuery joins artist and title as "artist - title". Blank fields are
// left out.
func BuildQuery(artist, title string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{artist, title} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handler.Chain(k, m.handleInputQuit); handled {
			return cmd
		}
	}

	switch a := m.form.group.HandleEvent(msg).(type) {
	case action.Submit:
		return m.submit()
	case action.Activate:
		if a.ID == buttonSearch {
			return m.submit()
		}
	}
	return nil
}

func (m *Model) handleInputQuit(msg tea.KeyMsg) handler.Result {
	if key.Matches(msg, m.keys.Back) {
		return handler.Handled(tea.Quit)
	}
	return handler.NotHandled
}

// submit starts a new search session at page 1.
func (m *Model) submit() tea.Cmd {
	query := m.form.query()
	if query == "" {
		m.setStatus("Enter an artist or a title.")
		return nil
	}
	m.session = uuid.NewString()
	m.query = query
	m.page = 1
	return m.startSearch()
}

// startSearch requests the current page of the session.
func (m *Model) startSearch() tea.Cmd {
	m.under = m.state
	m.state = StateSearching
	m.clearStatus()
	m.logger.Debug("search started",
		zap.String("session", m.session),
		zap.String("query", m.query),
		zap.Int("page", m.page),
	)
	return tea.Batch(
		m.spinner.Tick,
		SearchCmd(m.ctx, m.catalog, m.logger, SearchParams{
			Session: m.session,
			Query:   m.query,
			Page:    m.page,
			Limit:   m.limit,
		}),
	)
}

// updateSearching ignores every input; only the spinner and the search
// completion are handled.
func (m *Model) updateSearching(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case SearchDoneMsg:
		return m.handleSearchDone(msg)
	}
	return nil
}

func (m *Model) handleSearchDone(msg SearchDoneMsg) tea.Cmd {
	if msg.Session != m.session || msg.Result.Number != m.page {
		m.logger.Debug("dropping stale search result",
			zap.String("session", msg.Session),
			zap.Int("page", msg.Result.Number),
		)
		return nil
	}

	m.results = newResultsScreen(m.theme, msg.Result, msg.Err)
	m.state = StateResults
	if msg.Err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpCatalogSearch, msg.Result.Query, msg.Err))
	}
	m.layout()
	return m.fetchThumbnail()
}
