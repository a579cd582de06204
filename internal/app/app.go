// Package app is the screen controller: the root Bubble Tea model that
// moves between the search form, the searching indicator, the filtered
// results and the release details.
package app

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/fortyfive/internal/errmsg"
	"github.com/llehouerou/fortyfive/internal/logging"
	"github.com/llehouerou/fortyfive/internal/ui/confirm"
	"github.com/llehouerou/fortyfive/internal/ui/styles"
)

// State is the active screen. Exactly one is active at a time.
type State int

const (
	StateInput     State = iota // Artist/title form
	StateSearching              // Catalog request in flight
	StateResults                // Filtered page with checkboxes
	StateDetails                // Extended record of the checked release
)

func (s State) String() string {
	switch s {
	case StateInput:
		return "input"
	case StateSearching:
		return "searching"
	case StateResults:
		return "results"
	case StateDetails:
		return "details"
	}
	return "unknown"
}

// Widget identifiers.
const (
	fieldArtist  = "artist"
	fieldTitle   = "title"
	buttonSearch = "search"
	buttonBack   = "back"
	buttonSelect = "select"
	buttonNext   = "next"
	buttonApply  = "apply"
)

// Options configures a Model.
type Options struct {
	Catalog    Catalog
	Images     ImageFetcher
	Tags       TagStore // only used with FilePath
	FilePath   string   // audio file to pre-fill the form from and tag
	Theme      *styles.Theme
	Logger     *zap.Logger
	Cap        int // eligible releases kept per page
	Thumbnails bool
	Context    context.Context //nolint:containedctx // commands outlive Update calls
}

// Model is the root Bubble Tea model.
type Model struct {
	state         State
	width, height int

	ctx        context.Context //nolint:containedctx // commands outlive Update calls
	catalog    Catalog
	images     ImageFetcher
	tagStore   TagStore
	filePath   string
	theme      *styles.Theme
	logger     *zap.Logger
	limit      int
	thumbnails bool

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	confirm confirm.Model

	form    *inputScreen
	results *resultsScreen // nil until the first search completes
	details *detailsScreen // nil until a release is selected
	under   State          // screen drawn beneath the searching indicator

	// Search session
	session string
	query   string
	page    int

	status    string
	statusErr bool
}

// New creates the model on the input screen.
func New(opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	limit := opts.Cap
	if limit <= 0 {
		limit = 20
	}
	store := opts.Tags
	if store == nil {
		store = FileTags{}
	}

	h := help.New()
	h.Styles.ShortKey = theme.S().Muted
	h.Styles.ShortDesc = theme.S().Subtle
	h.Styles.ShortSeparator = theme.S().Subtle

	return &Model{
		state:      StateInput,
		ctx:        ctx,
		catalog:    opts.Catalog,
		images:     opts.Images,
		tagStore:   store,
		filePath:   opts.FilePath,
		theme:      theme,
		logger:     logging.OrNop(opts.Logger),
		limit:      limit,
		thumbnails: opts.Thumbnails,
		keys:       DefaultKeyMap(),
		help:       h,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
		confirm: confirm.New(theme),
		form:    newInputScreen(theme),
	}
}

// State returns the active screen.
func (m *Model) State() State { return m.state }

// Page returns the page counter of the current search session.
func (m *Model) Page() int { return m.page }

// Query returns the query of the current search session.
func (m *Model) Query() string { return m.query }

// Init reads the tags of the file to tag, if any.
func (m *Model) Init() tea.Cmd {
	if m.filePath == "" {
		return nil
	}
	return ReadFileTagsCmd(m.tagStore, m.filePath)
}

// Update routes msg to the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.confirm.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd = m.updateState(msg)
	case FileTagsReadMsg:
		m.handleFileTags(msg)
	case TagsWrittenMsg:
		m.handleTagsWritten(msg)
	case ThumbnailMsg:
		// Rows keep loading while another screen is shown
		cmd = m.handleThumbnail(msg)
	default:
		cmd = m.updateState(msg)
	}

	m.layout()
	return m, cmd
}

func (m *Model) updateState(msg tea.Msg) tea.Cmd {
	switch m.state {
	case StateInput:
		return m.updateInput(msg)
	case StateSearching:
		return m.updateSearching(msg)
	case StateResults:
		return m.updateResults(msg)
	case StateDetails:
		return m.updateDetails(msg)
	}
	return nil
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.form.layout(m.width, m.height)
	if m.results != nil {
		m.results.layout(m.width, m.height, m.thumbnails)
	}
	if m.details != nil {
		m.details.layout(m.width, m.height)
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) handleFileTags(msg FileTagsReadMsg) {
	name := filepath.Base(m.filePath)
	if msg.Err != nil {
		m.logger.Warn("read file tags", zap.String("path", m.filePath), zap.Error(msg.Err))
		m.setError(errmsg.FormatWith(errmsg.OpTagsRead, name, msg.Err))
		return
	}
	m.form.prefill(msg.Tag.Artist, msg.Tag.Title)
	m.setStatus("Tagging " + name)
}
