package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/tags"
)

var errNoImage = errors.New("release has no image")

// SearchParams identifies one catalog request of a search session.
type SearchParams struct {
	Session string
	Query   string
	Page    int
	Limit   int // eligible releases kept
}

// SearchCmd queries the catalog and keeps the 7" 45 RPM releases of the
// page. A failed search still produces a page, with no releases.
func SearchCmd(ctx context.Context, catalog Catalog, logger *zap.Logger, p SearchParams) tea.Cmd {
	return func() tea.Msg {
		result := SearchResultPage{Query: p.Query, Number: p.Page}
		log := logger.With(
			zap.String("session", p.Session),
			zap.String("query", p.Query),
			zap.Int("page", p.Page),
		)

		page, err := catalog.Search(ctx, p.Query, discogs.TypeRelease, p.Page)
		if err != nil {
			log.Warn("catalog search failed", zap.Error(err))
			return SearchDoneMsg{Session: p.Session, Result: result, Err: err}
		}

		result.Releases = discogs.FilterReleases(page.Results, p.Limit)
		result.Pages = page.Pages
		result.Items = page.Items
		log.Info("catalog search done",
			zap.Int("records", len(page.Results)),
			zap.Int("eligible", len(result.Releases)),
		)
		return SearchDoneMsg{Session: p.Session, Result: result}
	}
}

// ThumbnailCmd fetches the thumbnail of one result row.
func ThumbnailCmd(ctx context.Context, images ImageFetcher, session string, page, index int, url string) tea.Cmd {
	return func() tea.Msg {
		msg := ThumbnailMsg{Session: session, Page: page, Index: index}
		if url == "" {
			msg.Err = errNoImage
			return msg
		}
		msg.Data, msg.Err = images.Fetch(ctx, url)
		return msg
	}
}

// ReleaseCmd fetches the extended record with tracklist and genres.
func ReleaseCmd(ctx context.Context, catalog Catalog, id int) tea.Cmd {
	return func() tea.Msg {
		release, err := catalog.GetRelease(ctx, id)
		return ReleaseLoadedMsg{ID: id, Release: release, Err: err}
	}
}

// CoverCmd fetches the full-size cover of a release.
func CoverCmd(ctx context.Context, images ImageFetcher, id int, url string) tea.Cmd {
	return func() tea.Msg {
		data, err := images.Fetch(ctx, url)
		return CoverLoadedMsg{ID: id, Data: data, Err: err}
	}
}

// ReadFileTagsCmd reads the tags of the file being tagged.
func ReadFileTagsCmd(store TagStore, path string) tea.Cmd {
	return func() tea.Msg {
		t, err := store.Read(path)
		return FileTagsReadMsg{Tag: t, Err: err}
	}
}

// ApplyTagsCmd writes the release metadata into the file, keeping the
// fields the release does not provide.
func ApplyTagsCmd(store TagStore, path string, release discogs.Release, cover []byte) tea.Cmd {
	return func() tea.Msg {
		existing, err := store.Read(path)
		if err != nil {
			existing = &tags.Tag{Path: path}
		}
		err = store.Write(path, ReleaseTags(existing, release, cover))
		return TagsWrittenMsg{Path: path, Release: release.ID, Err: err}
	}
}
