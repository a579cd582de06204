package app

import (
	"context"

	"github.com/llehouerou/fortyfive/internal/coverart"
	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/tags"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/llehouerou/fortyfive/internal/app Catalog,ImageFetcher,TagStore

// Compile-time assertions that the real collaborators satisfy the interfaces.
var (
	_ Catalog      = (*discogs.Client)(nil)
	_ ImageFetcher = (*coverart.Fetcher)(nil)
	_ TagStore     = FileTags{}
)

// Catalog searches the release database.
type Catalog interface {
	Search(ctx context.Context, query string, typ discogs.ResultType, page int) (*discogs.Page, error)
	GetRelease(ctx context.Context, id int) (*discogs.Release, error)
}

// ImageFetcher downloads thumbnails and covers.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TagStore reads and writes the tags of the audio file given on the
// command line.
type TagStore interface {
	Read(path string) (*tags.Tag, error)
	Write(path string, t *tags.Tag) error
}

// FileTags is the TagStore backed by the tags package.
type FileTags struct{}

func (FileTags) Read(path string) (*tags.Tag, error) { return tags.Read(path) }

func (FileTags) Write(path string, t *tags.Tag) error { return tags.Write(path, t) }
