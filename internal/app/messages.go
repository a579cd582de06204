package app

import (
	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/tags"
)

// SearchResultPage is one filtered page of a search session. Every release
// in it is a 7" 45 RPM vinyl and there are at most as many as the cap.
type SearchResultPage struct {
	Query    string
	Number   int
	Releases []discogs.Release
	Pages    int // 0 when the search failed
	Items    int // raw records matching the query
}

// SearchDoneMsg is sent when a catalog search completes.
type SearchDoneMsg struct {
	Session string
	Result  SearchResultPage
	Err     error
}

// ThumbnailMsg is sent when one result row's thumbnail has been fetched.
type ThumbnailMsg struct {
	Session string
	Page    int
	Index   int
	Data    []byte
	Err     error
}

// ReleaseLoadedMsg is sent when the extended release record arrives.
type ReleaseLoadedMsg struct {
	ID      int
	Release *discogs.Release
	Err     error
}

// CoverLoadedMsg is sent when the details screen cover has been fetched.
type CoverLoadedMsg struct {
	ID   int
	Data []byte
	Err  error
}

// FileTagsReadMsg is sent once the tags of the -file argument are read.
type FileTagsReadMsg struct {
	Tag *tags.Tag
	Err error
}

// TagsWrittenMsg is sent when a tag write finishes.
type TagsWrittenMsg struct {
	Path    string
	Release int
	Err     error
}
