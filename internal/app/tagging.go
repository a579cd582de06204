package app

import (
	"slices"
	"strings"

	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/tags"
)

// mediaSingle is the media tag written for a 7" 45 RPM release.
const mediaSingle = `7" Vinyl`

// ReleaseTags returns existing updated with the release metadata. Title,
// track and disc numbers stay as they are since a release is not a track.
// A nil cover keeps no artwork.
func ReleaseTags(existing *tags.Tag, r discogs.Release, cover []byte) *tags.Tag {
	t := *existing

	if artists := r.ArtistNames(); artists != "" {
		t.Artist = artists
		t.AlbumArtist = artists
	}
	if r.Title != "" {
		t.Album = r.Title
		if t.Title == "" {
			t.Title = r.Title
		}
	}
	if y := r.YearString(); y != "" {
		t.Date = y
	}
	if len(r.Genres) > 0 {
		t.Genre = strings.Join(r.Genres, "; ")
	}
	if len(r.Labels) > 0 {
		t.Label = r.Labels[0].Name
		t.CatalogNumber = r.Labels[0].CatNo
	}
	if m := media(r); m != "" {
		t.Media = m
	}
	if r.Country != "" {
		t.Country = r.Country
	}
	t.CoverArt = slices.Clone(cover)
	return &t
}

func media(r discogs.Release) string {
	if discogs.IsEligible(r) {
		return mediaSingle
	}
	if len(r.Formats) > 0 {
		return r.Formats[0].Name
	}
	return ""
}
