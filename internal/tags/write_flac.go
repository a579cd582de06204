package tags

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLACTags replaces the Vorbis comment block of a FLAC file and, when
// cover art is given, its pictures.
func writeFLACTags(path string, t *Tag) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	// Always create a fresh comment block to avoid duplicate tags
	cmts := flacvorbis.New()
	for _, kv := range vorbisFields(t) {
		if err := cmts.Add(kv[0], kv[1]); err != nil {
			return fmt.Errorf("add %s: %w", kv[0], err)
		}
	}
	cmtBlock := cmts.Marshal()

	meta := make([]*flac.MetaDataBlock, 0, len(f.Meta)+2)
	replaced := false
	for _, block := range f.Meta {
		switch {
		case block.Type == flac.VorbisComment:
			if !replaced {
				meta = append(meta, &cmtBlock)
				replaced = true
			}
		case block.Type == flac.Picture && len(t.CoverArt) > 0:
			// dropped, replaced below
		default:
			meta = append(meta, block)
		}
	}
	if !replaced {
		meta = append(meta, &cmtBlock)
	}

	if len(t.CoverArt) > 0 {
		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			t.CoverArt,
			detectMimeType(t.CoverArt),
		)
		if err != nil {
			return fmt.Errorf("create picture: %w", err)
		}
		picBlock := pic.Marshal()
		meta = append(meta, &picBlock)
	}
	f.Meta = meta

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// vorbisFields lists the non-empty Vorbis comments for t.
func vorbisFields(t *Tag) [][2]string {
	fields := [][2]string{
		{"ARTIST", t.Artist},
		{"ALBUMARTIST", t.AlbumArtist},
		{"ALBUM", t.Album},
		{"TITLE", t.Title},
		{"GENRE", t.Genre},
		{"DATE", t.Date},
		{"TRACKNUMBER", numberPair(t.TrackNumber, 0)},
		{"TOTALTRACKS", positive(t.TotalTracks)},
		{"DISCNUMBER", numberPair(t.DiscNumber, 0)},
		{"TOTALDISCS", positive(t.TotalDiscs)},
		{"LABEL", t.Label},
		{"CATALOGNUMBER", t.CatalogNumber},
		{"MEDIA", t.Media},
		{"RELEASECOUNTRY", t.Country},
	}
	out := fields[:0]
	for _, kv := range fields {
		if kv[1] != "" {
			out = append(out, kv)
		}
	}
	return out
}

func positive(n int) string {
	return numberPair(n, 0)
}
