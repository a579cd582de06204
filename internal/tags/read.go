package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag metadata from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))

	m, err := tag.ReadFrom(f)
	if err != nil {
		if ext == ExtMP3 {
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		}
		if IsMusicFile(path) {
			return readWithTaglib(path)
		}
		return nil, err
	}

	track, totalTracks := m.Track()
	disc, totalDiscs := m.Disc()

	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		Date:        yearToDate(m.Year()),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
	}

	if ext == ExtMP3 {
		readMP3ExtendedTags(path, t)
	} else if raw, err := taglib.ReadTags(path); err == nil {
		readTaglibExtendedTags(taglibTags(raw), t)
	}

	finish(t)
	return t, nil
}

// finish applies the fallbacks shared by every reader.
func finish(t *Tag) {
	if t.Title == "" {
		t.Title = strings.TrimSuffix(filepath.Base(t.Path), filepath.Ext(t.Path))
	}
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
}

// readMP3WithID3v2 reads MP3 metadata using only the id3v2 library.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, totalTracks := parseNumberPair(getID3TextFrame(id3tag, "TRCK"))
	disc, totalDiscs := parseNumberPair(getID3TextFrame(id3tag, "TPOS"))

	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
	}
	if y := id3tag.Year(); len(y) >= 4 {
		t.Date = y[:4]
	}

	readID3Extended(id3tag, t)
	finish(t)
	return t, nil
}

// readMP3ExtendedTags reads the frames dhowden/tag does not expose.
func readMP3ExtendedTags(path string, t *Tag) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer id3tag.Close()
	readID3Extended(id3tag, t)
}

func readID3Extended(id3tag *id3v2.Tag, t *Tag) {
	// ID3v2.4 recording date, then ID3v2.3 year
	if d := getID3TextFrame(id3tag, "TDRC"); d != "" {
		t.Date = d
	} else if y := getID3TextFrame(id3tag, "TYER"); y != "" {
		t.Date = y
	}

	t.Label = getID3TextFrame(id3tag, "TPUB")
	t.Media = getID3TextFrame(id3tag, "TMED")
	t.CatalogNumber = getID3TXXXFrame(id3tag, "CATALOGNUMBER")
	t.Country = getID3TXXXFrame(id3tag, "RELEASECOUNTRY")
}

// readWithTaglib reads any format TagLib understands. Used when
// dhowden/tag cannot parse the file (ffmpeg-created M4A, some Ogg files).
func readWithTaglib(path string) (*Tag, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(raw)

	track, totalTracks := parseNumberPair(tags.get(taglib.TrackNumber))
	if totalTracks == 0 {
		_, totalTracks = parseNumberPair("0/" + tags.get("TOTALTRACKS", "TRACKTOTAL"))
	}
	disc, totalDiscs := parseNumberPair(tags.get(taglib.DiscNumber))
	if totalDiscs == 0 {
		_, totalDiscs = parseNumberPair("0/" + tags.get("TOTALDISCS", "DISCTOTAL"))
	}

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
	}
	readTaglibExtendedTags(tags, t)
	finish(t)
	return t, nil
}

func readTaglibExtendedTags(tags taglibTags, t *Tag) {
	if d := tags.get(taglib.Date); d != "" {
		t.Date = d
	}
	t.Label = tags.get(taglib.Label)
	t.CatalogNumber = tags.get(taglib.CatalogNumber)
	t.Media = tags.get(taglib.Media)
	t.Country = tags.get(taglib.ReleaseCountry)
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// getID3TXXXFrame reads a user-defined text frame (TXXX) value.
func getID3TXXXFrame(id3tag *id3v2.Tag, description string) string {
	for _, frame := range id3tag.GetFrames("TXXX") {
		if txxx, ok := frame.(id3v2.UserDefinedTextFrame); ok && txxx.Description == description {
			return txxx.Value
		}
	}
	return ""
}
