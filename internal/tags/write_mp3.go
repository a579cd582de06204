package tags

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"
)

// writeMP3Tags writes ID3v2.4 tags to an MP3 file.
func writeMP3Tags(path string, t *Tag) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer tag.Close()

	// Use ID3v2.4 with UTF-8 for better Unicode support
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Clear existing tags to avoid duplicates
	tag.DeleteAllFrames()

	tag.SetArtist(t.Artist)
	tag.SetAlbum(t.Album)
	tag.SetTitle(t.Title)
	tag.SetGenre(t.Genre)

	addText := func(id, value string) {
		if value != "" {
			tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
		}
	}

	addText("TDRC", t.Date)
	addText("TPE2", t.AlbumArtist)
	addText("TPUB", t.Label)
	addText("TMED", t.Media)
	addText("TRCK", numberPair(t.TrackNumber, t.TotalTracks))
	addText("TPOS", numberPair(t.DiscNumber, t.TotalDiscs))

	addTXXX(tag, "CATALOGNUMBER", t.CatalogNumber)
	addTXXX(tag, "RELEASECOUNTRY", t.Country)

	if len(t.CoverArt) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    detectMimeType(t.CoverArt),
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     t.CoverArt,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

func addTXXX(tag *id3v2.Tag, description, value string) {
	if value == "" {
		return
	}
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       value,
	})
}

// numberPair formats "N" or "N/M". Returns "" when num is 0.
func numberPair(num, total int) string {
	if num <= 0 {
		return ""
	}
	if total > 0 {
		return strconv.Itoa(num) + "/" + strconv.Itoa(total)
	}
	return strconv.Itoa(num)
}
