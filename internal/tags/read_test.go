package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

func TestRead_MP3(t *testing.T) {
	dir := t.TempDir()
	want := singleTags()
	path := createTestMP3(t, dir, want)

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	assertEqual(t, "Path", got.Path, path)
	assertEqual(t, "Title", got.Title, want.Title)
	assertEqual(t, "Artist", got.Artist, want.Artist)
	assertEqual(t, "AlbumArtist", got.AlbumArtist, want.AlbumArtist)
	assertEqual(t, "Album", got.Album, want.Album)
	assertEqual(t, "Genre", got.Genre, want.Genre)
	assertEqual(t, "TrackNumber", got.TrackNumber, want.TrackNumber)
	assertEqual(t, "TotalTracks", got.TotalTracks, want.TotalTracks)
	assertEqual(t, "Date", got.Date, want.Date)
	assertEqual(t, "Label", got.Label, want.Label)
	assertEqual(t, "CatalogNumber", got.CatalogNumber, want.CatalogNumber)
	assertEqual(t, "Media", got.Media, want.Media)
	assertEqual(t, "Country", got.Country, want.Country)
}

func TestRead_NonexistentFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("Read() should fail for a missing file")
	}
}

func TestRead_TitleFallbackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, &Tag{Artist: "Someone"})

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertEqual(t, "Title", got.Title, "test")
	assertEqual(t, "AlbumArtist", got.AlbumArtist, "Someone")
}

func TestRead_Unicode(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, &Tag{Title: "Été", Artist: "Françoise Hardy", Album: "Tous les garçons"})

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertEqual(t, "Title", got.Title, "Été")
	assertEqual(t, "Artist", got.Artist, "Françoise Hardy")
	assertEqual(t, "Album", got.Album, "Tous les garçons")
}

func TestReadMP3WithID3v2(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, singleTags())

	got, err := readMP3WithID3v2(path)
	if err != nil {
		t.Fatalf("readMP3WithID3v2() error: %v", err)
	}
	assertEqual(t, "Artist", got.Artist, "Prince And The Revolution")
	assertEqual(t, "TrackNumber", got.TrackNumber, 1)
	assertEqual(t, "Label", got.Label, "Paisley Park")
	assertEqual(t, "Date", got.Date, "1986")
}

func TestRead_UnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read() should fail for a non-audio file")
	}
}

func TestWrite_MP3_CoverArt(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, nil)

	cover := []byte{0xff, 0xd8, 0xff, 0xe0, 1, 2, 3, 4}
	tag := singleTags()
	tag.CoverArt = cover
	if err := Write(path, tag); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer id3tag.Close()

	pics := id3tag.GetFrames(id3tag.CommonID("Attached picture"))
	if len(pics) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pics))
	}
	pic, ok := pics[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("frame is %T, want PictureFrame", pics[0])
	}
	assertEqual(t, "MimeType", pic.MimeType, mimeJPEG)
	assertEqual(t, "PictureType", pic.PictureType, byte(id3v2.PTFrontCover))
	assertEqual(t, "Picture size", len(pic.Picture), len(cover))
}

func TestWrite_MP3_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, singleTags())

	if err := Write(path, &Tag{Title: "New", Artist: "Other"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "Title", got.Title, "New")
	assertEqual(t, "Label", got.Label, "")
}

func TestWrite_FLAC_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := createTestFLAC(t, dir)

	want := singleTags()
	want.CoverArt = []byte("\x89PNG\r\n\x1a\nfake")
	if err := Write(path, want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertEqual(t, "Title", got.Title, want.Title)
	assertEqual(t, "Artist", got.Artist, want.Artist)
	assertEqual(t, "Album", got.Album, want.Album)
	assertEqual(t, "Label", got.Label, want.Label)
	assertEqual(t, "Media", got.Media, want.Media)
}

func TestWrite_NonexistentFile(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "missing.mp3"), &Tag{}); err == nil {
		t.Error("Write() should fail for a missing file")
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, &Tag{Title: "x"}); err == nil {
		t.Error("Write() should fail for .wav")
	}
}
