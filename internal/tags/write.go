package tags

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Write writes tag metadata to a music file, replacing the tags it had.
// The file must already exist. This operation modifies the file in place.
func Write(path string, t *Tag) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtMP3:
		return writeMP3Tags(path, t)
	case ExtFLAC:
		return writeFLACTags(path, t)
	case ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return writeTaglibTags(path, t)
	default:
		return fmt.Errorf("unsupported file format: %s", ext)
	}
}

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// detectMimeType sniffs image data. Anything that is not PNG is treated as
// JPEG, which is what the catalog serves.
func detectMimeType(data []byte) string {
	if http.DetectContentType(data) == mimePNG {
		return mimePNG
	}
	return mimeJPEG
}
