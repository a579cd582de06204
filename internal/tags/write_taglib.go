package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeTaglibTags writes Ogg, Opus and M4A tags through TagLib, which maps
// the generic keys to each container's native fields.
func writeTaglibTags(path string, t *Tag) error {
	tags := make(map[string][]string)
	for _, kv := range vorbisFields(t) {
		tags[kv[0]] = []string{kv[1]}
	}

	// Clear removes any existing tags not in our map
	if err := taglib.WriteTags(path, tags, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}

	if len(t.CoverArt) > 0 {
		if err := taglib.WriteImage(path, t.CoverArt); err != nil {
			return fmt.Errorf("write cover art: %w", err)
		}
	}
	return nil
}
