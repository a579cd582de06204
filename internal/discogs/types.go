package discogs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ResultType is the kind of record a catalog search returns.
type ResultType string

const (
	TypeRelease ResultType = "release"
	TypeMaster  ResultType = "master"
	TypeArtist  ResultType = "artist"
)

// ParseResultType converts a command-line or API string into a ResultType.
func ParseResultType(s string) (ResultType, error) {
	switch t := ResultType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeRelease, TypeMaster, TypeArtist:
		return t, nil
	default:
		return "", fmt.Errorf("unknown result type %q (want release, master or artist)", s)
	}
}

// Release is a single catalog release, either as summarized by a search or
// fully populated by GetRelease.
type Release struct {
	ID        int
	Title     string
	Year      int // 0 when unknown
	Country   string
	Artists   []Artist
	Labels    []Label
	Formats   []Format
	Images    []Image
	Tracklist []Track // only populated by GetRelease
	Genres    []string
	Styles    []string
	Thumb     string
}

// Artist is a credited artist.
type Artist struct {
	Name string
}

// Label is a record label with its catalog number.
type Label struct {
	Name  string
	CatNo string
}

// Format describes one physical format entry, e.g. Vinyl with 7" and 45 RPM.
type Format struct {
	Name         string
	Qty          string
	Descriptions []string
}

// Image is a release image.
type Image struct {
	Type   string // "primary" or "secondary"
	URI    string
	URI150 string
}

// Track is a tracklist entry. Duration is "m:ss" or empty.
type Track struct {
	Position string
	Title    string
	Duration string
}

// Result is one heterogeneous search record. Release is only set for
// release records.
type Result struct {
	Type       ResultType
	ID         int
	Title      string
	Year       int
	Labels     []string
	Thumb      string
	CoverImage string
	Release    *Release
}

// Page is one page of search results. Number is 1-indexed.
type Page struct {
	Number  int
	Pages   int
	PerPage int
	Items   int
	Results []Result
}

// HasNext reports whether a following page exists.
func (p *Page) HasNext() bool {
	return p != nil && p.Number < p.Pages
}

// ArtistNames returns the credited artists joined for display.
func (r Release) ArtistNames() string {
	names := make([]string, 0, len(r.Artists))
	for _, a := range r.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// LabelNames returns the distinct label names joined for display.
func (r Release) LabelNames() string {
	seen := make(map[string]bool, len(r.Labels))
	names := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		if l.Name == "" || seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

// FormatSummary returns formats as "Vinyl, 7\", 45 RPM, Single".
func (r Release) FormatSummary() string {
	parts := make([]string, 0, len(r.Formats))
	for _, f := range r.Formats {
		p := append([]string{f.Name}, f.Descriptions...)
		parts = append(parts, strings.Join(p, ", "))
	}
	return strings.Join(parts, "; ")
}

// YearString returns the year, or an empty string when unknown.
func (r Release) YearString() string {
	if r.Year <= 0 {
		return ""
	}
	return strconv.Itoa(r.Year)
}

// Display returns "Artist - Title (Year)".
func (r Release) Display() string {
	s := r.Title
	if a := r.ArtistNames(); a != "" {
		s = a + " - " + s
	}
	if y := r.YearString(); y != "" {
		s += " (" + y + ")"
	}
	return s
}

// ThumbURL returns the best small image URL, or "" when the release has none.
func (r Release) ThumbURL() string {
	if r.Thumb != "" {
		return r.Thumb
	}
	for _, img := range r.Images {
		if img.URI150 != "" {
			return img.URI150
		}
	}
	return ""
}

// CoverURL returns the primary image URL, falling back to any image and
// then to the thumbnail.
func (r Release) CoverURL() string {
	for _, img := range r.Images {
		if img.Type == "primary" && img.URI != "" {
			return img.URI
		}
	}
	for _, img := range r.Images {
		if img.URI != "" {
			return img.URI
		}
	}
	return r.Thumb
}

// API response types (internal)

type pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

type searchResponse struct {
	Pagination pagination        `json:"pagination"`
	Results    []rawSearchResult `json:"results"`
}

type rawSearchResult struct {
	ID         int         `json:"id"`
	Type       string      `json:"type"`
	Title      string      `json:"title"`
	Year       flexYear    `json:"year"`
	Country    string      `json:"country"`
	Label      []string    `json:"label"`
	Format     []string    `json:"format"`
	Formats    []rawFormat `json:"formats"`
	Genre      []string    `json:"genre"`
	Style      []string    `json:"style"`
	Thumb      string      `json:"thumb"`
	CoverImage string      `json:"cover_image"`
}

type rawFormat struct {
	Name         string   `json:"name"`
	Qty          string   `json:"qty"`
	Descriptions []string `json:"descriptions"`
}

type releaseResponse struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Year      flexYear    `json:"year"`
	Country   string      `json:"country"`
	Artists   []rawArtist `json:"artists"`
	Labels    []rawLabel  `json:"labels"`
	Formats   []rawFormat `json:"formats"`
	Images    []rawImage  `json:"images"`
	Tracklist []rawTrack  `json:"tracklist"`
	Genres    []string    `json:"genres"`
	Styles    []string    `json:"styles"`
	Thumb     string      `json:"thumb"`
}

type rawArtist struct {
	Name string `json:"name"`
	ANV  string `json:"anv"`
}

type rawLabel struct {
	Name  string `json:"name"`
	CatNo string `json:"catno"`
}

type rawImage struct {
	Type   string `json:"type"`
	URI    string `json:"uri"`
	URI150 string `json:"uri150"`
}

type rawTrack struct {
	Position string `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Type     string `json:"type_"`
}

// flexYear accepts the year as a number, a numeric string, or null.
// Search results send strings, release endpoints send numbers.
type flexYear int

func (y *flexYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*y = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*y = 0
			return nil //nolint:nilerr // unknown years are common
		}
		*y = flexYear(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*y = flexYear(int(f))
	return nil
}

// Discogs appends " (N)" to disambiguate artists sharing a name.
var artistSuffix = regexp.MustCompile(`\s+\(\d+\)$`)

func cleanArtistName(name string) string {
	return artistSuffix.ReplaceAllString(strings.TrimSpace(name), "")
}

// splitTitle splits a search title "Artist - Title" into its parts.
func splitTitle(title string) (artist, rest string) {
	if i := strings.Index(title, " - "); i >= 0 {
		return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
	}
	return "", strings.TrimSpace(title)
}

func convertFormats(raw []rawFormat) []Format {
	if len(raw) == 0 {
		return nil
	}
	formats := make([]Format, 0, len(raw))
	for _, f := range raw {
		formats = append(formats, Format{
			Name:         f.Name,
			Qty:          f.Qty,
			Descriptions: f.Descriptions,
		})
	}
	return formats
}

// formatNames are the Discogs format names. Anything else in a flat format
// list describes the format before it.
var formatNames = map[string]bool{
	"Vinyl": true, "Acetate": true, "Flexi-disc": true, "Lathe Cut": true,
	"Shellac": true, "Pathé Disc": true, "Edison Disc": true, "Cylinder": true,
	"CD": true, "CDr": true, "CDV": true, "SACD": true, "Minidisc": true,
	"DVD": true, "DVDr": true, "HD DVD": true, "HD DVD-R": true,
	"Blu-ray": true, "Blu-ray-R": true, "Laserdisc": true,
	"Cassette": true, "Microcassette": true, "DAT": true, "DCC": true,
	"Cartridge": true, "8-Track Cartridge": true, "4-Track Cartridge": true,
	"Reel-To-Reel": true, "VHS": true, "Betamax": true,
	"File": true, "Memory Stick": true, "Floppy Disk": true,
	"Box Set": true, "All Media": true,
}

// splitFlatFormats rebuilds formats from the flat list search records carry,
// e.g. ["CD", "Single", "Vinyl", "7\"", "45 RPM"]. A new format starts at each
// known name; a leading unknown entry still names the first format.
func splitFlatFormats(flat []string) []Format {
	var formats []Format
	for _, entry := range flat {
		if len(formats) == 0 || formatNames[entry] {
			formats = append(formats, Format{Name: entry})
			continue
		}
		last := &formats[len(formats)-1]
		last.Descriptions = append(last.Descriptions, entry)
	}
	return formats
}

// convertResult maps a search record. Release records get a summary Release
// built from the search fields.
func convertResult(r rawSearchResult) Result {
	res := Result{
		Type:       ResultType(r.Type),
		ID:         r.ID,
		Title:      r.Title,
		Year:       int(r.Year),
		Labels:     r.Label,
		Thumb:      r.Thumb,
		CoverImage: r.CoverImage,
	}
	if res.Type != TypeRelease {
		return res
	}

	rel := &Release{
		ID:      r.ID,
		Year:    int(r.Year),
		Country: r.Country,
		Genres:  r.Genre,
		Styles:  r.Style,
		Thumb:   r.Thumb,
	}

	artist, title := splitTitle(r.Title)
	rel.Title = title
	if artist != "" {
		rel.Artists = []Artist{{Name: cleanArtistName(artist)}}
	}

	for _, name := range r.Label {
		rel.Labels = append(rel.Labels, Label{Name: name})
	}

	rel.Formats = convertFormats(r.Formats)
	if len(rel.Formats) == 0 && len(r.Format) > 0 {
		rel.Formats = splitFlatFormats(r.Format)
	}

	if r.CoverImage != "" {
		rel.Images = []Image{{Type: "primary", URI: r.CoverImage, URI150: r.Thumb}}
	}

	res.Release = rel
	return res
}

func convertRelease(r releaseResponse) *Release {
	rel := &Release{
		ID:      r.ID,
		Title:   r.Title,
		Year:    int(r.Year),
		Country: r.Country,
		Formats: convertFormats(r.Formats),
		Genres:  r.Genres,
		Styles:  r.Styles,
		Thumb:   r.Thumb,
	}

	for _, a := range r.Artists {
		name := a.Name
		if a.ANV != "" {
			name = a.ANV
		}
		rel.Artists = append(rel.Artists, Artist{Name: cleanArtistName(name)})
	}

	for _, l := range r.Labels {
		rel.Labels = append(rel.Labels, Label{Name: cleanArtistName(l.Name), CatNo: l.CatNo})
	}

	for _, img := range r.Images {
		rel.Images = append(rel.Images, Image{Type: img.Type, URI: img.URI, URI150: img.URI150})
	}

	for _, t := range r.Tracklist {
		// Headings and index tracks group sub-tracks and carry no duration
		if t.Type != "" && t.Type != "track" {
			continue
		}
		rel.Tracklist = append(rel.Tracklist, Track{
			Position: t.Position,
			Title:    t.Title,
			Duration: t.Duration,
		})
	}

	return rel
}
