package discogs

import "slices"

// Format tokens a release must carry to count as a 7" single.
const (
	FormatVinyl = "Vinyl"
	Desc7Inch   = `7"`
	Desc45RPM   = "45 RPM"
)

// IsEligible reports whether some format of r is Vinyl described as both
// 7" and 45 RPM. Tokens must match exactly.
func IsEligible(r Release) bool {
	for _, f := range r.Formats {
		if f.Name != FormatVinyl {
			continue
		}
		if slices.Contains(f.Descriptions, Desc7Inch) && slices.Contains(f.Descriptions, Desc45RPM) {
			return true
		}
	}
	return false
}

// FilterReleases keeps the eligible release records of a page, in catalog
// order. Scanning stops as soon as limit releases are collected, so the
// rest of the page is never inspected.
func FilterReleases(results []Result, limit int) []Release {
	if limit <= 0 {
		return nil
	}
	var out []Release
	for _, r := range results {
		if r.Type != TypeRelease || r.Release == nil {
			continue
		}
		if !IsEligible(*r.Release) {
			continue
		}
		out = append(out, *r.Release)
		if len(out) == limit {
			break
		}
	}
	return out
}
