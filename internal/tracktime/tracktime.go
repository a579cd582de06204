// Package tracktime parses tracklist durations and totals them.
package tracktime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable is shown when no duration could be computed.
const NotAvailable = "N/A"

// ErrInvalid is returned for durations not in minutes:seconds form.
var ErrInvalid = errors.New("invalid duration")

// Parse converts "m:ss" into seconds. Minutes may exceed 59, seconds may not.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	minStr, secStr, ok := strings.Cut(s, ":")
	if !ok || !digits(minStr) || !digits(secStr) {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	minutes, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	seconds, err := strconv.Atoi(secStr)
	if err != nil || seconds >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	return minutes*60 + seconds, nil
}

// digits reports whether s is a non-empty run of ASCII digits. Signs are
// not part of a duration.
func digits(s string) bool {
	return s != "" && strings.TrimLeft(s, "0123456789") == ""
}

// Total sums the parsable durations. Entries that fail to parse are skipped
// and counted.
func Total(durations []string) (seconds, skipped int) {
	for _, d := range durations {
		n, err := Parse(d)
		if err != nil {
			skipped++
			continue
		}
		seconds += n
	}
	return seconds, skipped
}

// Format renders seconds as H:MM:SS, or NotAvailable when not positive.
// Hours are never padded: 330 seconds is "0:05:30".
func Format(seconds int) string {
	if seconds <= 0 {
		return NotAvailable
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Summary is Format applied to the Total of durations.
func Summary(durations []string) string {
	total, _ := Total(durations)
	return Format(total)
}
