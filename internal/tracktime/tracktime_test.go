package tracktime

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"3:45", 225, false},
		{"0:59", 59, false},
		{"12:00", 720, false},
		{"75:30", 4530, false},
		{" 2:13 ", 133, false},
		{"3:5", 185, false},
		{"", 0, true},
		{"invalid", 0, true},
		{"3:60", 0, true},
		{"-1:30", 0, true},
		{"3:-5", 0, true},
		{"3:", 0, true},
		{":45", 0, true},
		{"1:02:03", 0, true},
		{"3.45", 0, true},
		{"-0:30", 0, true},
		{"+3:45", 0, true},
		{"3:+5", 0, true},
		{"3: 5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalid", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	seconds, skipped := Total([]string{"3:45", "4:02", "invalid", "2:13"})
	if seconds != 600 {
		t.Errorf("seconds = %d, want 600", seconds)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestTotal_SkipsSigned(t *testing.T) {
	seconds, skipped := Total([]string{"-0:30", "+3:45", "0:10"})
	if seconds != 10 {
		t.Errorf("seconds = %d, want 10", seconds)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "N/A"},
		{-5, "N/A"},
		{1, "0:00:01"},
		{330, "0:05:30"},
		{600, "0:10:00"},
		{3723, "1:02:03"},
		{36000, "10:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.seconds); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name      string
		durations []string
		want      string
	}{
		{"sums valid tracks and skips invalid", []string{"3:45", "4:02", "invalid", "2:13"}, "0:10:00"},
		{"empty tracklist", nil, "N/A"},
		{"all unparsable", []string{"", "?", "n/a"}, "N/A"},
		{"all zero", []string{"0:00", "0:00"}, "N/A"},
		{"over an hour", []string{"45:00", "20:30"}, "1:05:30"},
		{"signed durations are skipped", []string{"-0:30", "0:10"}, "0:00:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.durations); got != tt.want {
				t.Errorf("Summary(%v) = %q, want %q", tt.durations, got, tt.want)
			}
		})
	}
}
