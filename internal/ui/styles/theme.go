// Package styles holds the rendering context shared by every screen: the
// color palette and the lipgloss styles derived from it. A Theme is built
// once at startup and handed to each component that draws.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // focused widgets, checked boxes
	Secondary lipgloss.Color // header gradient end

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color // focused button background

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Subtle  lipgloss.Style // Very dim text, placeholders
	Title   lipgloss.Style // Bold, bright
	Focused lipgloss.Style // Focused widget label
	Cursor  lipgloss.Style // Focused button background
	Label   lipgloss.Style // Field labels on the details screen
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// Overrides replaces palette entries. Empty fields keep the default.
type Overrides struct {
	Primary string
	Muted   string
	Error   string
	Border  string
}

// Default returns the default palette.
func Default() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#a78bfa"),
		Secondary: lipgloss.Color("#f1a208"),

		FgBase:   lipgloss.Color("#c0c0c0"),
		FgMuted:  lipgloss.Color("#808080"),
		FgSubtle: lipgloss.Color("#585858"),

		BgCursor: lipgloss.Color("#303030"),

		Border:      lipgloss.Color("#585858"),
		BorderFocus: lipgloss.Color("#a78bfa"),

		Success: lipgloss.Color("#42b883"),
		Error:   lipgloss.Color("#ff5555"),
		Warning: lipgloss.Color("#f1a208"),
	}
}

// New returns the default palette with o applied.
func New(o Overrides) *Theme {
	t := Default()
	if o.Primary != "" {
		t.Primary = lipgloss.Color(o.Primary)
		t.BorderFocus = t.Primary
	}
	if o.Muted != "" {
		t.FgMuted = lipgloss.Color(o.Muted)
	}
	if o.Error != "" {
		t.Error = lipgloss.Color(o.Error)
	}
	if o.Border != "" {
		t.Border = lipgloss.Color(o.Border)
	}
	return t
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

// Panel returns a rounded border style, highlighted when focused.
func (t *Theme) Panel(focused bool) lipgloss.Style {
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Focused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.Primary).
			Bold(true),
		Label:   lipgloss.NewStyle().Foreground(t.FgMuted).Width(10),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
