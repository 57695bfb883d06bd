package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/store"
)

// palette is one named set of colors.
type palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

var darkPalette = palette{
	Primary:   lipgloss.Color("#2DD4BF"), // Teal
	Secondary: lipgloss.Color("#38BDF8"), // Sky
	Accent:    lipgloss.Color("#FBBF24"), // Amber
	Success:   lipgloss.Color("#22C55E"), // Green
	Error:     lipgloss.Color("#F43F5E"), // Rose
	Text:      lipgloss.Color("#F8FAFC"), // White
	TextDim:   lipgloss.Color("#94A3B8"), // Slate
	BgDark:    lipgloss.Color("#0F172A"), // Deep Navy
	BgCard:    lipgloss.Color("#1E293B"), // Dark Slate
	Border:    lipgloss.Color("#334155"), // Slate
}

var lightPalette = palette{
	Primary:   lipgloss.Color("#0D9488"),
	Secondary: lipgloss.Color("#0284C7"),
	Accent:    lipgloss.Color("#D97706"),
	Success:   lipgloss.Color("#16A34A"),
	Error:     lipgloss.Color("#E11D48"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#64748B"),
	BgDark:    lipgloss.Color("#F8FAFC"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#CBD5E1"),
}

// Active color palette. Repointed by Apply; the UI runs on a single
// goroutine so plain reassignment is safe.
var (
	Primary   = darkPalette.Primary
	Secondary = darkPalette.Secondary
	Accent    = darkPalette.Accent
	Success   = darkPalette.Success
	Error     = darkPalette.Error
	Text      = darkPalette.Text
	TextDim   = darkPalette.TextDim
	BgDark    = darkPalette.BgDark
	BgCard    = darkPalette.BgCard
	Border    = darkPalette.Border
)

// Typography and shared styles, rebuilt on Apply.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style

	Card lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

func init() {
	rebuild()
}

// Apply activates the palette for the given theme name. "system" has no
// reliable terminal background probe here, so it follows the dark
// palette; unknown names do the same.
func Apply(name string) {
	p := darkPalette
	if name == store.ThemeLight {
		p = lightPalette
	}

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border

	rebuild()
}

func rebuild() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
}
