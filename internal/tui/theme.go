package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanolivertroy/crosswalk/internal/palette"
)

// ThemeName identifies a color theme
type ThemeName string

const (
	ThemeDefault    ThemeName = "default"
	ThemeDracula    ThemeName = "dracula"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeNord       ThemeName = "nord"
)

// ThemeOrder is the order t cycles through
var ThemeOrder = []ThemeName{ThemeDefault, ThemeDracula, ThemeCatppuccin, ThemeNord}

// Theme holds color definitions for the TUI
type Theme struct {
	Name       ThemeName
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Subtle     lipgloss.Color
	Full       lipgloss.Color
	Partial    lipgloss.Color
	Gap        lipgloss.Color
	Critical   lipgloss.Color
	High       lipgloss.Color
	Medium     lipgloss.Color
	Low        lipgloss.Color
	Note       lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// Themes available in the application
var Themes = map[ThemeName]Theme{
	ThemeDefault: {
		Name:       ThemeDefault,
		Primary:    lipgloss.Color("#7D56F4"),
		Secondary:  lipgloss.Color("#04B575"),
		Accent:     lipgloss.Color("#FF00FF"),
		Subtle:     lipgloss.Color("#626262"),
		Full:       lipgloss.Color("#04B575"),
		Partial:    lipgloss.Color("#FFCC00"),
		Gap:        lipgloss.Color("#FF5F56"),
		Critical:   lipgloss.Color("#9B0000"),
		High:       lipgloss.Color("#FF6B00"),
		Medium:     lipgloss.Color("#FFD700"),
		Low:        lipgloss.Color("#90EE90"),
		Note:       lipgloss.Color("#DDA0DD"),
		Background: lipgloss.Color("#1a1a1a"),
		Foreground: lipgloss.Color("#FFFFFF"),
	},
	ThemeDracula: {
		Name:       ThemeDracula,
		Primary:    lipgloss.Color("#bd93f9"), // purple
		Secondary:  lipgloss.Color("#8be9fd"), // cyan
		Accent:     lipgloss.Color("#ff79c6"), // pink
		Subtle:     lipgloss.Color("#6272a4"), // comment
		Full:       lipgloss.Color("#50fa7b"),
		Partial:    lipgloss.Color("#f1fa8c"),
		Gap:        lipgloss.Color("#ff5555"),
		Critical:   lipgloss.Color("#ff5555"),
		High:       lipgloss.Color("#ffb86c"),
		Medium:     lipgloss.Color("#f1fa8c"),
		Low:        lipgloss.Color("#50fa7b"),
		Note:       lipgloss.Color("#ff79c6"),
		Background: lipgloss.Color("#282a36"),
		Foreground: lipgloss.Color("#f8f8f2"),
	},
	ThemeCatppuccin: {
		Name:       ThemeCatppuccin,
		Primary:    lipgloss.Color("#cba6f7"), // mauve
		Secondary:  lipgloss.Color("#89dceb"), // sky
		Accent:     lipgloss.Color("#f5c2e7"), // pink
		Subtle:     lipgloss.Color("#6c7086"), // overlay0
		Full:       lipgloss.Color("#a6e3a1"),
		Partial:    lipgloss.Color("#f9e2af"),
		Gap:        lipgloss.Color("#f38ba8"),
		Critical:   lipgloss.Color("#f38ba8"),
		High:       lipgloss.Color("#fab387"),
		Medium:     lipgloss.Color("#f9e2af"),
		Low:        lipgloss.Color("#a6e3a1"),
		Note:       lipgloss.Color("#f5c2e7"),
		Background: lipgloss.Color("#1e1e2e"),
		Foreground: lipgloss.Color("#cdd6f4"),
	},
	ThemeNord: {
		Name:       ThemeNord,
		Primary:    lipgloss.Color("#5e81ac"), // nord10
		Secondary:  lipgloss.Color("#88c0d0"), // nord8
		Accent:     lipgloss.Color("#b48ead"), // nord15
		Subtle:     lipgloss.Color("#4c566a"), // nord3
		Full:       lipgloss.Color("#a3be8c"),
		Partial:    lipgloss.Color("#ebcb8b"),
		Gap:        lipgloss.Color("#bf616a"),
		Critical:   lipgloss.Color("#bf616a"),
		High:       lipgloss.Color("#d08770"),
		Medium:     lipgloss.Color("#ebcb8b"),
		Low:        lipgloss.Color("#a3be8c"),
		Note:       lipgloss.Color("#b48ead"),
		Background: lipgloss.Color("#2e3440"),
		Foreground: lipgloss.Color("#eceff4"),
	},
}

// CurrentTheme is the active theme
var CurrentTheme = Themes[ThemeDefault]

// SetTheme changes the active theme. Unknown names are ignored.
func SetTheme(name ThemeName) {
	if theme, ok := Themes[name]; ok {
		CurrentTheme = theme
		updateStyles()
	}
}

// CycleTheme switches to the next theme
func CycleTheme() ThemeName {
	next := ThemeDefault
	for i, name := range ThemeOrder {
		if name == CurrentTheme.Name {
			next = ThemeOrder[(i+1)%len(ThemeOrder)]
			break
		}
	}
	SetTheme(next)
	return next
}

// PaletteColors maps the active theme onto the command palette
func PaletteColors() palette.Colors {
	return palette.Colors{
		Primary:    CurrentTheme.Primary,
		Accent:     CurrentTheme.Accent,
		Subtle:     CurrentTheme.Subtle,
		Foreground: CurrentTheme.Foreground,
	}
}

// updateStyles refreshes the global styles with current theme colors
func updateStyles() {
	t := CurrentTheme
	PrimaryColor = t.Primary
	SecondaryColor = t.Secondary
	SubtleColor = t.Subtle
	ForegroundColor = t.Foreground
	FullColor = t.Full
	PartialColor = t.Partial
	GapColor = t.Gap
	CriticalColor = t.Critical
	HighColor = t.High
	MediumColor = t.Medium
	LowColor = t.Low
	GapNoteColor = t.Note

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Foreground).
		Background(PrimaryColor).
		Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(SubtleColor)

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Width(18)

	ValueStyle = lipgloss.NewStyle().
		Foreground(t.Foreground)

	DescriptionStyle = lipgloss.NewStyle().
		Foreground(t.Foreground).
		Width(80)

	IDBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Foreground).
		Background(PrimaryColor).
		Padding(0, 1)

	GapNoteStyle = lipgloss.NewStyle().
		Foreground(GapNoteColor)

	SelectedItemStyle = lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		PaddingLeft(1)

	StatsStyle = lipgloss.NewStyle().
		Foreground(SubtleColor).
		Padding(0, 1)

	StatHighlight = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)
}
