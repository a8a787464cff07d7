package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Colors (theme-aware, updated by theme.go)
var (
	PrimaryColor    = lipgloss.Color("#7D56F4")
	SecondaryColor  = lipgloss.Color("#04B575")
	SubtleColor     = lipgloss.Color("#626262")
	ForegroundColor = lipgloss.Color("#FFFFFF")
	FullColor       = lipgloss.Color("#04B575")
	PartialColor    = lipgloss.Color("#FFCC00")
	GapColor        = lipgloss.Color("#FF5F56")
	CriticalColor   = lipgloss.Color("#9B0000")
	HighColor       = lipgloss.Color("#FF5F56")
	MediumColor     = lipgloss.Color("#FFCC00")
	LowColor        = lipgloss.Color("#04B575")
	GapNoteColor    = lipgloss.Color("#DDA0DD")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ForegroundColor).
			Background(PrimaryColor).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ForegroundColor)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC")).
				Width(80)

	IDBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(ForegroundColor).
		Background(PrimaryColor).
		Padding(0, 1)

	GapNoteStyle = lipgloss.NewStyle().
			Foreground(GapNoteColor)

	SelectedItemStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(PrimaryColor).
				PaddingLeft(1)

	NormalItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	StatsStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 1)

	StatHighlight = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
)

// ClassColor returns the color for a classification
func ClassColor(c model.Classification) lipgloss.Color {
	switch c {
	case model.ClassFullyMapped:
		return FullColor
	case model.ClassPartiallyMapped:
		return PartialColor
	}
	return GapColor
}

// ClassBadge renders a short classification badge
func ClassBadge(c model.Classification) string {
	label := "GAP"
	switch c {
	case model.ClassFullyMapped:
		label = "FULL"
	case model.ClassPartiallyMapped:
		label = "PARTIAL"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#000000")).
		Background(ClassColor(c)).
		Padding(0, 1).
		Render(label)
}

// MappingColor returns the color for a mapping type
func MappingColor(mt model.MappingType) lipgloss.Color {
	switch mt {
	case model.MappingFull:
		return FullColor
	case model.MappingPartial:
		return PartialColor
	case model.MappingRelated:
		return SecondaryColor
	}
	return SubtleColor
}

// ConfidenceColor grades a 0-100 score
func ConfidenceColor(confidence int) lipgloss.Color {
	switch {
	case confidence >= 85:
		return FullColor
	case confidence >= 60:
		return PartialColor
	}
	return GapColor
}

// ConfidenceBadge renders "95%" in the score's color
func ConfidenceBadge(confidence int) string {
	return lipgloss.NewStyle().Foreground(ConfidenceColor(confidence)).Bold(true).Render(fmt.Sprintf("%d%%", confidence))
}

// ConfidenceBar renders a width-cell bar for a 0-100 score
func ConfidenceBar(confidence, width int) string {
	if width <= 0 {
		return ""
	}
	confidence = max(0, min(100, confidence))
	filled := confidence * width / 100
	if filled == 0 && confidence > 0 {
		filled = 1
	}
	return lipgloss.NewStyle().Foreground(ConfidenceColor(confidence)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(SubtleColor).Render(strings.Repeat("░", width-filled))
}

// SeverityColor returns the color for a gap severity
func SeverityColor(s model.Severity) lipgloss.Color {
	switch s {
	case model.SeverityCritical:
		return CriticalColor
	case model.SeverityHigh:
		return HighColor
	case model.SeverityMedium:
		return MediumColor
	}
	return LowColor
}

// SeverityBadge renders a gap severity
func SeverityBadge(s model.Severity) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ForegroundColor).
		Background(SeverityColor(s)).
		Padding(0, 1).
		Render(strings.ToUpper(s.String()))
}
