package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/report"
)

// ClassStats counts Master records per classification
type ClassStats struct {
	Full    int
	Partial int
	Gap     int
	Total   int
}

// GetClassStats counts a summary's classification buckets
func GetClassStats(s grc.Summary) ClassStats {
	return ClassStats{
		Full:    len(s.FullyMapped),
		Partial: len(s.PartiallyMapped),
		Gap:     len(s.Gaps),
		Total:   len(s.FullyMapped) + len(s.PartiallyMapped) + len(s.Gaps),
	}
}

// SeverityStats counts gap findings per severity
type SeverityStats struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

func (s SeverityStats) Total() int {
	return s.Critical + s.High + s.Medium + s.Low
}

// GetSeverityStats counts findings by severity
func GetSeverityStats(findings []model.GapFinding) SeverityStats {
	var stats SeverityStats
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityCritical:
			stats.Critical++
		case model.SeverityHigh:
			stats.High++
		case model.SeverityMedium:
			stats.Medium++
		default:
			stats.Low++
		}
	}
	return stats
}

// CoverageColor grades a coverage percentage
func CoverageColor(pct int) lipgloss.Color {
	switch {
	case pct >= 75:
		return FullColor
	case pct >= 40:
		return PartialColor
	}
	return GapColor
}

func chartTitle(s string) string {
	return TitleStyle.Render(s) + "\n\n"
}

func chartFooter(s string) string {
	return "\n" + SubtitleStyle.Render(s)
}

func bar(label, name string, value float64, color lipgloss.Color) barchart.BarData {
	return barchart.BarData{
		Label: label,
		Values: []barchart.BarValue{{
			Name:  name,
			Value: value,
			Style: lipgloss.NewStyle().Foreground(color),
		}},
	}
}

func drawBars(items []barchart.BarData, width, height, barWidth int) string {
	bc := barchart.New(max(10, width), max(4, height),
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(barWidth),
		barchart.WithBarGap(2),
	)
	bc.PushAll(items)
	bc.Draw()
	return bc.View()
}

// RenderCoverageChart draws one bar per target framework, sized by the
// share of Master records it covers
func RenderCoverageChart(s grc.Summary, width, height int) string {
	if len(s.FrameworkCoverage) == 0 {
		return "No target frameworks loaded"
	}

	var b strings.Builder
	b.WriteString(chartTitle("Coverage by Framework"))

	items := make([]barchart.BarData, 0, len(s.FrameworkCoverage))
	for i, fc := range s.FrameworkCoverage {
		items = append(items, bar(fmt.Sprint(i+1), string(fc.Framework), float64(fc.CoveragePercent), CoverageColor(fc.CoveragePercent)))
	}
	b.WriteString(drawBars(items, width-4, height-len(items)-10, 6))
	b.WriteString("\n\n")

	for i, fc := range s.FrameworkCoverage {
		marker := lipgloss.NewStyle().Foreground(CoverageColor(fc.CoveragePercent)).Render("█")
		fmt.Fprintf(&b, "%s %d. %-14s %3d%%  %d/%d masters  (%d full, %d partial, %d related links)\n",
			marker, i+1, fc.Framework, fc.CoveragePercent, fc.MappedCount, fc.TotalCount,
			fc.FullLinks, fc.PartialLinks, fc.RelatedLinks)
	}

	b.WriteString(chartFooter("g/esc back to charts menu"))
	return b.String()
}

// RenderClassificationChart draws the fully/partially mapped/gap split
func RenderClassificationChart(s grc.Summary, width, height int) string {
	stats := GetClassStats(s)
	if stats.Total == 0 {
		return "No master records loaded"
	}

	var b strings.Builder
	b.WriteString(chartTitle("Master Record Classification"))

	items := []barchart.BarData{
		bar("Full", string(model.ClassFullyMapped), float64(stats.Full), FullColor),
		bar("Partial", string(model.ClassPartiallyMapped), float64(stats.Partial), PartialColor),
		bar("Gap", string(model.ClassGap), float64(stats.Gap), GapColor),
	}
	b.WriteString(drawBars(items, width-4, height-12, 8))
	b.WriteString("\n\n")

	pct := func(n int) float64 { return float64(n) / float64(stats.Total) * 100 }
	line := func(c lipgloss.Color, label string, n int) string {
		return lipgloss.NewStyle().Foreground(c).Bold(true).Render(fmt.Sprintf("%s: %d (%.1f%%)", label, n, pct(n)))
	}
	b.WriteString(line(FullColor, "Fully mapped", stats.Full))
	b.WriteString("  ")
	b.WriteString(line(PartialColor, "Partially mapped", stats.Partial))
	b.WriteString("  ")
	b.WriteString(line(GapColor, "Gaps", stats.Gap))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Total master records: %d", stats.Total)))
	b.WriteString("\n")

	b.WriteString(chartFooter("g/esc back to charts menu"))
	return b.String()
}

// NewMatrixTable lays the coverage matrix out as a read-only table
func NewMatrixTable(s grc.Summary, width, height int) table.Model {
	m := report.BuildMatrix(s)

	domainWidth := 12
	for _, d := range m.Domains {
		domainWidth = max(domainWidth, len(d))
	}
	cellWidth := 12
	for _, fw := range m.Frameworks {
		cellWidth = max(cellWidth, len(fw))
	}

	cols := []table.Column{{Title: "Domain", Width: domainWidth}}
	for _, fw := range m.Frameworks {
		cols = append(cols, table.Column{Title: string(fw), Width: cellWidth})
	}

	rows := make([]table.Row, 0, len(m.Domains)+1)
	for i, d := range m.Domains {
		row := table.Row{d}
		for _, c := range m.Cells[i] {
			row = append(row, report.CellText(c))
		}
		rows = append(rows, row)
	}
	overall := table.Row{"Overall"}
	for _, t := range m.Totals {
		overall = append(overall, fmt.Sprintf("%d%% (%d/%d)", t.CoveragePercent, t.MappedCount, t.TotalCount))
	}
	rows = append(rows, overall)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(SubtleColor).
		BorderBottom(true).
		Bold(true).
		Foreground(PrimaryColor)
	styles.Selected = styles.Selected.Foreground(ForegroundColor).Background(PrimaryColor).Bold(false)

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, min(len(rows)+1, height-8))),
		table.WithWidth(max(20, width-4)),
	)
	t.SetStyles(styles)
	return t
}

// RenderMatrixView wraps the matrix table with a title and footer
func RenderMatrixView(t table.Model) string {
	var b strings.Builder
	b.WriteString(chartTitle("Coverage Matrix (domain × framework)"))
	if len(t.Rows()) <= 1 {
		b.WriteString(SubtitleStyle.Render("No domains to show"))
		b.WriteString("\n")
	} else {
		b.WriteString(t.View())
		b.WriteString("\n")
	}
	b.WriteString(chartFooter("j/k scroll • g/esc back to charts menu"))
	return b.String()
}

// RenderFindingsChart draws gap findings by severity followed by the list
// itself, most severe first
func RenderFindingsChart(s grc.Summary, width, height int) string {
	stats := GetSeverityStats(s.Findings)
	if stats.Total() == 0 {
		return chartTitle("Gap Findings") + "Every master record has at least one correlation\n" +
			chartFooter("g/esc back to charts menu")
	}

	var b strings.Builder
	b.WriteString(chartTitle("Gap Findings by Severity"))

	items := []barchart.BarData{
		bar("Critical", "Critical", float64(stats.Critical), CriticalColor),
		bar("High", "High", float64(stats.High), HighColor),
		bar("Medium", "Medium", float64(stats.Medium), MediumColor),
		bar("Low", "Low", float64(stats.Low), LowColor),
	}
	listRows := min(len(s.Findings), max(3, height/3))
	b.WriteString(drawBars(items, width-4, height-listRows-12, 7))
	b.WriteString("\n\n")

	for _, f := range s.Findings[:listRows] {
		freq := string(f.Record.Frequency)
		if freq == "" {
			freq = "unspecified"
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			SeverityBadge(f.Severity),
			IDBadge.Render(f.Record.ID),
			f.Record.Domain,
			SubtitleStyle.Render("("+freq+")"))
	}
	if more := len(s.Findings) - listRows; more > 0 {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("… and %d more", more)))
		b.WriteString("\n")
	}

	b.WriteString(chartFooter("g/esc back to charts menu"))
	return b.String()
}
