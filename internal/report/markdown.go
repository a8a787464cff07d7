package report

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
)

// RenderMarkdown renders the result as a Markdown document. The same text
// is written by Export and shown by the CLI through glamour.
func RenderMarkdown(result grc.Result, kind Kind) string {
	var b strings.Builder
	s := result.Summary

	fmt.Fprintf(&b, "# Crosswalk %s Report\n\n", kind)
	b.WriteString("## Summary\n\n")
	total := len(result.Masters)
	fmt.Fprintf(&b, "- **Master records:** %d\n", total)
	fmt.Fprintf(&b, "- **Correlations:** %d\n", len(result.Correlations))
	fmt.Fprintf(&b, "- **Fully mapped:** %d (%s)\n", len(s.FullyMapped), share(len(s.FullyMapped), total))
	fmt.Fprintf(&b, "- **Partially mapped:** %d (%s)\n", len(s.PartiallyMapped), share(len(s.PartiallyMapped), total))
	fmt.Fprintf(&b, "- **Gaps:** %d (%s)\n", len(s.Gaps), share(len(s.Gaps), total))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(&b, "- **Skipped records:** %d\n", len(result.Skipped))
	}
	b.WriteString("\n")

	switch kind {
	case KindCoverageMatrix:
		writeMatrixMarkdown(&b, BuildMatrix(s))
		writeFindingsMarkdown(&b, s)
	default:
		writeRowsMarkdown(&b, FlatRows(result))
	}
	return b.String()
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

func writeRowsMarkdown(b *strings.Builder, rows []Row) {
	b.WriteString("## Correlations\n\n")
	if len(rows) == 0 {
		b.WriteString("_No correlations._\n")
		return
	}
	b.WriteString("| Master ID | Domain | Framework | Target ID | Mapping | Confidence | Gaps |\n")
	b.WriteString("|-----------|--------|-----------|-----------|---------|------------|------|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %d%% | %s |\n",
			cell(r.MasterID), cell(r.Domain), cell(string(r.TargetFramework)), cell(r.TargetID),
			r.MappingType, r.Confidence, cell(strings.Join(r.Gaps, "; ")))
	}
}

func writeMatrixMarkdown(b *strings.Builder, m Matrix) {
	b.WriteString("## Coverage Matrix\n\n")
	if len(m.Frameworks) == 0 {
		b.WriteString("_No target frameworks._\n\n")
		return
	}

	b.WriteString("| Domain |")
	for _, fw := range m.Frameworks {
		fmt.Fprintf(b, " %s |", cell(string(fw)))
	}
	b.WriteString("\n|--------|")
	for range m.Frameworks {
		b.WriteString("------|")
	}
	b.WriteString("\n")

	for i, d := range m.Domains {
		fmt.Fprintf(b, "| %s |", cell(d))
		for _, c := range m.Cells[i] {
			fmt.Fprintf(b, " %s |", CellText(c))
		}
		b.WriteString("\n")
	}
	b.WriteString("| **Overall** |")
	for _, t := range m.Totals {
		fmt.Fprintf(b, " **%d%%** (%d/%d) |", t.CoveragePercent, t.MappedCount, t.TotalCount)
	}
	b.WriteString("\n\n")
}

func writeFindingsMarkdown(b *strings.Builder, s grc.Summary) {
	b.WriteString("## Gap Findings\n\n")
	if len(s.Findings) == 0 {
		b.WriteString("_Every master record has at least one correlation._\n")
		return
	}
	b.WriteString("| Severity | Master ID | Domain | Frequency | Title |\n")
	b.WriteString("|----------|-----------|--------|-----------|-------|\n")
	for _, f := range s.Findings {
		freq := string(f.Record.Frequency)
		if freq == "" {
			freq = "-"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			f.Severity, cell(f.Record.ID), cell(f.Record.Domain), cell(freq), cell(f.Record.Title))
	}
}

// cell keeps pipes and newlines from breaking a table row
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
