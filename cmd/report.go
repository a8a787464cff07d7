package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/report"
)

var rowHeaders = []string{"Master", "Domain", "Framework", "Target", "Mapping", "Confidence", "Gaps"}

func rowCells(r report.Row) []string {
	return []string{
		r.MasterID,
		r.Domain,
		string(r.TargetFramework),
		r.TargetID,
		r.MappingType.String(),
		strconv.Itoa(r.Confidence),
		truncate(strings.Join(r.Gaps, "; "), 60),
	}
}

// masterReport is the structured output of correlate --master
type masterReport struct {
	Master         model.ControlRecord  `json:"master"`
	Classification model.Classification `json:"classification"`
	GapSeverity    string               `json:"gap_severity,omitempty"`
	Best           *model.Correlation   `json:"best_match"`
	Correlations   []model.Correlation  `json:"correlations"`
}

func buildMasterReport(result grc.Result, id string) (masterReport, error) {
	m, ok := result.Master(id)
	if !ok {
		return masterReport{}, fmt.Errorf("no Master record %q", id)
	}
	out := masterReport{
		Master:         m,
		Classification: result.Summary.Classification[m.ID],
		Correlations:   result.CorrelationsFor(m.ID),
	}
	if out.Correlations == nil {
		out.Correlations = []model.Correlation{}
	}
	if best, ok := result.BestMatches[m.ID]; ok {
		out.Best = &best
	} else {
		out.GapSeverity = grc.GapSeverity(m).String()
	}
	return out, nil
}

func (c *cli) correlateCmd() *cobra.Command {
	var masterID, format string

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "List correlations, or one Master record's correlations",
		Example: `  crosswalk correlate
  crosswalk correlate --master ML-004
  crosswalk correlate -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "table", "json", "yaml"); err != nil {
				return err
			}
			result, err := c.correlate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if masterID == "" {
				rows := report.FlatRows(result)
				if format != "table" {
					return printStructured(out, format, rows)
				}
				cells := make([][]string, 0, len(rows))
				for _, r := range rows {
					cells = append(cells, rowCells(r))
				}
				printTable(out, rowHeaders, cells)
				return nil
			}

			mr, err := buildMasterReport(result, masterID)
			if err != nil {
				return err
			}
			if format != "table" {
				return printStructured(out, format, mr)
			}

			fmt.Fprintf(out, "%s  %s\n", mr.Master.ID, mr.Master.Title)
			fmt.Fprintf(out, "Domain: %s\n", mr.Master.Domain)
			if ref := mr.Master.StandardRef(); ref != "" {
				fmt.Fprintf(out, "Standard: %s\n", ref)
			}
			fmt.Fprintf(out, "Classification: %s\n", mr.Classification)
			if mr.Best == nil {
				fmt.Fprintf(out, "Gap severity: %s\n", mr.GapSeverity)
				return nil
			}
			fmt.Fprintf(out, "Best match: %s %s (%s, %d%%)\n\n",
				mr.Best.TargetFramework, mr.Best.TargetID, mr.Best.MappingType, mr.Best.Confidence)
			cells := make([][]string, 0, len(mr.Correlations))
			for _, corr := range mr.Correlations {
				cells = append(cells, []string{
					string(corr.TargetFramework),
					corr.TargetID,
					corr.MappingType.String(),
					strconv.Itoa(corr.Confidence),
					string(corr.Rule),
					strings.Join(corr.Gaps, "; "),
				})
			}
			printTable(out, []string{"Framework", "Target", "Mapping", "Confidence", "Rule", "Gaps"}, cells)
			return nil
		},
	}
	cmd.Flags().StringVar(&masterID, "master", "", "Only this Master record id")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json, yaml")
	return cmd
}

func (c *cli) coverageCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show the domain by framework coverage matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "table", "markdown", "json", "yaml"); err != nil {
				return err
			}
			result, err := c.correlate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			m := report.BuildMatrix(result.Summary)

			switch format {
			case "markdown":
				fmt.Fprint(out, renderMarkdown(report.RenderMarkdown(result, report.KindCoverageMatrix), 120))
				return nil
			case "json", "yaml":
				return printStructured(out, format, m)
			}

			headers := []string{"Domain"}
			for _, fw := range m.Frameworks {
				headers = append(headers, string(fw))
			}
			rows := make([][]string, 0, len(m.Domains)+1)
			for i, d := range m.Domains {
				row := []string{d}
				for _, cell := range m.Cells[i] {
					row = append(row, report.CellText(cell))
				}
				rows = append(rows, row)
			}
			overall := []string{"Overall"}
			for _, t := range m.Totals {
				overall = append(overall, fmt.Sprintf("%d%% (%d/%d)", t.CoveragePercent, t.MappedCount, t.TotalCount))
			}
			printTable(out, headers, append(rows, overall))

			s := result.Summary
			fmt.Fprintf(out, "\n%d masters: %d fully mapped, %d partially mapped, %d gaps\n",
				len(result.Masters), len(s.FullyMapped), len(s.PartiallyMapped), len(s.Gaps))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, markdown, json, yaml")
	return cmd
}

// gapRow is one finding in gaps output
type gapRow struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Domain    string `json:"domain"`
	Frequency string `json:"frequency"`
	Status    string `json:"status,omitempty"`
	Severity  string `json:"severity"`
}

func filterFindings(findings []model.GapFinding, floor model.Severity) []gapRow {
	rows := []gapRow{}
	for _, f := range findings {
		if f.Severity < floor {
			continue
		}
		rows = append(rows, gapRow{
			ID:        f.Record.ID,
			Title:     f.Record.Title,
			Domain:    f.Record.Domain,
			Frequency: string(f.Record.Frequency),
			Status:    string(f.Record.Status),
			Severity:  f.Severity.String(),
		})
	}
	return rows
}

func (c *cli) gapsCmd() *cobra.Command {
	var minSeverity, format string

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "List Master records with no correlation, most severe first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "table", "json", "yaml"); err != nil {
				return err
			}
			floor, err := model.ParseSeverity(minSeverity)
			if err != nil {
				return err
			}
			result, err := c.correlate(cmd.Context())
			if err != nil {
				return err
			}
			rows := filterFindings(result.Summary.Findings, floor)
			out := cmd.OutOrStdout()
			if format != "table" {
				return printStructured(out, format, rows)
			}
			if len(rows) == 0 {
				fmt.Fprintf(out, "No gaps at %s severity or above\n", floor)
				return nil
			}
			cells := make([][]string, 0, len(rows))
			for _, r := range rows {
				freq := r.Frequency
				if freq == "" {
					freq = "-"
				}
				cells = append(cells, []string{r.Severity, r.ID, r.Domain, freq, truncate(r.Title, 50)})
			}
			printTable(out, []string{"Severity", "ID", "Domain", "Frequency", "Title"}, cells)
			return nil
		},
	}
	cmd.Flags().StringVar(&minSeverity, "min-severity", "low", "Lowest severity to list: low, medium, high, critical")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json, yaml")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var formatName, kindName, outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write correlations or the coverage matrix to a file",
		Example: `  crosswalk export --format csv
  crosswalk export --format markdown --kind matrix --out ./reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			kind, err := report.ParseKind(kindName)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = c.cfg.Export.Dir
			}
			if err := os.MkdirAll(outDir, 0o700); err != nil {
				return fmt.Errorf("export directory: %w", err)
			}

			result, err := c.correlate(cmd.Context())
			if err != nil {
				return err
			}
			res := report.Export(result, format, kind, outDir)
			if res.Err != nil {
				return res.Err
			}
			c.logger.Info("exported", zap.String("path", res.FilePath), zap.Int("count", res.Count))

			unit := "rows"
			if kind == report.KindCoverageMatrix {
				unit = "domains"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d %s) to %s\n", kind, res.Count, unit, res.FilePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "csv", "Export format: json, csv, markdown")
	cmd.Flags().StringVar(&kindName, "kind", "correlations", "What to export: correlations, matrix")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: export.dir from config)")
	return cmd
}
