package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

type profileRow struct {
	Framework model.Framework   `json:"framework"`
	Partial   int               `json:"partial"`
	Keyword   int               `json:"keyword"`
	Keywords  []grc.KeywordRule `json:"keywords"`
}

type rulesReport struct {
	Weights  grc.Weights  `json:"weights"`
	Profiles []profileRow `json:"profiles"`
}

func buildRulesReport(rs *grc.RuleSet) rulesReport {
	report := rulesReport{Weights: rs.Weights()}
	for _, fw := range rs.Frameworks() {
		p, _ := rs.Profile(fw)
		report.Profiles = append(report.Profiles, profileRow{
			Framework: fw,
			Partial:   p.Partial,
			Keyword:   p.Keyword,
			Keywords:  p.Keywords,
		})
	}
	return report
}

func (c *cli) rulesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the effective matching weights and framework profiles",
		Example: `  crosswalk rules
  crosswalk rules --config crosswalk.yaml -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "table", "json", "yaml"); err != nil {
				return err
			}
			rs, err := c.cfg.RuleSet()
			if err != nil {
				return err
			}
			report := buildRulesReport(rs)
			out := cmd.OutOrStdout()
			if format != "table" {
				return printStructured(out, format, report)
			}

			w := report.Weights
			fmt.Fprintf(out, "Cross-reference: %d  Exact standard: %d  Gap penalty: %d\n\n",
				w.CrossReference, w.ExactStandard, w.GapPenalty)
			rows := make([][]string, 0, len(report.Profiles))
			for _, p := range report.Profiles {
				keywords := make([]string, 0, len(p.Keywords))
				for _, kw := range p.Keywords {
					keywords = append(keywords, kw.Keyword)
				}
				rows = append(rows, []string{
					string(p.Framework),
					strconv.Itoa(p.Partial),
					strconv.Itoa(p.Keyword),
					truncate(strings.Join(keywords, ", "), 50),
				})
			}
			printTable(out, []string{"Framework", "Partial", "Keyword", "Keywords"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json, yaml")
	return cmd
}
