package agent

import (
	"fmt"
	"strings"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// --- get_coverage ---

// CoverageParams for get_coverage tool
type CoverageParams struct {
	Domain    string `json:"domain,omitempty" jsonschema:"Only cells for this Master domain (case-insensitive substring)"`
	Framework string `json:"framework,omitempty" jsonschema:"Only cells for this framework name or alias"`
	MaxPct    int    `json:"max_percent,omitempty" jsonschema:"Only cells at or below this coverage percent, to find weak spots"`
}

// CoverageCell is one domain × framework cell
type CoverageCell struct {
	Domain    string `json:"domain"`
	Framework string `json:"framework"`
	Mapped    int    `json:"mapped"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

// CoverageResult for get_coverage tool
type CoverageResult struct {
	Count int            `json:"count"`
	Cells []CoverageCell `json:"cells"`
}

func (ts *toolset) getCoverage(_ tool.Context, params CoverageParams) (CoverageResult, error) {
	var fw model.Framework
	if params.Framework != "" {
		parsed, err := model.ParseFramework(params.Framework)
		if err != nil {
			return CoverageResult{}, err
		}
		fw = parsed
	}
	domain := strings.ToLower(strings.TrimSpace(params.Domain))

	out := CoverageResult{Cells: []CoverageCell{}}
	for _, dc := range ts.result.Summary.DomainCoverage {
		if fw != "" && dc.Framework != fw {
			continue
		}
		if domain != "" && !strings.Contains(strings.ToLower(dc.Domain), domain) {
			continue
		}
		if params.MaxPct > 0 && dc.CoveragePercent > params.MaxPct {
			continue
		}
		out.Cells = append(out.Cells, CoverageCell{
			Domain:    dc.Domain,
			Framework: string(dc.Framework),
			Mapped:    dc.MappedCount,
			Total:     dc.TotalCount,
			Percent:   dc.CoveragePercent,
		})
	}
	out.Count = len(out.Cells)
	return out, nil
}

// --- list_gaps ---

// ListGapsParams for list_gaps tool
type ListGapsParams struct {
	MinSeverity string `json:"min_severity,omitempty" jsonschema:"Lowest severity to include: low, medium, high, critical (default low)"`
	Domain      string `json:"domain,omitempty" jsonschema:"Only gaps in this Master domain (case-insensitive substring)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default 10)"`
}

// GapSummary is one unmapped Master record
type GapSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Domain    string `json:"domain"`
	Frequency string `json:"frequency,omitempty"`
	Status    string `json:"status,omitempty"`
	Severity  string `json:"severity"`
}

// ListGapsResult for list_gaps tool
type ListGapsResult struct {
	Count   int          `json:"count"`
	Total   int          `json:"total"`
	Results []GapSummary `json:"results"`
}

func (ts *toolset) listGaps(_ tool.Context, params ListGapsParams) (ListGapsResult, error) {
	minSev := model.SeverityLow
	if params.MinSeverity != "" {
		sev, err := model.ParseSeverity(params.MinSeverity)
		if err != nil {
			return ListGapsResult{}, err
		}
		minSev = sev
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	domain := strings.ToLower(strings.TrimSpace(params.Domain))

	out := ListGapsResult{Results: []GapSummary{}}
	for _, f := range ts.result.Summary.Findings {
		if f.Severity < minSev {
			continue
		}
		if domain != "" && !strings.Contains(strings.ToLower(f.Record.Domain), domain) {
			continue
		}
		out.Total++
		if len(out.Results) < limit {
			out.Results = append(out.Results, GapSummary{
				ID:        f.Record.ID,
				Title:     f.Record.Title,
				Domain:    f.Record.Domain,
				Frequency: string(f.Record.Frequency),
				Status:    string(f.Record.Status),
				Severity:  f.Severity.String(),
			})
		}
	}
	out.Count = len(out.Results)
	return out, nil
}

// --- framework_summary ---

// SummaryParams for framework_summary tool
type SummaryParams struct{}

// FrameworkStat is the roll-up for one target framework
type FrameworkStat struct {
	Framework    string `json:"framework"`
	Mapped       int    `json:"mapped_masters"`
	Total        int    `json:"total_masters"`
	Percent      int    `json:"coverage_percent"`
	FullLinks    int    `json:"full_links"`
	PartialLinks int    `json:"partial_links"`
	RelatedLinks int    `json:"related_links"`
}

// SummaryResult for framework_summary tool
type SummaryResult struct {
	Masters         int             `json:"masters"`
	FullyMapped     int             `json:"fully_mapped"`
	PartiallyMapped int             `json:"partially_mapped"`
	Gaps            int             `json:"gaps"`
	Correlations    int             `json:"correlations"`
	Skipped         int             `json:"skipped_records"`
	Domains         []string        `json:"domains"`
	Frameworks      []FrameworkStat `json:"frameworks"`
}

func (ts *toolset) frameworkSummary(_ tool.Context, _ SummaryParams) (SummaryResult, error) {
	s := ts.result.Summary
	out := SummaryResult{
		Masters:         len(ts.result.Masters),
		FullyMapped:     len(s.FullyMapped),
		PartiallyMapped: len(s.PartiallyMapped),
		Gaps:            len(s.Gaps),
		Correlations:    len(ts.result.Correlations),
		Skipped:         len(ts.result.Skipped),
		Domains:         s.Domains(),
	}
	for _, fc := range s.FrameworkCoverage {
		out.Frameworks = append(out.Frameworks, FrameworkStat{
			Framework:    string(fc.Framework),
			Mapped:       fc.MappedCount,
			Total:        fc.TotalCount,
			Percent:      fc.CoveragePercent,
			FullLinks:    fc.FullLinks,
			PartialLinks: fc.PartialLinks,
			RelatedLinks: fc.RelatedLinks,
		})
	}
	return out, nil
}

func (ts *toolset) coverageTools() ([]tool.Tool, error) {
	coverageTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_coverage",
			Description: "Get domain × framework coverage cells (mapped/total Master records and percent), optionally filtered by domain, framework or a maximum percent.",
		},
		ts.getCoverage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_coverage tool: %w", err)
	}

	gapsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "list_gaps",
			Description: "List Master records with no correlation in any framework, most severe first. Severity follows how often the control runs.",
		},
		ts.listGaps,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list_gaps tool: %w", err)
	}

	summaryTool, err := functiontool.New(
		functiontool.Config{
			Name:        "framework_summary",
			Description: "Get overall crosswalk statistics: classification counts, skipped records, domains and per-framework coverage with link counts by mapping type.",
		},
		ts.frameworkSummary,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create framework_summary tool: %w", err)
	}

	return []tool.Tool{coverageTool, gapsTool, summaryTool}, nil
}
