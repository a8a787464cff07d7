package agent

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"google.golang.org/adk/tool"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Domain risk scoring weights. The total is capped at 100.
const (
	RiskScoreGapWeight      = 50.0 // times the share of gap masters
	RiskScorePartialWeight  = 15.0 // times the share of partially mapped masters
	RiskScoreCriticalWeight = 10.0 // per critical gap
	RiskScoreCriticalCap    = 20.0
	RiskScoreHighWeight     = 5.0 // per high gap
	RiskScoreHighCap        = 10.0
	RiskScoreCoverageWeight = 0.2 // times the uncovered percent, averaged over frameworks
	RiskScoreMaxTotal       = 100.0

	RiskLevelCriticalThreshold = 70.0
	RiskLevelHighThreshold     = 45.0
	RiskLevelMediumThreshold   = 20.0
)

// DomainRiskParams for domain_risk_profile tool
type DomainRiskParams struct {
	Domain string `json:"domain" jsonschema:"Master domain to analyze (case-insensitive, exact or substring)"`
}

// DomainRiskResult for domain_risk_profile tool
type DomainRiskResult struct {
	Domain          string         `json:"domain"`
	Found           bool           `json:"found"`
	Masters         int            `json:"masters"`
	FullyMapped     int            `json:"fully_mapped"`
	PartiallyMapped int            `json:"partially_mapped"`
	Gaps            int            `json:"gaps"`
	CriticalGaps    int            `json:"critical_gaps"`
	HighGaps        int            `json:"high_gaps"`
	AverageCoverage int            `json:"average_coverage_percent"`
	WeakestCells    []CoverageCell `json:"weakest_frameworks"`
	GapRecords      []GapSummary   `json:"gap_records,omitempty"`
	RiskScore       float64        `json:"risk_score"`
	RiskLevel       string         `json:"risk_level"`
}

// resolveDomain prefers an exact (case-insensitive) match, then the first
// domain containing query
func resolveDomain(domains []string, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, d := range domains {
		if strings.ToLower(d) == q {
			return d, true
		}
	}
	for _, d := range domains {
		if strings.Contains(strings.ToLower(d), q) {
			return d, true
		}
	}
	return "", false
}

func (ts *toolset) domainRiskProfile(_ tool.Context, params DomainRiskParams) (DomainRiskResult, error) {
	s := ts.result.Summary
	domain, ok := resolveDomain(s.Domains(), params.Domain)
	if !ok {
		return DomainRiskResult{Domain: params.Domain, Found: false}, nil
	}

	out := DomainRiskResult{Domain: domain, Found: true}
	for _, m := range ts.result.Masters {
		if !sameDomain(m.Domain, domain) {
			continue
		}
		out.Masters++
		switch s.Classification[m.ID] {
		case model.ClassFullyMapped:
			out.FullyMapped++
		case model.ClassPartiallyMapped:
			out.PartiallyMapped++
		}
	}
	for _, f := range s.Findings {
		if !sameDomain(f.Record.Domain, domain) {
			continue
		}
		out.Gaps++
		switch f.Severity {
		case model.SeverityCritical:
			out.CriticalGaps++
		case model.SeverityHigh:
			out.HighGaps++
		}
		out.GapRecords = append(out.GapRecords, GapSummary{
			ID:        f.Record.ID,
			Title:     f.Record.Title,
			Domain:    f.Record.Domain,
			Frequency: string(f.Record.Frequency),
			Status:    string(f.Record.Status),
			Severity:  f.Severity.String(),
		})
	}

	var cells []CoverageCell
	sum := 0
	for _, dc := range s.DomainCoverage {
		if dc.Domain != domain {
			continue
		}
		sum += dc.CoveragePercent
		cells = append(cells, CoverageCell{
			Domain:    dc.Domain,
			Framework: string(dc.Framework),
			Mapped:    dc.MappedCount,
			Total:     dc.TotalCount,
			Percent:   dc.CoveragePercent,
		})
	}
	if len(cells) > 0 {
		out.AverageCoverage = int(math.Round(float64(sum) / float64(len(cells))))
	}
	out.WeakestCells = weakest(cells, 3)

	out.RiskScore = calculateDomainRiskScore(out)
	out.RiskLevel = getRiskLevel(out.RiskScore)
	return out, nil
}

func sameDomain(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// weakest returns up to n cells with the lowest coverage, keeping
// framework order among ties
func weakest(cells []CoverageCell, n int) []CoverageCell {
	sorted := slices.Clone(cells)
	slices.SortStableFunc(sorted, func(a, b CoverageCell) int {
		return cmp.Compare(a.Percent, b.Percent)
	})
	return sorted[:min(n, len(sorted))]
}

func calculateDomainRiskScore(r DomainRiskResult) float64 {
	if r.Masters == 0 {
		return 0
	}
	total := float64(r.Masters)

	gapScore := float64(r.Gaps) / total * RiskScoreGapWeight
	partialScore := float64(r.PartiallyMapped) / total * RiskScorePartialWeight
	criticalScore := math.Min(float64(r.CriticalGaps)*RiskScoreCriticalWeight, RiskScoreCriticalCap)
	highScore := math.Min(float64(r.HighGaps)*RiskScoreHighWeight, RiskScoreHighCap)
	coverageScore := float64(100-r.AverageCoverage) * RiskScoreCoverageWeight

	score := gapScore + partialScore + criticalScore + highScore + coverageScore
	return math.Round(math.Min(score, RiskScoreMaxTotal)*10) / 10
}

func getRiskLevel(score float64) string {
	switch {
	case score >= RiskLevelCriticalThreshold:
		return "CRITICAL"
	case score >= RiskLevelHighThreshold:
		return "HIGH"
	case score >= RiskLevelMediumThreshold:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
