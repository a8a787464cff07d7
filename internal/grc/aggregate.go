package grc

import (
	"sort"
	"strings"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Summary is the aggregated view of a correlation run
type Summary struct {
	DomainCoverage    []model.DomainCoverage          `json:"domain_coverage"`
	FrameworkCoverage []model.FrameworkCoverage       `json:"framework_coverage"`
	FullyMapped       []model.ControlRecord           `json:"fully_mapped"`
	PartiallyMapped   []model.ControlRecord           `json:"partially_mapped"`
	Gaps              []model.ControlRecord           `json:"gaps"`
	Findings          []model.GapFinding              `json:"findings"`
	Classification    map[string]model.Classification `json:"classification"`
}

// Domains returns the distinct Master domains in sorted order
func (s Summary) Domains() []string {
	var domains []string
	seen := make(map[string]bool)
	for _, dc := range s.DomainCoverage {
		if !seen[dc.Domain] {
			seen[dc.Domain] = true
			domains = append(domains, dc.Domain)
		}
	}
	return domains
}

// Coverage returns the cell for one domain and framework
func (s Summary) Coverage(domain string, fw model.Framework) (model.DomainCoverage, bool) {
	for _, dc := range s.DomainCoverage {
		if dc.Framework == fw && normalize(dc.Domain) == normalize(domain) {
			return dc, true
		}
	}
	return model.DomainCoverage{}, false
}

// Aggregate classifies Master records and rolls correlations up into
// coverage. A nil frameworks slice means the canonical list. Every listed
// framework gets a cell for every domain, even with no candidates.
// Malformed masters and correlations for unknown masters are ignored.
func Aggregate(masters []model.ControlRecord, correlations []model.Correlation, frameworks []model.Framework) Summary {
	if frameworks == nil {
		frameworks = model.CanonicalFrameworks
	}
	fws := make([]model.Framework, 0, len(frameworks))
	seenFw := make(map[model.Framework]bool)
	for _, fw := range frameworks {
		if fw == model.FrameworkMasterList || seenFw[fw] {
			continue
		}
		seenFw[fw] = true
		fws = append(fws, fw)
	}
	model.SortFrameworks(fws)

	valid, _ := partition(model.FrameworkMasterList, masters)
	known := make(map[string]bool, len(valid))
	for _, m := range valid {
		known[m.ID] = true
	}

	strongest := make(map[string]model.MappingType)
	linked := make(map[model.Framework]map[string]bool) // framework -> master ids
	links := make(map[model.Framework]*model.FrameworkCoverage)
	for _, fw := range fws {
		linked[fw] = make(map[string]bool)
		links[fw] = &model.FrameworkCoverage{Framework: fw}
	}

	for _, c := range correlations {
		if !known[c.MasterID] || c.MappingType == model.MappingNone {
			continue
		}
		if c.MappingType > strongest[c.MasterID] {
			strongest[c.MasterID] = c.MappingType
		}
		fc, ok := links[c.TargetFramework]
		if !ok {
			continue
		}
		linked[c.TargetFramework][c.MasterID] = true
		switch c.MappingType {
		case model.MappingFull:
			fc.FullLinks++
		case model.MappingPartial:
			fc.PartialLinks++
		case model.MappingRelated:
			fc.RelatedLinks++
		}
	}

	summary := Summary{
		Classification: make(map[string]model.Classification, len(valid)),
	}
	// domains group case-insensitively under the first spelling seen
	byDomain := make(map[string][]string)
	label := make(map[string]string)
	for _, m := range valid {
		class := classify(strongest[m.ID])
		summary.Classification[m.ID] = class
		switch class {
		case model.ClassFullyMapped:
			summary.FullyMapped = append(summary.FullyMapped, m)
		case model.ClassPartiallyMapped:
			summary.PartiallyMapped = append(summary.PartiallyMapped, m)
		default:
			summary.Gaps = append(summary.Gaps, m)
			summary.Findings = append(summary.Findings, model.GapFinding{Record: m, Severity: GapSeverity(m)})
		}
		key := normalize(m.Domain)
		if _, ok := label[key]; !ok {
			label[key] = strings.TrimSpace(m.Domain)
		}
		byDomain[key] = append(byDomain[key], m.ID)
	}
	sortFindings(summary.Findings)

	domains := make([]string, 0, len(byDomain))
	for key := range byDomain {
		domains = append(domains, key)
	}
	sort.Slice(domains, func(i, j int) bool {
		a, b := label[domains[i]], label[domains[j]]
		if a != b {
			return a < b
		}
		return domains[i] < domains[j]
	})

	for _, key := range domains {
		ids, d := byDomain[key], label[key]
		for _, fw := range fws {
			mapped := 0
			for _, id := range ids {
				if linked[fw][id] {
					mapped++
				}
			}
			summary.DomainCoverage = append(summary.DomainCoverage, model.NewDomainCoverage(d, fw, mapped, len(ids)))
		}
	}

	for _, fw := range fws {
		fc := links[fw]
		fc.MappedCount = len(linked[fw])
		fc.TotalCount = len(valid)
		fc.CoveragePercent = model.CoveragePercent(fc.MappedCount, fc.TotalCount)
		summary.FrameworkCoverage = append(summary.FrameworkCoverage, *fc)
	}
	return summary
}

func classify(strongest model.MappingType) model.Classification {
	switch {
	case strongest == model.MappingFull:
		return model.ClassFullyMapped
	case strongest >= model.MappingRelated:
		return model.ClassPartiallyMapped
	}
	return model.ClassGap
}

// GapSeverity ranks an unmapped Master record by how often the control
// is meant to run. Disabled controls are always Low.
func GapSeverity(r model.ControlRecord) model.Severity {
	if r.Status == model.StatusDisabled {
		return model.SeverityLow
	}
	switch model.Frequency(strings.TrimSpace(string(r.Frequency))) {
	case model.FrequencyAlert:
		return model.SeverityCritical
	case model.FrequencyDaily, model.FrequencyWeekly:
		return model.SeverityHigh
	case model.FrequencyMonthly, model.FrequencyQuarterly:
		return model.SeverityMedium
	case model.FrequencyAnnually:
		return model.SeverityLow
	}
	return model.SeverityMedium
}

func sortFindings(findings []model.GapFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Record.Domain != b.Record.Domain {
			return a.Record.Domain < b.Record.Domain
		}
		return a.Record.ID < b.Record.ID
	})
}
