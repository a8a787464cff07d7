package model

import (
	"fmt"
	"math"
	"strings"
)

// MappingType is the strength of a correlation. Higher values are stronger.
type MappingType int

const (
	MappingNone MappingType = iota
	MappingRelated
	MappingPartial
	MappingFull
)

func (m MappingType) String() string {
	switch m {
	case MappingNone:
		return "None"
	case MappingRelated:
		return "Related"
	case MappingPartial:
		return "Partial"
	case MappingFull:
		return "Full"
	}
	return ""
}

// MarshalText encodes the mapping type by name
func (m MappingType) MarshalText() ([]byte, error) {
	s := m.String()
	if s == "" {
		return nil, fmt.Errorf("invalid mapping type %d", int(m))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a mapping type name (case-insensitive)
func (m *MappingType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "none":
		*m = MappingNone
	case "related":
		*m = MappingRelated
	case "partial":
		*m = MappingPartial
	case "full":
		*m = MappingFull
	default:
		return fmt.Errorf("unknown mapping type %q", string(text))
	}
	return nil
}

// RuleKind names the matching rule that produced a correlation
type RuleKind string

const (
	RuleCrossReference  RuleKind = "cross-reference"
	RuleExactStandard   RuleKind = "exact-standard"
	RulePartialStandard RuleKind = "partial-standard"
	RuleDomainKeyword   RuleKind = "domain-keyword"
)

// Correlation links a Master record to a record in another framework.
// A correlation with MappingNone is never produced.
type Correlation struct {
	MasterID        string      `json:"master_id"`
	TargetFramework Framework   `json:"target_framework"`
	TargetID        string      `json:"target_id"`
	MappingType     MappingType `json:"mapping_type"`
	Confidence      int         `json:"confidence"`
	Gaps            []string    `json:"gaps"`
	Rule            RuleKind    `json:"rule"`
}

// Target returns the key of the correlated record
func (c Correlation) Target() RecordKey {
	return RecordKey{Framework: c.TargetFramework, ID: c.TargetID}
}

// DomainCoverage is the share of a domain's Master records correlated to a framework
type DomainCoverage struct {
	Domain          string    `json:"domain"`
	Framework       Framework `json:"framework"`
	MappedCount     int       `json:"mapped_count"`
	TotalCount      int       `json:"total_count"`
	CoveragePercent int       `json:"coverage_percent"`
}

// NewDomainCoverage computes the rounded percentage, 0 when total is 0
func NewDomainCoverage(domain string, fw Framework, mapped, total int) DomainCoverage {
	return DomainCoverage{
		Domain:          domain,
		Framework:       fw,
		MappedCount:     mapped,
		TotalCount:      total,
		CoveragePercent: CoveragePercent(mapped, total),
	}
}

// CoveragePercent returns round(100*mapped/total), guarding total <= 0
func CoveragePercent(mapped, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(mapped) / float64(total)))
}

// FrameworkCoverage rolls coverage up across all domains for one framework
type FrameworkCoverage struct {
	Framework       Framework `json:"framework"`
	MappedCount     int       `json:"mapped_count"`
	TotalCount      int       `json:"total_count"`
	CoveragePercent int       `json:"coverage_percent"`
	FullLinks       int       `json:"full_links"`
	PartialLinks    int       `json:"partial_links"`
	RelatedLinks    int       `json:"related_links"`
}

// Classification buckets a Master record by its strongest correlation
type Classification string

const (
	ClassFullyMapped     Classification = "Fully Mapped"
	ClassPartiallyMapped Classification = "Partially Mapped"
	ClassGap             Classification = "Gap"
)

// Severity ranks unmapped Master records
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	}
	return ""
}

// MarshalText encodes the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	if s.String() == "" {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// ParseSeverity resolves a severity name (case-insensitive)
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	}
	return SeverityLow, fmt.Errorf("unknown severity %q", s)
}

// GapFinding is a Master record with no correlation at all
type GapFinding struct {
	Record   ControlRecord `json:"record"`
	Severity Severity      `json:"severity"`
}
