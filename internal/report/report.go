// Package report projects an engine result into flat correlation rows and
// a domain by framework coverage matrix, and exports either as JSON, CSV
// or Markdown.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// ErrUnknownFormat is returned for an unrecognised format or kind name
var ErrUnknownFormat = errors.New("unknown export format")

// Format is the export file format
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatCSV:
		return "CSV"
	case FormatMarkdown:
		return "Markdown"
	}
	return ""
}

func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	}
	return ""
}

// ParseFormat accepts json, csv, markdown or md (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return 0, fmt.Errorf("%w: %q (supported: json, csv, markdown)", ErrUnknownFormat, s)
}

// Kind selects what gets exported
type Kind int

const (
	KindCorrelations Kind = iota
	KindCoverageMatrix
)

func (k Kind) String() string {
	switch k {
	case KindCorrelations:
		return "Correlations"
	case KindCoverageMatrix:
		return "Coverage Matrix"
	}
	return ""
}

// Slug is the kind's name in file names
func (k Kind) Slug() string {
	switch k {
	case KindCorrelations:
		return "correlations"
	case KindCoverageMatrix:
		return "matrix"
	}
	return ""
}

// ParseKind accepts correlations or matrix (also coverage)
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correlations", "correlation":
		return KindCorrelations, nil
	case "matrix", "coverage", "coverage-matrix":
		return KindCoverageMatrix, nil
	}
	return 0, fmt.Errorf("%w: kind %q (supported: correlations, matrix)", ErrUnknownFormat, s)
}

// Row is one correlation flattened for export
type Row struct {
	MasterID        string            `json:"master_id"`
	MasterTitle     string            `json:"master_title"`
	Domain          string            `json:"domain"`
	TargetFramework model.Framework   `json:"target_framework"`
	TargetID        string            `json:"target_id"`
	MappingType     model.MappingType `json:"mapping_type"`
	Confidence      int               `json:"confidence"`
	Gaps            []string          `json:"gaps"`
}

var rowHeader = []string{
	"Master ID", "Master Title", "Domain", "Target Framework",
	"Target ID", "Mapping Type", "Confidence", "Gaps",
}

func (r Row) fields() []string {
	return []string{
		r.MasterID,
		r.MasterTitle,
		r.Domain,
		string(r.TargetFramework),
		r.TargetID,
		r.MappingType.String(),
		strconv.Itoa(r.Confidence),
		strings.Join(r.Gaps, "; "),
	}
}

// FlatRows returns one row per correlation, grouped by master in input
// order and best match first within a master.
func FlatRows(result grc.Result) []Row {
	byMaster := make(map[string][]model.Correlation)
	for _, c := range result.Correlations {
		byMaster[c.MasterID] = append(byMaster[c.MasterID], c)
	}

	rows := make([]Row, 0, len(result.Correlations))
	for _, m := range result.Masters {
		corrs := byMaster[m.ID]
		grc.SortCorrelations(corrs)
		for _, c := range corrs {
			gaps := c.Gaps
			if gaps == nil {
				gaps = []string{}
			}
			rows = append(rows, Row{
				MasterID:        m.ID,
				MasterTitle:     m.Title,
				Domain:          strings.TrimSpace(m.Domain),
				TargetFramework: c.TargetFramework,
				TargetID:        c.TargetID,
				MappingType:     c.MappingType,
				Confidence:      c.Confidence,
				Gaps:            gaps,
			})
		}
	}
	return rows
}

// Matrix is the domain by framework coverage grid. Cells[i][j] is the
// coverage of Domains[i] by Frameworks[j].
type Matrix struct {
	Domains    []string                  `json:"domains"`
	Frameworks []model.Framework         `json:"frameworks"`
	Cells      [][]model.DomainCoverage  `json:"cells"`
	Totals     []model.FrameworkCoverage `json:"totals"`
}

// BuildMatrix lays out a summary's coverage as a grid
func BuildMatrix(summary grc.Summary) Matrix {
	m := Matrix{
		Domains: summary.Domains(),
		Totals:  summary.FrameworkCoverage,
	}
	for _, fc := range summary.FrameworkCoverage {
		m.Frameworks = append(m.Frameworks, fc.Framework)
	}

	m.Cells = make([][]model.DomainCoverage, len(m.Domains))
	for i, d := range m.Domains {
		m.Cells[i] = make([]model.DomainCoverage, len(m.Frameworks))
		for j, fw := range m.Frameworks {
			cell, ok := summary.Coverage(d, fw)
			if !ok {
				cell = model.NewDomainCoverage(d, fw, 0, 0)
			}
			m.Cells[i][j] = cell
		}
	}
	return m
}

// CellText formats a cell as "67% (2/3)"
func CellText(c model.DomainCoverage) string {
	return fmt.Sprintf("%d%% (%d/%d)", c.CoveragePercent, c.MappedCount, c.TotalCount)
}
