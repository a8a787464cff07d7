// Package agent exposes a correlation result to an LLM through ADK
// function tools.
package agent

import (
	"fmt"
	"os"
	"strings"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/report"
)

const defaultLimit = 10

// toolset binds every tool to one immutable result
type toolset struct {
	result    grc.Result
	exportDir string
}

func newToolset(result grc.Result, exportDir string) *toolset {
	if exportDir == "" {
		exportDir = "."
	}
	return &toolset{result: result, exportDir: exportDir}
}

// --- Shared output types ---

// RecordSummary is a condensed view of a control record
type RecordSummary struct {
	Framework       string   `json:"framework"`
	ID              string   `json:"id"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Domain          string   `json:"domain"`
	Standard        string   `json:"standard,omitempty"`
	Frequency       string   `json:"frequency,omitempty"`
	Status          string   `json:"status,omitempty"`
	CrossReferences []string `json:"cross_references,omitempty"`
}

func summarizeRecord(r model.ControlRecord) RecordSummary {
	return RecordSummary{
		Framework:       string(r.Framework),
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Domain:          r.Domain,
		Standard:        r.StandardRef(),
		Frequency:       string(r.Frequency),
		Status:          string(r.Status),
		CrossReferences: r.CrossReferenceIDs,
	}
}

// CorrelationSummary describes one link from a Master record
type CorrelationSummary struct {
	TargetFramework string   `json:"target_framework"`
	TargetID        string   `json:"target_id"`
	TargetTitle     string   `json:"target_title,omitempty"`
	MappingType     string   `json:"mapping_type"`
	Confidence      int      `json:"confidence"`
	Rule            string   `json:"rule"`
	Gaps            []string `json:"gaps,omitempty"`
}

func (ts *toolset) summarizeCorrelation(c model.Correlation) CorrelationSummary {
	s := CorrelationSummary{
		TargetFramework: string(c.TargetFramework),
		TargetID:        c.TargetID,
		MappingType:     c.MappingType.String(),
		Confidence:      c.Confidence,
		Rule:            string(c.Rule),
		Gaps:            c.Gaps,
	}
	if target, ok := ts.result.Record(c.TargetFramework, c.TargetID); ok {
		s.TargetTitle = target.Title
	}
	return s
}

// --- correlate_control ---

// CorrelateParams for correlate_control tool
type CorrelateParams struct {
	MasterID string `json:"master_id" jsonschema:"Master List record id (e.g., ML-001)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of correlations to return (default 10)"`
}

// CorrelateResult for correlate_control tool
type CorrelateResult struct {
	Found          bool                 `json:"found"`
	Master         *RecordSummary       `json:"master,omitempty"`
	Classification string               `json:"classification,omitempty"`
	GapSeverity    string               `json:"gap_severity,omitempty"`
	Best           *CorrelationSummary  `json:"best_match,omitempty"`
	Total          int                  `json:"total"`
	Correlations   []CorrelationSummary `json:"correlations"`
}

func (ts *toolset) correlateControl(_ tool.Context, params CorrelateParams) (CorrelateResult, error) {
	master, ok := ts.result.Master(params.MasterID)
	if !ok {
		return CorrelateResult{Found: false}, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	ms := summarizeRecord(master)
	out := CorrelateResult{
		Found:          true,
		Master:         &ms,
		Classification: string(ts.result.Summary.Classification[master.ID]),
	}
	if out.Classification == "" {
		out.Classification = string(model.ClassGap)
	}

	corrs := ts.result.CorrelationsFor(master.ID)
	out.Total = len(corrs)
	if len(corrs) == 0 {
		out.GapSeverity = grc.GapSeverity(master).String()
	}
	for i, c := range corrs {
		s := ts.summarizeCorrelation(c)
		if i == 0 {
			best := s
			out.Best = &best
		}
		if i < limit {
			out.Correlations = append(out.Correlations, s)
		}
	}
	return out, nil
}

// --- get_record ---

// GetRecordParams for get_record tool
type GetRecordParams struct {
	Framework string `json:"framework" jsonschema:"Framework name or alias: master, tripwire, alert, nist, cis, pci, hipaa, sox"`
	ID        string `json:"id" jsonschema:"Record id within the framework (e.g., AC-2, ML-004)"`
}

// GetRecordResult for get_record tool
type GetRecordResult struct {
	Found  bool           `json:"found"`
	Record *RecordSummary `json:"record,omitempty"`
	// Masters correlated to this record when it is not itself a Master
	LinkedMasters []string `json:"linked_masters,omitempty"`
}

func (ts *toolset) getRecord(_ tool.Context, params GetRecordParams) (GetRecordResult, error) {
	fw, err := model.ParseFramework(params.Framework)
	if err != nil {
		return GetRecordResult{}, err
	}
	rec, ok := ts.result.Record(fw, params.ID)
	if !ok {
		return GetRecordResult{Found: false}, nil
	}

	rs := summarizeRecord(rec)
	out := GetRecordResult{Found: true, Record: &rs}
	if fw != model.FrameworkMasterList {
		for _, c := range ts.result.Correlations {
			if c.TargetFramework == fw && strings.EqualFold(c.TargetID, rec.ID) {
				out.LinkedMasters = append(out.LinkedMasters, c.MasterID)
			}
		}
	}
	return out, nil
}

// --- export_report ---

// ExportParams for export_report tool
type ExportParams struct {
	Format string `json:"format" jsonschema:"Export format: json, csv, or markdown"`
	Kind   string `json:"kind,omitempty" jsonschema:"What to export: correlations (default) or matrix"`
}

// ExportResult for export_report tool
type ExportResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Count    int    `json:"count,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (ts *toolset) exportReport(_ tool.Context, params ExportParams) (ExportResult, error) {
	format, err := report.ParseFormat(params.Format)
	if err != nil {
		return ExportResult{Error: err.Error()}, nil
	}
	kindName := params.Kind
	if kindName == "" {
		kindName = "correlations"
	}
	kind, err := report.ParseKind(kindName)
	if err != nil {
		return ExportResult{Error: err.Error()}, nil
	}

	if err := os.MkdirAll(ts.exportDir, 0o700); err != nil {
		return ExportResult{Error: fmt.Sprintf("export directory: %v", err)}, nil
	}
	res := report.Export(ts.result, format, kind, ts.exportDir)
	if res.Err != nil {
		return ExportResult{Error: res.Err.Error()}, nil
	}
	return ExportResult{Success: true, FilePath: res.FilePath, Count: res.Count}, nil
}

// Tools creates every function tool bound to the result
func (ts *toolset) Tools() ([]tool.Tool, error) {
	var tools []tool.Tool

	correlateTool, err := functiontool.New(
		functiontool.Config{
			Name:        "correlate_control",
			Description: "Get every correlation of a Master List record to other frameworks, best match first, with mapping type, confidence and gap notes",
		},
		ts.correlateControl,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create correlate_control tool: %w", err)
	}
	tools = append(tools, correlateTool)

	recordTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_record",
			Description: "Look up a control record in any framework by id, including which Master records link to it",
		},
		ts.getRecord,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_record tool: %w", err)
	}
	tools = append(tools, recordTool)

	exportTool, err := functiontool.New(
		functiontool.Config{
			Name:        "export_report",
			Description: "Export the correlations or the coverage matrix to a file in JSON, CSV, or Markdown format",
		},
		ts.exportReport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create export_report tool: %w", err)
	}
	tools = append(tools, exportTool)

	coverageTools, err := ts.coverageTools()
	if err != nil {
		return nil, err
	}
	tools = append(tools, coverageTools...)

	riskTool, err := functiontool.New(
		functiontool.Config{
			Name:        "domain_risk_profile",
			Description: "Get a risk profile for one Master domain: classification split, per-framework coverage, gap severities and an overall risk score",
		},
		ts.domainRiskProfile,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create domain_risk_profile tool: %w", err)
	}
	return append(tools, riskTool), nil
}
