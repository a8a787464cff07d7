package model

import "strings"

// Frequency is how often a control is exercised
type Frequency string

const (
	FrequencyAlert     Frequency = "Alert"
	FrequencyDaily     Frequency = "Daily"
	FrequencyWeekly    Frequency = "Weekly"
	FrequencyMonthly   Frequency = "Monthly"
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyAnnually  Frequency = "Annually"
)

// Status is the implementation state of a control
type Status string

const (
	StatusEnabled        Status = "Enabled"
	StatusPendingReview  Status = "Pending Review"
	StatusNotImplemented Status = "Not Implemented"
	StatusDisabled       Status = "Disabled"
)

// ControlRecord is one row of compliance metadata in a framework.
// Framework plus ID is the stable key.
type ControlRecord struct {
	ID                  string    `json:"id" yaml:"id" validate:"notblank"`
	Framework           Framework `json:"framework" yaml:"framework"`
	Title               string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description         string    `json:"description,omitempty" yaml:"description,omitempty"`
	Domain              string    `json:"domain" yaml:"domain" validate:"notblank"`
	StandardCode        string    `json:"standard_code,omitempty" yaml:"standard_code,omitempty"`
	StandardRequirement string    `json:"standard_requirement,omitempty" yaml:"standard_requirement,omitempty"`
	Frequency           Frequency `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	CrossReferenceIDs   []string  `json:"cross_reference_ids,omitempty" yaml:"cross_reference_ids,omitempty"`
	Status              Status    `json:"status,omitempty" yaml:"status,omitempty"`
}

// RecordKey identifies a record across frameworks
type RecordKey struct {
	Framework Framework
	ID        string
}

func (k RecordKey) String() string {
	return string(k.Framework) + ":" + k.ID
}

// Key returns the record's stable key
func (r ControlRecord) Key() RecordKey {
	return RecordKey{Framework: r.Framework, ID: r.ID}
}

// HasStandard reports whether the record carries a standard code
func (r ControlRecord) HasStandard() bool {
	return strings.TrimSpace(r.StandardCode) != ""
}

// StandardRef formats code and requirement, e.g. "CIP-007-6 R5.7"
func (r ControlRecord) StandardRef() string {
	code := strings.TrimSpace(r.StandardCode)
	req := strings.TrimSpace(r.StandardRequirement)
	switch {
	case code == "":
		return ""
	case req == "":
		return code
	}
	return code + " " + req
}

// Clone returns a copy that shares no slices with r
func (r ControlRecord) Clone() ControlRecord {
	if r.CrossReferenceIDs != nil {
		refs := make([]string, len(r.CrossReferenceIDs))
		copy(refs, r.CrossReferenceIDs)
		r.CrossReferenceIDs = refs
	}
	return r
}

// CloneRecords deep-copies a record slice
func CloneRecords(records []ControlRecord) []ControlRecord {
	if records == nil {
		return nil
	}
	out := make([]ControlRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// SkippedRecord is a malformed record excluded from correlation
type SkippedRecord struct {
	Framework Framework `json:"framework"`
	ID        string    `json:"id"`
	Index     int       `json:"index"` // position in the framework's input slice
	Reasons   []string  `json:"reasons"`
}
