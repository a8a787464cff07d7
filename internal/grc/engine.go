// Package grc correlates security-control records across compliance
// frameworks. A RuleSet scores record pairs, the Correlator applies it to
// a Snapshot and Aggregate rolls the links up into coverage.
package grc

import (
	"strings"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Engine runs a full correlation pass. It keeps no state between runs.
type Engine struct {
	correlator *Correlator
}

// NewEngine creates an engine. A nil rule set uses DefaultRuleSet.
func NewEngine(rules *RuleSet) *Engine {
	return &Engine{correlator: NewCorrelator(rules)}
}

// Rules returns the rule set in use
func (e *Engine) Rules() *RuleSet {
	return e.correlator.Rules()
}

// Result is the complete output of one run
type Result struct {
	Masters      []model.ControlRecord                     `json:"masters"`
	Candidates   map[model.Framework][]model.ControlRecord `json:"-"`
	Frameworks   []model.Framework                         `json:"frameworks"`
	Correlations []model.Correlation                       `json:"correlations"`
	BestMatches  map[string]model.Correlation              `json:"best_matches"`
	Summary      Summary                                   `json:"summary"`
	Skipped      []model.SkippedRecord                     `json:"skipped"`
}

// Run validates the snapshot, correlates every Master record and
// aggregates coverage for the snapshot's target frameworks.
func (e *Engine) Run(snap Snapshot) Result {
	correlations, skipped := e.correlator.CorrelateAll(snap)
	masters, _ := partition(model.FrameworkMasterList, snap.Master)
	frameworks := snap.TargetFrameworks()

	candidates := make(map[model.Framework][]model.ControlRecord, len(frameworks))
	for _, fw := range frameworks {
		valid, _ := partition(fw, snap.Candidates[fw])
		candidates[fw] = valid
	}

	return Result{
		Masters:      masters,
		Candidates:   candidates,
		Frameworks:   frameworks,
		Correlations: correlations,
		BestMatches:  BestMatches(correlations),
		Summary:      Aggregate(masters, correlations, frameworks),
		Skipped:      skipped,
	}
}

// CorrelationsFor returns one master's correlations, best first
func (r Result) CorrelationsFor(masterID string) []model.Correlation {
	var out []model.Correlation
	for _, c := range r.Correlations {
		if c.MasterID == masterID {
			out = append(out, c)
		}
	}
	SortCorrelations(out)
	return out
}

// Master looks up a valid Master record by id (case-insensitive)
func (r Result) Master(id string) (model.ControlRecord, bool) {
	for _, m := range r.Masters {
		if strings.EqualFold(strings.TrimSpace(m.ID), strings.TrimSpace(id)) {
			return m, true
		}
	}
	return model.ControlRecord{}, false
}

// Record looks up any valid record, Master or candidate
func (r Result) Record(fw model.Framework, id string) (model.ControlRecord, bool) {
	if fw == model.FrameworkMasterList {
		return r.Master(id)
	}
	for _, rec := range r.Candidates[fw] {
		if strings.EqualFold(strings.TrimSpace(rec.ID), strings.TrimSpace(id)) {
			return rec, true
		}
	}
	return model.ControlRecord{}, false
}

// Items builds list items for every valid Master record in input order
func (r Result) Items() []model.MasterItem {
	counts := make(map[string]int)
	for _, c := range r.Correlations {
		counts[c.MasterID]++
	}

	items := make([]model.MasterItem, 0, len(r.Masters))
	for _, m := range r.Masters {
		item := model.MasterItem{
			ControlRecord: m,
			Class:         r.Summary.Classification[m.ID],
			LinkCount:     counts[m.ID],
		}
		if best, ok := r.BestMatches[m.ID]; ok {
			b := best
			item.Best = &b
		}
		if item.Class == "" {
			item.Class = model.ClassGap
		}
		items = append(items, item)
	}
	return items
}
