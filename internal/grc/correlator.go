package grc

import (
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Snapshot is the engine input: the Master List plus candidate records
// keyed by framework. A Master List key in Candidates is ignored.
type Snapshot struct {
	Master     []model.ControlRecord
	Candidates map[model.Framework][]model.ControlRecord
}

// TargetFrameworks returns the candidate frameworks in canonical order
func (s Snapshot) TargetFrameworks() []model.Framework {
	return targetFrameworks(s.Candidates)
}

func targetFrameworks(candidates map[model.Framework][]model.ControlRecord) []model.Framework {
	fws := make([]model.Framework, 0, len(candidates))
	for fw := range candidates {
		if fw == model.FrameworkMasterList {
			continue
		}
		fws = append(fws, fw)
	}
	model.SortFrameworks(fws)
	return fws
}

// Correlator evaluates a RuleSet across Master and candidate records.
// It holds no mutable state and is safe for concurrent use.
type Correlator struct {
	rules *RuleSet
}

// NewCorrelator creates a correlator. A nil rule set uses DefaultRuleSet.
func NewCorrelator(rules *RuleSet) *Correlator {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Correlator{rules: rules}
}

// Rules returns the rule set in use
func (c *Correlator) Rules() *RuleSet {
	return c.rules
}

// Correlate links one Master record against every candidate. Frameworks
// are scanned in canonical order and candidates in input order. Malformed
// records, including the master itself, are reported as skipped.
func (c *Correlator) Correlate(master model.ControlRecord, candidates map[model.Framework][]model.ControlRecord) ([]model.Correlation, []model.SkippedRecord) {
	var skipped []model.SkippedRecord

	valid := true
	if reasons := ValidateRecord(master); reasons != nil {
		skipped = append(skipped, model.SkippedRecord{
			Framework: model.FrameworkMasterList,
			ID:        master.ID,
			Reasons:   reasons,
		})
		valid = false
	}

	var out []model.Correlation
	masterRefs := referenceSet(master.CrossReferenceIDs)
	for _, fw := range targetFrameworks(candidates) {
		records, bad := partition(fw, candidates[fw])
		skipped = append(skipped, bad...)
		if !valid {
			continue
		}
		for i := range records {
			p := &pair{
				master:        &master,
				candidate:     &records[i],
				target:        fw,
				masterRefs:    masterRefs,
				candidateRefs: referenceSet(records[i].CrossReferenceIDs),
			}
			if v := c.rules.evaluate(p); v.Matched() {
				out = append(out, newCorrelation(master.ID, fw, records[i].ID, v))
			}
		}
	}
	return out, skipped
}

// CorrelateAll correlates every Master record in the snapshot. Each record
// is validated once and candidates are pre-indexed, so only pairs that can
// fire a rule are evaluated. The output equals calling Correlate for each
// valid master in order.
func (c *Correlator) CorrelateAll(snap Snapshot) ([]model.Correlation, []model.SkippedRecord) {
	masters, skipped := partition(model.FrameworkMasterList, snap.Master)

	targets := snap.TargetFrameworks()
	indexes := make([]*candidateIndex, 0, len(targets))
	for _, fw := range targets {
		records, bad := partition(fw, snap.Candidates[fw])
		skipped = append(skipped, bad...)
		indexes = append(indexes, newCandidateIndex(fw, records, c.rules.profileFor(fw)))
	}

	var out []model.Correlation
	for i := range masters {
		master := &masters[i]
		masterRefs := referenceSet(master.CrossReferenceIDs)
		for _, idx := range indexes {
			for _, pos := range idx.lookup(master, masterRefs) {
				cand := &idx.records[pos]
				p := &pair{
					master:        master,
					candidate:     &cand.record,
					target:        idx.framework,
					masterRefs:    masterRefs,
					candidateRefs: cand.refs,
				}
				if v := c.rules.evaluate(p); v.Matched() {
					out = append(out, newCorrelation(master.ID, idx.framework, cand.record.ID, v))
				}
			}
		}
	}
	return out, skipped
}

func newCorrelation(masterID string, fw model.Framework, targetID string, v Verdict) model.Correlation {
	gaps := v.Gaps
	if gaps == nil {
		gaps = []string{}
	}
	return model.Correlation{
		MasterID:        masterID,
		TargetFramework: fw,
		TargetID:        targetID,
		MappingType:     v.MappingType,
		Confidence:      v.Confidence,
		Gaps:            gaps,
		Rule:            v.Rule,
	}
}
