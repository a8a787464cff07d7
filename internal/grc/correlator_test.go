package grc

import (
	"reflect"
	"testing"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

func rec(fw model.Framework, id, domain, code, req string, freq model.Frequency, refs ...string) model.ControlRecord {
	return model.ControlRecord{
		ID:                  id,
		Framework:           fw,
		Domain:              domain,
		StandardCode:        code,
		StandardRequirement: req,
		Frequency:           freq,
		CrossReferenceIDs:   refs,
	}
}

func fixtureSnapshot() Snapshot {
	ml := model.FrameworkMasterList
	tw := model.FrameworkTripwireCore
	nist := model.FrameworkNIST
	return Snapshot{
		Master: []model.ControlRecord{
			rec(ml, "ML-001", "Access - AD", "CIP-007-6", "R5.7", model.FrequencyQuarterly),
			rec(ml, "ML-002", "Access - AD", "CIP-004-6", "R4.1", model.FrequencyDaily, "nist:AC-6"),
			rec(ml, "ML-003", "Backup - Recovery", "", "", model.FrequencyWeekly),
			rec(ml, "ML-004", "Physical - Badge", "", "", model.FrequencyAlert),
			rec(ml, "", "Access - AD", "", "", ""),
		},
		Candidates: map[model.Framework][]model.ControlRecord{
			nist: {
				rec(nist, "AC-2", "Access Control", "", "", ""),
				rec(nist, "AC-6", "Access Control", "", "", ""),
				rec(nist, "CP-9", "Contingency Planning", "", "", ""),
			},
			tw: {
				rec(tw, "TW-AD-01", "Access - AD", "CIP-007-6", "R5.7", model.FrequencyQuarterly),
				rec(tw, "TW-AD-02", "Access - AD", "CIP-007-6", "R5.1", model.FrequencyQuarterly),
				rec(tw, "TW-BK-01", "", "", "", ""),
			},
			model.FrameworkSOX: {},
			ml: {
				rec(ml, "ML-999", "Access - AD", "CIP-007-6", "R5.7", ""),
			},
		},
	}
}

func TestCorrelateScenarios(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	corrs, _ := c.Correlate(snap.Master[0], snap.Candidates)

	byTarget := make(map[model.RecordKey]model.Correlation)
	for _, corr := range corrs {
		byTarget[corr.Target()] = corr
	}

	exact, ok := byTarget[model.RecordKey{Framework: model.FrameworkTripwireCore, ID: "TW-AD-01"}]
	if !ok {
		t.Fatal("no correlation to TW-AD-01")
	}
	if exact.MappingType != model.MappingFull || exact.Confidence < 90 || len(exact.Gaps) != 0 {
		t.Errorf("exact match = %+v, want Full, >= 90, no gaps", exact)
	}

	partial, ok := byTarget[model.RecordKey{Framework: model.FrameworkTripwireCore, ID: "TW-AD-02"}]
	if !ok {
		t.Fatal("no correlation to TW-AD-02")
	}
	if partial.MappingType != model.MappingPartial || partial.Confidence > 80 || len(partial.Gaps) == 0 {
		t.Errorf("partial match = %+v, want Partial, <= 80, gaps noted", partial)
	}

	related, ok := byTarget[model.RecordKey{Framework: model.FrameworkNIST, ID: "AC-2"}]
	if !ok {
		t.Fatal("no correlation to AC-2")
	}
	if related.MappingType != model.MappingRelated || related.Confidence < 50 || related.Confidence > 70 {
		t.Errorf("keyword match = %+v, want Related within 50..70", related)
	}
	if related.Gaps[0] != "domain matched by keyword only: Access" {
		t.Errorf("keyword gaps = %q", related.Gaps)
	}

	if _, ok := byTarget[model.RecordKey{Framework: model.FrameworkMasterList, ID: "ML-999"}]; ok {
		t.Error("the Master List must never be a target")
	}
}

func TestCorrelateScanOrder(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	corrs, _ := c.Correlate(snap.Master[0], snap.Candidates)

	var got []string
	for _, corr := range corrs {
		got = append(got, corr.TargetID)
	}
	// Tripwire Core before NIST 800-53, candidates in input order
	want := []string{"TW-AD-01", "TW-AD-02", "AC-2", "AC-6"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Correlate() targets = %v, want %v", got, want)
	}
}

func TestCorrelateReportsMalformedRecords(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	corrs, skipped := c.Correlate(snap.Master[4], snap.Candidates)
	if len(corrs) != 0 {
		t.Errorf("malformed master produced %d correlations", len(corrs))
	}

	var masterSkip, candidateSkip *model.SkippedRecord
	for i := range skipped {
		switch skipped[i].Framework {
		case model.FrameworkMasterList:
			masterSkip = &skipped[i]
		case model.FrameworkTripwireCore:
			candidateSkip = &skipped[i]
		}
	}
	if masterSkip == nil || !reflect.DeepEqual(masterSkip.Reasons, []string{"missing id"}) {
		t.Errorf("master skip = %+v, want reason missing id", masterSkip)
	}
	if candidateSkip == nil || candidateSkip.ID != "TW-BK-01" || candidateSkip.Index != 2 {
		t.Fatalf("candidate skip = %+v, want TW-BK-01 at index 2", candidateSkip)
	}
	if !reflect.DeepEqual(candidateSkip.Reasons, []string{"missing domain"}) {
		t.Errorf("candidate skip reasons = %q", candidateSkip.Reasons)
	}
}

func TestCorrelateNoMatchIsNotAnError(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	corrs, skipped := c.Correlate(snap.Master[3], snap.Candidates)
	if len(corrs) != 0 {
		t.Errorf("Correlate() = %+v, want none", corrs)
	}
	for _, s := range skipped {
		if s.Framework == model.FrameworkMasterList {
			t.Errorf("well-formed master reported as skipped: %+v", s)
		}
	}
}

func TestCorrelateDoesNotDeduplicatePerFramework(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	corrs, _ := c.Correlate(snap.Master[0], snap.Candidates)
	n := 0
	for _, corr := range corrs {
		if corr.TargetFramework == model.FrameworkTripwireCore {
			n++
		}
	}
	if n != 2 {
		t.Errorf("got %d Tripwire Core correlations, want 2", n)
	}
}

func TestCorrelateAllMatchesPerMaster(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	all, skipped := c.CorrelateAll(snap)

	var want []model.Correlation
	for _, m := range snap.Master {
		if ValidateRecord(m) != nil {
			continue
		}
		corrs, _ := c.Correlate(m, snap.Candidates)
		want = append(want, corrs...)
	}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("CorrelateAll() =\n%+v\nwant\n%+v", all, want)
	}

	// one master and one Tripwire record are malformed, each reported once
	if len(skipped) != 2 {
		t.Errorf("CorrelateAll() skipped %d records, want 2: %+v", len(skipped), skipped)
	}
}

func TestCorrelateAllQualifiedReference(t *testing.T) {
	c := NewCorrelator(nil)
	snap := fixtureSnapshot()

	all, _ := c.CorrelateAll(snap)
	for _, corr := range all {
		if corr.MasterID == "ML-002" && corr.TargetID == "AC-6" {
			if corr.Rule != model.RuleCrossReference || corr.Confidence != 95 {
				t.Errorf("ML-002 -> AC-6 = %+v, want cross-reference at 95", corr)
			}
			return
		}
	}
	t.Error("ML-002 -> AC-6 cross-reference not found")
}

func TestBestMatch(t *testing.T) {
	corrs := []model.Correlation{
		{MasterID: "ML-1", TargetFramework: model.FrameworkNIST, TargetID: "AC-2", MappingType: model.MappingRelated, Confidence: 70},
		{MasterID: "ML-1", TargetFramework: model.FrameworkCIS, TargetID: "5.1", MappingType: model.MappingPartial, Confidence: 70},
		{MasterID: "ML-1", TargetFramework: model.FrameworkTripwireCore, TargetID: "TW-2", MappingType: model.MappingPartial, Confidence: 70},
		{MasterID: "ML-1", TargetFramework: model.FrameworkTripwireCore, TargetID: "TW-1", MappingType: model.MappingPartial, Confidence: 70},
		{MasterID: "ML-1", TargetFramework: model.FrameworkSOX, TargetID: "S-1", MappingType: model.MappingPartial, Confidence: 60},
	}

	best, ok := BestMatch(corrs)
	if !ok {
		t.Fatal("BestMatch() found nothing")
	}
	if best.TargetID != "TW-1" {
		t.Errorf("BestMatch() = %s, want TW-1 (mapping, then framework, then id)", best.TargetID)
	}

	sorted := append([]model.Correlation(nil), corrs...)
	SortCorrelations(sorted)
	var got []string
	for _, c := range sorted {
		got = append(got, c.TargetID)
	}
	want := []string{"TW-1", "TW-2", "5.1", "AC-2", "S-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortCorrelations() = %v, want %v", got, want)
	}

	if _, ok := BestMatch(nil); ok {
		t.Error("BestMatch(nil) reported a match")
	}
}

func TestBestMatchesPerMaster(t *testing.T) {
	corrs := []model.Correlation{
		{MasterID: "ML-1", TargetFramework: model.FrameworkNIST, TargetID: "AC-2", MappingType: model.MappingRelated, Confidence: 50},
		{MasterID: "ML-2", TargetFramework: model.FrameworkCIS, TargetID: "5.1", MappingType: model.MappingFull, Confidence: 95},
		{MasterID: "ML-1", TargetFramework: model.FrameworkTripwireCore, TargetID: "TW-1", MappingType: model.MappingFull, Confidence: 90},
	}

	best := BestMatches(corrs)
	if len(best) != 2 {
		t.Fatalf("BestMatches() has %d entries, want 2", len(best))
	}
	if best["ML-1"].TargetID != "TW-1" || best["ML-2"].TargetID != "5.1" {
		t.Errorf("BestMatches() = %+v", best)
	}
}
