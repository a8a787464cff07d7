package grc

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

type indexedRecord struct {
	record model.ControlRecord
	refs   mapset.Set[string]
}

// candidateIndex narrows one framework's candidates to those that can
// possibly fire a rule for a given master. Every rule needs at least one
// of: a shared id or reference, an equal standard code, an equal domain,
// or a keyword category domain.
type candidateIndex struct {
	framework model.Framework
	records   []indexedRecord
	profile   *profile

	byID     map[string][]int // bare and qualified ids
	byRef    map[string][]int // the candidates' own cross-references
	byCode   map[string][]int
	byDomain map[string][]int
}

func newCandidateIndex(fw model.Framework, records []model.ControlRecord, prof *profile) *candidateIndex {
	idx := &candidateIndex{
		framework: fw,
		records:   make([]indexedRecord, len(records)),
		profile:   prof,
		byID:      make(map[string][]int),
		byRef:     make(map[string][]int),
		byCode:    make(map[string][]int),
		byDomain:  make(map[string][]int),
	}

	for i, r := range records {
		refs := referenceSet(r.CrossReferenceIDs)
		idx.records[i] = indexedRecord{record: r, refs: refs}

		idx.byID[normalize(r.ID)] = append(idx.byID[normalize(r.ID)], i)
		q := qualify(fw, r.ID)
		idx.byID[q] = append(idx.byID[q], i)
		for ref := range refs.Iter() {
			idx.byRef[ref] = append(idx.byRef[ref], i)
		}
		if code := normalize(r.StandardCode); code != "" {
			idx.byCode[code] = append(idx.byCode[code], i)
		}
		d := normalize(r.Domain)
		idx.byDomain[d] = append(idx.byDomain[d], i)
	}
	return idx
}

// lookup returns candidate positions in input order, without duplicates
func (idx *candidateIndex) lookup(master *model.ControlRecord, masterRefs mapset.Set[string]) []int {
	hits := mapset.NewThreadUnsafeSet[int]()
	add := func(positions []int) {
		for _, p := range positions {
			hits.Add(p)
		}
	}

	for ref := range masterRefs.Iter() {
		add(idx.byID[ref])
	}
	add(idx.byRef[normalize(master.ID)])
	add(idx.byRef[qualify(model.FrameworkMasterList, master.ID)])

	if code := normalize(master.StandardCode); code != "" {
		add(idx.byCode[code])
	}
	add(idx.byDomain[normalize(master.Domain)])

	domain := wordPhrase(master.Domain)
	for _, kw := range idx.profile.keywords {
		if !containsPhrase(domain, kw.phrase) {
			continue
		}
		for cat := range kw.categories.Iter() {
			add(idx.byDomain[cat])
		}
	}

	positions := hits.ToSlice()
	sort.Ints(positions)
	return positions
}
