package grc

import (
	"sort"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Better reports whether a ranks ahead of b: higher confidence, then
// stronger mapping, then canonical framework order, then target id.
func Better(a, b model.Correlation) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.MappingType != b.MappingType {
		return a.MappingType > b.MappingType
	}
	if a.TargetFramework != b.TargetFramework {
		return a.TargetFramework.Less(b.TargetFramework)
	}
	if a.TargetID != b.TargetID {
		return a.TargetID < b.TargetID
	}
	return a.MasterID < b.MasterID
}

// BestMatch returns the top-ranked correlation, false when there is none
func BestMatch(corrs []model.Correlation) (model.Correlation, bool) {
	if len(corrs) == 0 {
		return model.Correlation{}, false
	}
	best := corrs[0]
	for _, c := range corrs[1:] {
		if Better(c, best) {
			best = c
		}
	}
	return best, true
}

// SortCorrelations orders correlations best first, in place
func SortCorrelations(corrs []model.Correlation) {
	sort.SliceStable(corrs, func(i, j int) bool {
		return Better(corrs[i], corrs[j])
	})
}

// BestMatches returns each master's best correlation keyed by master id
func BestMatches(corrs []model.Correlation) map[string]model.Correlation {
	best := make(map[string]model.Correlation)
	for _, c := range corrs {
		if cur, ok := best[c.MasterID]; !ok || Better(c, cur) {
			best[c.MasterID] = c
		}
	}
	return best
}
