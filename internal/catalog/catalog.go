// Package catalog provides the built-in control datasets used to seed a
// record store when no data directory is configured.
package catalog

import "github.com/ethanolivertroy/crosswalk/internal/model"

var datasets = map[model.Framework][]model.ControlRecord{
	model.FrameworkMasterList:   masterList,
	model.FrameworkTripwireCore: tripwireCore,
	model.FrameworkAlert:        alertRules,
	model.FrameworkNIST:         nist80053,
	model.FrameworkCIS:          cisV8,
	model.FrameworkPCI:          pciDSS,
	model.FrameworkHIPAA:        hipaaSecurityRule,
	model.FrameworkSOX:          soxITGC,
}

// All returns a fresh copy of every built-in dataset keyed by framework
func All() map[model.Framework][]model.ControlRecord {
	out := make(map[model.Framework][]model.ControlRecord, len(datasets))
	for fw := range datasets {
		out[fw] = Records(fw)
	}
	return out
}

// Records returns a copy of one framework's dataset, nil if unknown.
// Framework is filled in and a blank status defaults to Enabled.
func Records(fw model.Framework) []model.ControlRecord {
	src, ok := datasets[fw]
	if !ok {
		return nil
	}
	out := model.CloneRecords(src)
	for i := range out {
		out[i].Framework = fw
		if out[i].Status == "" {
			out[i].Status = model.StatusEnabled
		}
	}
	return out
}

// Master returns the built-in Master List
func Master() []model.ControlRecord {
	return Records(model.FrameworkMasterList)
}

// Frameworks lists the frameworks with a built-in dataset, Master List first
func Frameworks() []model.Framework {
	fws := make([]model.Framework, 0, len(datasets))
	for fw := range datasets {
		fws = append(fws, fw)
	}
	model.SortFrameworks(fws)
	return fws
}
