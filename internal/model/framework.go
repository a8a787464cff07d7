// Package model defines the control records and correlation results shared by
// the engine, the record store and the presentation layers.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Framework identifies the regulatory source a control record belongs to
type Framework string

const (
	FrameworkMasterList   Framework = "Master List"
	FrameworkTripwireCore Framework = "Tripwire Core"
	FrameworkAlert        Framework = "Alert"
	FrameworkNIST         Framework = "NIST 800-53"
	FrameworkCIS          Framework = "CIS"
	FrameworkPCI          Framework = "PCI-DSS"
	FrameworkHIPAA        Framework = "HIPAA"
	FrameworkSOX          Framework = "SOX"
)

// CanonicalFrameworks is the fixed order secondary frameworks are scanned,
// displayed and tie-broken in. The Master List is never a target.
var CanonicalFrameworks = []Framework{
	FrameworkTripwireCore,
	FrameworkAlert,
	FrameworkNIST,
	FrameworkCIS,
	FrameworkPCI,
	FrameworkHIPAA,
	FrameworkSOX,
}

var frameworkAliases = map[string]Framework{
	"master":        FrameworkMasterList,
	"master list":   FrameworkMasterList,
	"masterlist":    FrameworkMasterList,
	"tripwire":      FrameworkTripwireCore,
	"tripwire core": FrameworkTripwireCore,
	"tripwirecore":  FrameworkTripwireCore,
	"alert":         FrameworkAlert,
	"nist":          FrameworkNIST,
	"nist 800-53":   FrameworkNIST,
	"nist80053":     FrameworkNIST,
	"cis":           FrameworkCIS,
	"pci":           FrameworkPCI,
	"pci-dss":       FrameworkPCI,
	"pcidss":        FrameworkPCI,
	"hipaa":         FrameworkHIPAA,
	"sox":           FrameworkSOX,
}

// ParseFramework resolves a display name or short alias (case-insensitive)
func ParseFramework(s string) (Framework, error) {
	if fw, ok := frameworkAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return fw, nil
	}
	return "", fmt.Errorf("unknown framework %q", s)
}

// Rank returns the framework's position in CanonicalFrameworks, or
// len(CanonicalFrameworks) for frameworks outside the canonical list.
// The Master List ranks before everything.
func (f Framework) Rank() int {
	if f == FrameworkMasterList {
		return -1
	}
	for i, fw := range CanonicalFrameworks {
		if fw == f {
			return i
		}
	}
	return len(CanonicalFrameworks)
}

// Less orders frameworks canonically, falling back to name for unknown ones
func (f Framework) Less(other Framework) bool {
	ri, rj := f.Rank(), other.Rank()
	if ri != rj {
		return ri < rj
	}
	return f < other
}

// Slug returns a filesystem-friendly name, e.g. "nist-800-53"
func (f Framework) Slug() string {
	s := strings.ToLower(string(f))
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// FrameworkFromSlug is the inverse of Slug for known frameworks
func FrameworkFromSlug(slug string) (Framework, bool) {
	for _, fw := range append([]Framework{FrameworkMasterList}, CanonicalFrameworks...) {
		if fw.Slug() == slug {
			return fw, true
		}
	}
	return "", false
}

// SortFrameworks sorts in canonical order in place
func SortFrameworks(fws []Framework) {
	sort.SliceStable(fws, func(i, j int) bool {
		return fws[i].Less(fws[j])
	})
}
