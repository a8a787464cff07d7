package catalog

import "github.com/ethanolivertroy/crosswalk/internal/model"

// masterList is the canonical control set every other framework is
// correlated against. Standard codes are NERC CIP.
var masterList = []model.ControlRecord{
	{
		ID:                  "ML-001",
		Title:               "AD Privileged Account Review",
		Description:         "Review membership of privileged Active Directory groups and remove accounts without a documented business need.",
		Domain:              "Access - AD",
		StandardCode:        "CIP-004-6",
		StandardRequirement: "R4.3",
		Frequency:           model.FrequencyQuarterly,
		CrossReferenceIDs:   []string{"NIST 800-53:AC-2", "SOX:SOX-AC-02"},
	},
	{
		ID:                  "ML-002",
		Title:               "AD Password Policy Enforcement",
		Description:         "Verify domain password policy enforces length, complexity and maximum age.",
		Domain:              "Access - AD",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R5.7",
		Frequency:           model.FrequencyQuarterly,
	},
	{
		ID:                  "ML-003",
		Title:               "Unix Local Account Inventory",
		Description:         "Enumerate local accounts on Unix hosts and reconcile against the authorized account list.",
		Domain:              "Access - Unix",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R5.2",
		Frequency:           model.FrequencyMonthly,
	},
	{
		ID:                  "ML-004",
		Title:               "Windows Local Administrator Monitoring",
		Description:         "Detect additions to the local Administrators group on Windows hosts.",
		Domain:              "Access - Windows",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R5.1",
		Frequency:           model.FrequencyDaily,
	},
	{
		ID:                  "ML-005",
		Title:               "Baseline Configuration Monitoring",
		Description:         "Monitor BES Cyber Systems for changes to the documented baseline configuration.",
		Domain:              "Change - Config",
		StandardCode:        "CIP-010-3",
		StandardRequirement: "R1.1",
		Frequency:           model.FrequencyDaily,
		CrossReferenceIDs:   []string{"TW-CH-01"},
	},
	{
		ID:                  "ML-006",
		Title:               "Baseline Deviation Review",
		Description:         "Investigate detected deviations from the baseline and document authorization or remediation.",
		Domain:              "Change - Baseline",
		StandardCode:        "CIP-010-3",
		StandardRequirement: "R2.1",
		Frequency:           model.FrequencyMonthly,
	},
	{
		ID:                  "ML-007",
		Title:               "SIEM Log Source Health",
		Description:         "Confirm every in-scope asset is forwarding security events to the SIEM.",
		Domain:              "Logging - SIEM",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R4.1",
		Frequency:           model.FrequencyDaily,
	},
	{
		ID:                  "ML-008",
		Title:               "Failed Login Alerting",
		Description:         "Alert on repeated failed authentication attempts against BES Cyber Assets.",
		Domain:              "Logging - SIEM",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R4.2",
		Frequency:           model.FrequencyAlert,
	},
	{
		ID:                  "ML-009",
		Title:               "Vulnerability Assessment",
		Description:         "Perform a paper or active vulnerability assessment of applicable systems.",
		Domain:              "Vulnerability - Scanning",
		StandardCode:        "CIP-010-3",
		StandardRequirement: "R3.1",
		Frequency:           model.FrequencyQuarterly,
	},
	{
		ID:                  "ML-010",
		Title:               "Security Patch Evaluation",
		Description:         "Evaluate released security patches for applicability and create mitigation plans.",
		Domain:              "Vulnerability - Patching",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R2.2",
		Frequency:           model.FrequencyMonthly,
	},
	{
		ID:                  "ML-011",
		Title:               "Backup Media Testing",
		Description:         "Test a representative sample of backup media to confirm information is usable for recovery.",
		Domain:              "Backup - Recovery",
		StandardCode:        "CIP-009-6",
		StandardRequirement: "R2.2",
		Frequency:           model.FrequencyAnnually,
	},
	{
		ID:                  "ML-012",
		Title:               "Incident Response Plan Test",
		Description:         "Exercise the Cyber Security Incident response plan through a drill or tabletop.",
		Domain:              "Incident - Response",
		StandardCode:        "CIP-008-6",
		StandardRequirement: "R2.1",
		Frequency:           model.FrequencyAnnually,
	},
	{
		ID:                  "ML-013",
		Title:               "Malware Signature Updates",
		Description:         "Confirm malicious code prevention signatures are current on all endpoints.",
		Domain:              "Malware - Endpoint",
		StandardCode:        "CIP-007-6",
		StandardRequirement: "R3.3",
		Frequency:           model.FrequencyDaily,
	},
	{
		ID:                  "ML-014",
		Title:               "Badge Reader Log Review",
		Description:         "Review physical badge reader logs for Physical Security Perimeter entries.",
		Domain:              "Physical - Badge Readers",
		StandardCode:        "CIP-006-6",
		StandardRequirement: "R1.8",
		Frequency:           model.FrequencyMonthly,
	},
	{
		ID:                  "ML-015",
		Title:               "Transient Cyber Asset Review",
		Description:         "Review authorization and mitigation for transient cyber assets and removable media.",
		Domain:              "Transient Assets",
		StandardCode:        "CIP-010-4",
		StandardRequirement: "R4",
		Frequency:           model.FrequencyQuarterly,
		Status:              model.StatusPendingReview,
	},
}
