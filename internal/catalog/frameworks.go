package catalog

import "github.com/ethanolivertroy/crosswalk/internal/model"

// tripwireCore mirrors the Master List domains with Tripwire policy tests
var tripwireCore = []model.ControlRecord{
	{ID: "TW-AD-01", Title: "AD Password Complexity", Domain: "Access - AD", StandardCode: "CIP-007-6", StandardRequirement: "R5.7", Frequency: model.FrequencyQuarterly},
	{ID: "TW-AD-02", Title: "AD Group Membership Changes", Domain: "Access - AD", StandardCode: "CIP-004-6", StandardRequirement: "R4.1", Frequency: model.FrequencyQuarterly},
	{ID: "TW-UX-01", Title: "Unix Account Audit", Domain: "Access - Unix", StandardCode: "CIP-007-6", StandardRequirement: "R5.2", Frequency: model.FrequencyWeekly},
	{ID: "TW-WN-01", Title: "Local Administrators Group", Domain: "Access - Windows", StandardCode: "CIP-007-6", StandardRequirement: "R5.1", Frequency: model.FrequencyDaily},
	{ID: "TW-CH-01", Title: "Configuration Change Detection", Domain: "Change - Config", StandardCode: "CIP-010-3", StandardRequirement: "R1.1", Frequency: model.FrequencyDaily},
	{ID: "TW-CH-02", Title: "Baseline Drift Report", Domain: "Change - Baseline", StandardCode: "CIP-010-3", StandardRequirement: "R2.1", Frequency: model.FrequencyMonthly},
	{ID: "TW-LG-01", Title: "Log Forwarding Configuration", Domain: "Logging - SIEM", StandardCode: "CIP-007-6", StandardRequirement: "R4.1", Frequency: model.FrequencyDaily},
	{ID: "TW-VS-01", Title: "Vulnerability Scan Policy", Domain: "Vulnerability - Scanning", StandardCode: "CIP-010-3", StandardRequirement: "R3.1", Frequency: model.FrequencyQuarterly},
	{ID: "TW-BK-01", Title: "Backup Integrity Check", Domain: "Backup - Recovery", Frequency: model.FrequencyMonthly},
}

// alertRules are real-time detections grouped by alert category
var alertRules = []model.ControlRecord{
	{ID: "AL-001", Title: "Failed Login Threshold Exceeded", Domain: "Authentication Alerts", StandardCode: "CIP-007-6", StandardRequirement: "R4.2", Frequency: model.FrequencyAlert},
	{ID: "AL-002", Title: "Unauthorized Configuration Change", Domain: "Configuration Change Alerts", Frequency: model.FrequencyAlert, CrossReferenceIDs: []string{"ML-005"}},
	{ID: "AL-003", Title: "Log Source Silent", Domain: "Log Source Alerts", Frequency: model.FrequencyAlert},
	{ID: "AL-004", Title: "Malware Detected on Endpoint", Domain: "Malware Alerts", Frequency: model.FrequencyAlert},
	{ID: "AL-005", Title: "Critical Vulnerability Detected", Domain: "Vulnerability Alerts", Frequency: model.FrequencyAlert},
	{ID: "AL-006", Title: "Disabled Legacy Telnet Alert", Domain: "Network Alerts", Frequency: model.FrequencyAlert, Status: model.StatusDisabled},
}

// pciDSS is a PCI DSS v4.0 subset; the principal requirement is the domain
var pciDSS = []model.ControlRecord{
	{ID: "1.2.1", Title: "Network security control configuration standards", Domain: "Req 1 - Network Security Controls"},
	{ID: "2.2.1", Title: "System configuration standards", Domain: "Req 2 - Secure Configurations"},
	{ID: "5.2.1", Title: "Anti-malware solution deployed", Domain: "Req 5 - Malware Protection"},
	{ID: "5.3.1", Title: "Anti-malware kept current", Domain: "Req 5 - Malware Protection", Frequency: model.FrequencyDaily},
	{ID: "6.3.3", Title: "Critical security patches installed", Domain: "Req 6 - Secure Systems and Software", Frequency: model.FrequencyMonthly},
	{ID: "7.2.1", Title: "Access control model defined", Domain: "Req 7 - Restrict Access"},
	{ID: "7.2.4", Title: "User accounts and privileges reviewed", Domain: "Req 7 - Restrict Access"},
	{ID: "8.2.6", Title: "Inactive user accounts removed", Domain: "Req 8 - Identify and Authenticate", Frequency: model.FrequencyQuarterly},
	{ID: "8.3.6", Title: "Password complexity requirements", Domain: "Req 8 - Identify and Authenticate"},
	{ID: "10.2.1", Title: "Audit logs enabled and active", Domain: "Req 10 - Log and Monitor"},
	{ID: "10.4.1", Title: "Security event logs reviewed", Domain: "Req 10 - Log and Monitor", Frequency: model.FrequencyDaily},
	{ID: "11.3.1", Title: "Internal vulnerability scans", Domain: "Req 11 - Test Security Regularly", Frequency: model.FrequencyQuarterly},
	{ID: "11.5.2", Title: "Change-detection mechanism deployed", Domain: "Req 11 - Test Security Regularly", Frequency: model.FrequencyWeekly, CrossReferenceIDs: []string{"Master List:ML-005"}},
	{ID: "12.10.1", Title: "Incident response plan exists", Domain: "Req 12 - Policy and Incident Response", Frequency: model.FrequencyAnnually},
}

// hipaaSecurityRule is a subset of the HIPAA Security Rule safeguards
var hipaaSecurityRule = []model.ControlRecord{
	{ID: "164.308(a)(1)(ii)(A)", Title: "Risk Analysis", Domain: "Security Management Process"},
	{ID: "164.308(a)(5)(ii)(B)", Title: "Protection from Malicious Software", Domain: "Security Awareness and Training"},
	{ID: "164.308(a)(6)(ii)", Title: "Response and Reporting", Domain: "Security Incident Procedures"},
	{ID: "164.308(a)(7)(ii)(A)", Title: "Data Backup Plan", Domain: "Contingency Plan"},
	{ID: "164.312(a)(1)", Title: "Access Control", Domain: "Access Control"},
	{ID: "164.312(a)(2)(i)", Title: "Unique User Identification", Domain: "Access Control"},
	{ID: "164.312(b)", Title: "Audit Controls", Domain: "Audit Controls"},
	{ID: "164.312(c)(1)", Title: "Integrity", Domain: "Integrity"},
	{ID: "164.312(d)", Title: "Person or Entity Authentication", Domain: "Person or Entity Authentication"},
	{ID: "164.312(e)(1)", Title: "Transmission Security", Domain: "Transmission Security"},
}

// soxITGC are SOX IT general controls
var soxITGC = []model.ControlRecord{
	{ID: "SOX-AC-01", Title: "User Access Provisioning", Domain: "ITGC - Access to Programs and Data"},
	{ID: "SOX-AC-02", Title: "Periodic User Access Review", Domain: "ITGC - Access to Programs and Data", Frequency: model.FrequencyQuarterly},
	{ID: "SOX-AC-03", Title: "Privileged Access Monitoring", Domain: "ITGC - Access to Programs and Data", Frequency: model.FrequencyMonthly},
	{ID: "SOX-CM-01", Title: "Change Approval", Domain: "ITGC - Program Changes"},
	{ID: "SOX-CM-02", Title: "Segregation of Duties in Migration", Domain: "ITGC - Program Changes"},
	{ID: "SOX-OP-01", Title: "Backup Job Monitoring", Domain: "ITGC - Computer Operations", Frequency: model.FrequencyDaily},
	{ID: "SOX-OP-02", Title: "Batch Job Scheduling", Domain: "ITGC - Computer Operations", Frequency: model.FrequencyDaily},
	{ID: "SOX-OP-03", Title: "Incident Management", Domain: "ITGC - Computer Operations"},
}
