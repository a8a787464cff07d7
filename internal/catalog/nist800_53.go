package catalog

import "github.com/ethanolivertroy/crosswalk/internal/model"

// nist80053 holds a representative subset of NIST SP 800-53 Rev 5. The
// control family is used as the domain.
var nist80053 = []model.ControlRecord{
	// Access Control
	nist("AC-2", "Access Control", "Account Management",
		"Define, create, enable, modify, review, disable, and remove system accounts in accordance with organizational policy. Review accounts for compliance with account management requirements."),
	nist("AC-3", "Access Control", "Access Enforcement",
		"Enforce approved authorizations for logical access to information and system resources in accordance with applicable access control policies."),
	nist("AC-6", "Access Control", "Least Privilege",
		"Employ the principle of least privilege, allowing only authorized accesses for users which are necessary to accomplish assigned organizational tasks."),
	// Audit and Accountability
	nist("AU-2", "Audit and Accountability", "Event Logging",
		"Identify the types of events that the system is capable of logging in support of the audit function and coordinate the event logging function with other organizational entities."),
	nist("AU-6", "Audit and Accountability", "Audit Record Review, Analysis, and Reporting",
		"Review and analyze system audit records for indications of inappropriate or unusual activity and report findings."),
	nist("AU-12", "Audit and Accountability", "Audit Record Generation",
		"Provide audit record generation capability for the event types the system is capable of auditing and allow designated personnel to select which event types are logged."),
	// Assessment, Authorization, and Monitoring
	nist("CA-7", "Assessment, Authorization, and Monitoring", "Continuous Monitoring",
		"Develop a continuous monitoring strategy and implement a continuous monitoring program that includes ongoing security and privacy control assessments."),
	// Configuration Management
	nist("CM-2", "Configuration Management", "Baseline Configuration",
		"Develop, document, and maintain under configuration control a current baseline configuration of the system."),
	nist("CM-3", "Configuration Management", "Configuration Change Control",
		"Determine and document the types of changes to the system that are configuration-controlled, and review and approve proposed changes with explicit consideration for security impact."),
	nist("CM-6", "Configuration Management", "Configuration Settings",
		"Establish and document configuration settings for system components using security configuration checklists."),
	nist("CM-8", "Configuration Management", "System Component Inventory",
		"Develop and document an inventory of system components that accurately reflects the system and is consistent with the authorization boundary."),
	// Contingency Planning
	nist("CP-9", "Contingency Planning", "System Backup",
		"Conduct backups of user-level and system-level information contained in the system on a defined frequency."),
	nist("CP-10", "Contingency Planning", "System Recovery and Reconstitution",
		"Provide for the recovery and reconstitution of the system to a known state within organization-defined time period."),
	// Identification and Authentication
	nist("IA-2", "Identification and Authentication", "Identification and Authentication (Organizational Users)",
		"Uniquely identify and authenticate organizational users and associate that unique identification with processes acting on behalf of those users."),
	nist("IA-5", "Identification and Authentication", "Authenticator Management",
		"Manage system authenticators by verifying identity before initial distribution, establishing initial content, ensuring administrative activities, and protecting against unauthorized disclosure."),
	// Incident Response
	nist("IR-4", "Incident Response", "Incident Handling",
		"Implement an incident handling capability for incidents that includes preparation, detection, analysis, containment, eradication, and recovery."),
	nist("IR-6", "Incident Response", "Incident Reporting",
		"Require personnel to report suspected incidents to the organizational incident response capability within organization-defined time period."),
	nist("IR-8", "Incident Response", "Incident Response Plan",
		"Develop and maintain an incident response plan that provides the organization with a roadmap for implementing its incident response capability."),
	// Risk Assessment
	nist("RA-5", "Risk Assessment", "Vulnerability Monitoring and Scanning",
		"Monitor and scan for vulnerabilities in the system and hosted applications. Employ vulnerability monitoring tools using CVE, CWE, and NVD databases."),
	// System and Communications Protection
	nist("SC-7", "System and Communications Protection", "Boundary Protection",
		"Monitor and control communications at the external managed interfaces to the system and at key internal managed interfaces within the system."),
	// System and Information Integrity
	nist("SI-2", "System and Information Integrity", "Flaw Remediation",
		"Identify, report, and correct system flaws. Install security-relevant software updates within organization-defined time period."),
	nist("SI-3", "System and Information Integrity", "Malicious Code Protection",
		"Implement malicious code protection mechanisms at system entry and exit points to detect and eradicate malicious code."),
	nist("SI-4", "System and Information Integrity", "System Monitoring",
		"Monitor the system to detect attacks, indicators of potential attacks, and unauthorized local, network, and remote connections."),
	nist("SI-10", "System and Information Integrity", "Information Input Validation",
		"Check the validity of information inputs to the system to verify inputs match specified definitions for format and content."),
}

func nist(id, family, title, description string) model.ControlRecord {
	return model.ControlRecord{
		ID:          id,
		Framework:   model.FrameworkNIST,
		Title:       title,
		Description: description,
		Domain:      family,
		Status:      model.StatusEnabled,
	}
}
