package catalog

import (
	"fmt"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// cisV8 holds CIS Critical Security Controls v8 safeguards. The parent
// control is used as the domain. The requirement is the lowest
// implementation group the safeguard belongs to.
var cisV8 = []model.ControlRecord{
	// Control 1
	cis("1.1", "Inventory of Enterprise Assets", 1, "Establish and Maintain Detailed Enterprise Asset Inventory",
		"Establish and maintain an accurate, detailed, and up-to-date inventory of all enterprise assets."),
	cis("1.2", "Inventory of Enterprise Assets", 1, "Address Unauthorized Assets",
		"Ensure that a process exists to address unauthorized assets on a weekly basis."),
	// Control 2
	cis("2.1", "Inventory of Software Assets", 1, "Establish and Maintain a Software Inventory",
		"Establish and maintain a detailed inventory of all licensed software installed on enterprise assets."),
	cis("2.2", "Inventory of Software Assets", 1, "Ensure Authorized Software is Currently Supported",
		"Ensure that only currently supported software is designated as authorized."),
	cis("2.3", "Inventory of Software Assets", 1, "Address Unauthorized Software",
		"Ensure that unauthorized software is either removed or the inventory is updated in a timely manner."),
	// Control 3
	cis("3.1", "Data Protection", 1, "Establish and Maintain a Data Management Process",
		"Establish and maintain a data management process including data sensitivity levels."),
	cis("3.4", "Data Protection", 1, "Enforce Data Retention",
		"Retain data according to the enterprise's data management process."),
	// Control 4
	cis("4.1", "Secure Configuration", 1, "Establish and Maintain a Secure Configuration Process",
		"Establish and maintain a secure configuration process for enterprise assets and software."),
	cis("4.7", "Secure Configuration", 1, "Manage Default Accounts on Enterprise Assets and Software",
		"Manage default accounts on enterprise assets and software."),
	// Control 5
	cis("5.1", "Account Management", 1, "Establish and Maintain an Inventory of Accounts",
		"Establish and maintain an inventory of all accounts managed in the enterprise."),
	cis("5.3", "Account Management", 1, "Disable Dormant Accounts",
		"Delete or disable any dormant accounts after a period of 45 days of inactivity."),
	cis("5.4", "Account Management", 1, "Restrict Administrator Privileges to Dedicated Administrator Accounts",
		"Restrict administrator privileges to dedicated administrator accounts on enterprise assets."),
	// Control 6
	cis("6.1", "Access Control Management", 1, "Establish an Access Granting Process",
		"Establish and follow a process for granting access to enterprise assets and software."),
	cis("6.2", "Access Control Management", 1, "Establish an Access Revoking Process",
		"Establish and follow a process for revoking access to enterprise assets and software."),
	cis("6.5", "Access Control Management", 1, "Require MFA for Administrative Access",
		"Require MFA for all administrative access accounts."),
	// Control 7
	cis("7.1", "Continuous Vulnerability Management", 1, "Establish and Maintain a Vulnerability Management Process",
		"Establish and maintain a documented vulnerability management process for enterprise assets."),
	cis("7.2", "Continuous Vulnerability Management", 1, "Establish and Maintain a Remediation Process",
		"Establish and maintain a risk-based remediation strategy documented in a remediation process."),
	cis("7.3", "Continuous Vulnerability Management", 1, "Perform Automated Operating System Patch Management",
		"Perform operating system updates on enterprise assets through automated patch management."),
	cis("7.4", "Continuous Vulnerability Management", 1, "Perform Automated Application Patch Management",
		"Perform application updates on enterprise assets through automated patch management."),
	cis("7.5", "Continuous Vulnerability Management", 2, "Perform Automated Vulnerability Scans of Internal Enterprise Assets",
		"Perform automated vulnerability scans of internal enterprise assets on a quarterly basis."),
	cis("7.6", "Continuous Vulnerability Management", 2, "Perform Automated Vulnerability Scans of Externally-Exposed Enterprise Assets",
		"Perform automated vulnerability scans of externally-exposed enterprise assets."),
	cis("7.7", "Continuous Vulnerability Management", 2, "Remediate Detected Vulnerabilities",
		"Remediate detected vulnerabilities in software through processes and tooling on a monthly basis."),
	// Control 8
	cis("8.1", "Audit Log Management", 1, "Establish and Maintain an Audit Log Management Process",
		"Establish and maintain an audit log management process that defines logging requirements."),
	cis("8.2", "Audit Log Management", 1, "Collect Audit Logs",
		"Collect audit logs from enterprise assets."),
	// Control 9
	cis("9.1", "Email and Web Browser Protections", 1, "Ensure Use of Only Fully Supported Browsers and Email Clients",
		"Ensure only fully supported browsers and email clients are allowed to execute."),
	// Control 10
	cis("10.1", "Malware Defenses", 1, "Deploy and Maintain Anti-Malware Software",
		"Deploy and maintain anti-malware software on all enterprise assets."),
	cis("10.2", "Malware Defenses", 1, "Configure Automatic Anti-Malware Signature Updates",
		"Configure automatic updates for anti-malware signature files."),
	cis("10.7", "Malware Defenses", 2, "Use Behavior-Based Anti-Malware Software",
		"Use behavior-based anti-malware software."),
	// Control 11
	cis("11.1", "Data Recovery", 1, "Establish and Maintain a Data Recovery Process",
		"Establish and maintain a data recovery process including scope of recovery activities."),
	cis("11.2", "Data Recovery", 1, "Perform Automated Backups",
		"Perform automated backups of in-scope enterprise assets."),
	cis("11.4", "Data Recovery", 1, "Establish and Maintain an Isolated Instance of Recovery Data",
		"Establish and maintain an isolated instance of recovery data using offline or cloud storage."),
	// Control 12
	cis("12.1", "Network Infrastructure Management", 1, "Ensure Network Infrastructure is Up-to-Date",
		"Ensure network infrastructure is kept up-to-date."),
	// Control 13
	cis("13.1", "Network Monitoring and Defense", 2, "Centralize Security Event Alerting",
		"Centralize security event alerting across enterprise assets."),
	// Control 14
	cis("14.1", "Security Awareness and Skills Training", 1, "Establish and Maintain a Security Awareness Program",
		"Establish and maintain a security awareness program."),
	cis("14.2", "Security Awareness and Skills Training", 1, "Train Workforce Members to Recognize Social Engineering Attacks",
		"Train workforce members to recognize social engineering attacks."),
	// Control 15
	cis("15.1", "Service Provider Management", 1, "Establish and Maintain an Inventory of Service Providers",
		"Establish and maintain an inventory of service providers."),
	// Control 16
	cis("16.1", "Application Software Security", 2, "Establish and Maintain a Secure Application Development Process",
		"Establish and maintain a secure application development process."),
	// Control 17
	cis("17.1", "Incident Response Management", 1, "Designate Personnel to Manage Incident Handling",
		"Designate one key person, and at least one backup, to manage incident handling."),
	cis("17.2", "Incident Response Management", 1, "Establish and Maintain Contact Information for Reporting Security Incidents",
		"Establish and maintain contact information for reporting security incidents."),
	cis("17.3", "Incident Response Management", 1, "Establish and Maintain an Enterprise Process for Reporting Incidents",
		"Establish and maintain an enterprise process for the workforce to report security incidents."),
	// Control 18
	cis("18.1", "Penetration Testing", 2, "Establish and Maintain a Penetration Testing Program",
		"Establish and maintain a penetration testing program appropriate to the size and complexity."),
}

func cis(id, group string, ig int, title, description string) model.ControlRecord {
	return model.ControlRecord{
		ID:                  id,
		Framework:           model.FrameworkCIS,
		Title:               title,
		Description:         description,
		Domain:              group,
		StandardCode:        "CIS v8",
		StandardRequirement: fmt.Sprintf("IG%d", ig),
		Status:              model.StatusEnabled,
	}
}
