package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMappingTypeOrdering(t *testing.T) {
	if !(MappingFull > MappingPartial && MappingPartial > MappingRelated && MappingRelated > MappingNone) {
		t.Fatal("mapping types must be ordered Full > Partial > Related > None")
	}
}

func TestMappingTypeString(t *testing.T) {
	tests := []struct {
		mt       MappingType
		expected string
	}{
		{MappingNone, "None"},
		{MappingRelated, "Related"},
		{MappingPartial, "Partial"},
		{MappingFull, "Full"},
		{MappingType(99), ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.mt.String(); got != tt.expected {
				t.Errorf("MappingType.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCorrelationJSONUsesNames(t *testing.T) {
	c := Correlation{
		MasterID:        "ML-001",
		TargetFramework: FrameworkNIST,
		TargetID:        "AC-2",
		MappingType:     MappingRelated,
		Confidence:      50,
		Gaps:            []string{"domain matched by keyword only"},
		Rule:            RuleDomainKeyword,
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"mapping_type":"Related"`) {
		t.Errorf("Marshal() = %s, want mapping_type by name", data)
	}

	var back Correlation
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.MappingType != MappingRelated {
		t.Errorf("MappingType = %v, want Related", back.MappingType)
	}
}

func TestCoveragePercent(t *testing.T) {
	tests := []struct {
		name     string
		mapped   int
		total    int
		expected int
	}{
		{"half", 1, 2, 50},
		{"none", 0, 3, 0},
		{"all", 4, 4, 100},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"zero total", 0, 0, 0},
		{"negative total", 1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoveragePercent(tt.mapped, tt.total); got != tt.expected {
				t.Errorf("CoveragePercent(%d, %d) = %d, want %d", tt.mapped, tt.total, got, tt.expected)
			}
		})
	}
}

func TestParseFramework(t *testing.T) {
	tests := []struct {
		input   string
		want    Framework
		wantErr bool
	}{
		{"nist", FrameworkNIST, false},
		{"NIST 800-53", FrameworkNIST, false},
		{"  pci-dss ", FrameworkPCI, false},
		{"Master List", FrameworkMasterList, false},
		{"tripwire", FrameworkTripwireCore, false},
		{"iso27001", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFramework(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFramework(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFramework(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortFrameworksCanonical(t *testing.T) {
	fws := []Framework{"ISO 27001", FrameworkSOX, FrameworkNIST, FrameworkTripwireCore, "FedRAMP"}
	SortFrameworks(fws)

	want := []Framework{FrameworkTripwireCore, FrameworkNIST, FrameworkSOX, "FedRAMP", "ISO 27001"}
	for i := range want {
		if fws[i] != want[i] {
			t.Fatalf("SortFrameworks() = %v, want %v", fws, want)
		}
	}
}

func TestFrameworkSlugRoundTrip(t *testing.T) {
	for _, fw := range append([]Framework{FrameworkMasterList}, CanonicalFrameworks...) {
		got, ok := FrameworkFromSlug(fw.Slug())
		if !ok || got != fw {
			t.Errorf("FrameworkFromSlug(%q) = %q, %v; want %q", fw.Slug(), got, ok, fw)
		}
	}
}

func TestStandardRef(t *testing.T) {
	tests := []struct {
		code, req, want string
	}{
		{"CIP-007-6", "R5.7", "CIP-007-6 R5.7"},
		{"CIP-007-6", "", "CIP-007-6"},
		{"", "R5.7", ""},
	}
	for _, tt := range tests {
		r := ControlRecord{StandardCode: tt.code, StandardRequirement: tt.req}
		if got := r.StandardRef(); got != tt.want {
			t.Errorf("StandardRef(%q, %q) = %q, want %q", tt.code, tt.req, got, tt.want)
		}
	}
}

func TestCloneDoesNotShareCrossReferences(t *testing.T) {
	orig := ControlRecord{ID: "ML-001", CrossReferenceIDs: []string{"TW-1"}}
	clone := orig.Clone()
	clone.CrossReferenceIDs[0] = "changed"

	if orig.CrossReferenceIDs[0] != "TW-1" {
		t.Error("Clone() shares CrossReferenceIDs with the original")
	}
}

func TestMasterItem(t *testing.T) {
	item := MasterItem{
		ControlRecord: ControlRecord{
			ID:                  "ML-001",
			Title:               "AD account review",
			Domain:              "Access - AD",
			StandardCode:        "CIP-007-6",
			StandardRequirement: "R5.7",
			Frequency:           FrequencyQuarterly,
		},
		Class: ClassFullyMapped,
		Best:  &Correlation{TargetFramework: FrameworkTripwireCore, TargetID: "TW-AD-01", Confidence: 95},
	}

	if got := item.Title(); got != "AD account review" {
		t.Errorf("Title() = %q", got)
	}
	desc := item.Description()
	for _, substr := range []string{"Access - AD", "CIP-007-6 R5.7", "Quarterly", "Tripwire Core TW-AD-01 (95%)"} {
		if !strings.Contains(desc, substr) {
			t.Errorf("Description() = %q, want to contain %q", desc, substr)
		}
	}
	filter := item.FilterValue()
	for _, substr := range []string{"ML-001", "Access - AD", "Fully Mapped"} {
		if !strings.Contains(filter, substr) {
			t.Errorf("FilterValue() = %q, want to contain %q", filter, substr)
		}
	}
}

func TestMasterItemTitleFallsBackToDomain(t *testing.T) {
	item := MasterItem{ControlRecord: ControlRecord{ID: "ML-9", Domain: "Logging - SIEM"}}
	if got := item.Title(); got != "Logging - SIEM" {
		t.Errorf("Title() = %q, want domain fallback", got)
	}
}
