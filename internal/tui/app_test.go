package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/palette"
)

func testResult() grc.Result {
	snap := grc.Snapshot{
		Master: []model.ControlRecord{
			{ID: "ML-003", Title: "Tape rotation", Domain: "Backup - Recovery", Frequency: model.FrequencyDaily},
			{ID: "ML-001", Title: "AD account review", Domain: "Access - AD", StandardCode: "CIP-007-6", StandardRequirement: "R5.7", CrossReferenceIDs: []string{"AC-2"}},
			{ID: "ML-002", Title: "Firewall changes", Description: "Review approved rule changes", Domain: "Change - Config", StandardCode: "CIP-010-4", StandardRequirement: "R1.1", Frequency: model.FrequencyMonthly},
			{ID: "ML-BAD", Title: "No domain"},
		},
		Candidates: map[model.Framework][]model.ControlRecord{
			model.FrameworkNIST: {
				{ID: "AC-2", Title: "Account Management", Domain: "Access Control"},
			},
			model.FrameworkTripwireCore: {
				{ID: "TW-CH-01", Domain: "Change - Config", StandardCode: "CIP-010-4", StandardRequirement: "R1.2", Frequency: model.FrequencyMonthly},
			},
		},
	}
	return grc.NewEngine(nil).Run(snap)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(func() (grc.Result, error) { return testResult(), nil }, t.TempDir())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = send(t, m, ResultLoadedMsg{Result: testResult()})
	return m
}

func visibleIDs(m Model) []string {
	var ids []string
	for _, it := range m.list.Items() {
		ids = append(ids, it.(model.MasterItem).ID)
	}
	return ids
}

func TestLoadingView(t *testing.T) {
	m := NewModel(nil, "")
	if !strings.Contains(m.View(), "Correlating") {
		t.Error("loading view missing spinner text")
	}
	if m.exportDir != "." {
		t.Errorf("exportDir = %q, want .", m.exportDir)
	}
}

func TestLoaderCommand(t *testing.T) {
	ok := NewModel(func() (grc.Result, error) { return testResult(), nil }, "")
	if msg, isLoaded := ok.loadResult()().(ResultLoadedMsg); !isLoaded || len(msg.Result.Masters) != 3 {
		t.Errorf("loadResult() = %#v", msg)
	}

	failing := NewModel(func() (grc.Result, error) { return grc.Result{}, errors.New("boom") }, "")
	msg := failing.loadResult()()
	errMsg, isErr := msg.(ErrorMsg)
	if !isErr || errMsg.Err.Error() != "boom" {
		t.Fatalf("loadResult() = %#v, want ErrorMsg", msg)
	}

	m, _ := send(t, failing, errMsg)
	if !strings.Contains(m.View(), "Error: boom") {
		t.Error("error view missing message")
	}

	if _, isErr := NewModel(nil, "").loadResult()().(ErrorMsg); !isErr {
		t.Error("nil loader should produce an ErrorMsg")
	}
}

func TestResultLoaded(t *testing.T) {
	m := loadedModel(t)

	if m.loading || !m.listReady {
		t.Fatal("model should be ready after ResultLoadedMsg")
	}
	if got := strings.Join(visibleIDs(m), ","); got != "ML-001,ML-002,ML-003" {
		t.Errorf("items = %s, want sorted by id", got)
	}
	if !strings.Contains(m.statusMsg, "Skipped 1") {
		t.Errorf("statusMsg = %q, want skipped count", m.statusMsg)
	}
	view := m.View()
	if !strings.Contains(view, "3 masters") || !strings.Contains(view, "1 skipped") {
		t.Error("list header missing counts")
	}
}

func TestClassFilterCycle(t *testing.T) {
	m := loadedModel(t)

	tests := []struct {
		filter ClassFilter
		ids    string
	}{
		{FilterFullyMapped, "ML-001"},
		{FilterPartiallyMapped, "ML-002"},
		{FilterGaps, "ML-003"},
		{FilterAll, "ML-001,ML-002,ML-003"},
	}
	for _, tt := range tests {
		m, _ = send(t, m, keyPress("f"))
		if m.classFilter != tt.filter {
			t.Fatalf("classFilter = %v, want %v", m.classFilter, tt.filter)
		}
		if got := strings.Join(visibleIDs(m), ","); got != tt.ids {
			t.Errorf("%s: items = %s, want %s", tt.filter, got, tt.ids)
		}
	}
}

func TestSortCycle(t *testing.T) {
	m := loadedModel(t)

	m, _ = send(t, m, keyPress("s"))
	if m.sortMode != SortByDomain {
		t.Fatalf("sortMode = %v", m.sortMode)
	}
	if got := strings.Join(visibleIDs(m), ","); got != "ML-001,ML-003,ML-002" {
		t.Errorf("by domain = %s", got)
	}

	m, _ = send(t, m, keyPress("s"))
	if got := strings.Join(visibleIDs(m), ","); got != "ML-001,ML-002,ML-003" {
		t.Errorf("by confidence = %s", got)
	}
	if !strings.Contains(m.statusMsg, "Best Confidence") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestDetailView(t *testing.T) {
	m := loadedModel(t)
	m, _ = send(t, m, keyPress("s")) // by domain
	m, _ = send(t, m, keyPress("s")) // by confidence: ML-001 first
	m.list.Select(1)                 // ML-002

	m, cmd := send(t, m, keyPress("enter"))
	if m.view != ViewDetail || m.selected == nil || m.selected.ID != "ML-002" {
		t.Fatalf("expected detail view for ML-002, got view %v", m.view)
	}
	if msg, ok := cmd().(model.MasterSelectedMsg); !ok || msg.Item == nil || msg.Item.ID != "ML-002" {
		t.Errorf("enter should announce the selected record, got %#v", msg)
	}

	content := m.renderDetailContent()
	for _, want := range []string{"Firewall changes", "CIP-010-4 R1.1", "Correlations (1)", "Tripwire Core TW-CH-01", "70%", "standard requirement differs: R1.1 vs R1.2"} {
		if !strings.Contains(content, want) {
			t.Errorf("detail missing %q", want)
		}
	}
	if !strings.Contains(m.View(), "Review approved rule changes") {
		t.Error("detail view should show the record description")
	}

	m, cmd = send(t, m, keyPress("esc"))
	if m.view != ViewList || m.selected != nil {
		t.Error("esc should return to the list")
	}
	if msg, ok := cmd().(model.MasterSelectedMsg); !ok || msg.Item != nil {
		t.Errorf("esc should clear the selection, got %#v", msg)
	}
}

func TestOpenAgentKey(t *testing.T) {
	m := loadedModel(t)
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if cmd == nil {
		t.Fatal("ctrl+k should return a command")
	}
	if _, ok := cmd().(OpenAgentMsg); !ok {
		t.Error("ctrl+k should request the assistant panel")
	}
}

func TestDetailContentForGap(t *testing.T) {
	m := loadedModel(t)
	item := m.result.Items()[0] // ML-003
	m.selected = &item

	content := m.renderDetailContent()
	if !strings.Contains(content, "Correlations (0)") || !strings.Contains(content, "HIGH") {
		t.Errorf("gap detail missing severity: %s", content)
	}
}

func TestDetailContentNil(t *testing.T) {
	m := NewModel(nil, "")
	if got := m.renderDetailContent(); got != "No record selected" {
		t.Errorf("renderDetailContent() = %q", got)
	}
}

func TestChartsMenuNavigation(t *testing.T) {
	m := loadedModel(t)

	m, _ = send(t, m, keyPress("g"))
	if m.view != ViewChartsMenu {
		t.Fatalf("view = %v, want charts menu", m.view)
	}
	m, _ = send(t, m, keyPress("j"))
	m, _ = send(t, m, keyPress("j"))
	m, _ = send(t, m, keyPress("enter"))
	if m.view != ViewMatrix {
		t.Fatalf("view = %v, want matrix", m.view)
	}
	if !strings.Contains(m.View(), "Backup - Recovery") {
		t.Error("matrix view missing domain row")
	}

	m, _ = send(t, m, keyPress("esc"))
	if m.view != ViewChartsMenu {
		t.Errorf("esc from chart should return to menu, got %v", m.view)
	}
	m, _ = send(t, m, keyPress("esc"))
	if m.view != ViewList {
		t.Errorf("esc from menu should return to list, got %v", m.view)
	}
}

func TestExportMenu(t *testing.T) {
	m := loadedModel(t)

	m, _ = send(t, m, keyPress("x"))
	if m.view != ViewExportMenu {
		t.Fatalf("view = %v, want export menu", m.view)
	}
	if len(m.exportOptions) != 6 {
		t.Fatalf("got %d export options, want 6", len(m.exportOptions))
	}
	m, _ = send(t, m, keyPress("j")) // Correlations (CSV)
	m, _ = send(t, m, keyPress("enter"))

	if m.view != ViewList {
		t.Errorf("view = %v, want list after export", m.view)
	}
	if !strings.HasPrefix(m.statusMsg, "Exported Correlations (2 rows)") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	files, _ := filepath.Glob(filepath.Join(m.exportDir, "crosswalk_correlations_*.csv"))
	if len(files) != 1 {
		t.Fatalf("found %d export files", len(files))
	}
	if _, err := os.Stat(files[0]); err != nil {
		t.Error(err)
	}
}

func TestPaletteActions(t *testing.T) {
	defer SetTheme(ThemeDefault)
	m := loadedModel(t)

	m, _ = send(t, m, keyPress("ctrl+p"))
	if !m.palette.Active {
		t.Fatal("ctrl+p should open the palette")
	}
	if !strings.Contains(m.View(), "Commands") {
		t.Error("palette not drawn over the view")
	}

	// keys go to the palette while it is open
	m, _ = send(t, m, keyPress("f"))
	if m.classFilter != FilterAll {
		t.Error("key leaked to the list while the palette was open")
	}
	m, _ = send(t, m, keyPress("esc"))
	if m.palette.Active {
		t.Fatal("esc should close the palette")
	}

	m, _ = send(t, m, palette.SelectedAction("theme"))
	if CurrentTheme.Name != ThemeDracula {
		t.Errorf("theme = %v, want dracula", CurrentTheme.Name)
	}
	m, _ = send(t, m, palette.SelectedAction("chart:findings"))
	if m.view != ViewFindings {
		t.Errorf("view = %v, want findings", m.view)
	}
	_, cmd := send(t, m, palette.SelectedAction("reload"))
	if cmd == nil {
		t.Error("reload should return a load command")
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := send(t, m, keyPress("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestSubstringFilter(t *testing.T) {
	ranks := substringFilter("ad", []string{"ML-001 Access - AD", "ML-002 Change", "Bad Domain"})
	if len(ranks) != 2 || ranks[0].Index != 0 || ranks[1].Index != 2 {
		t.Errorf("ranks = %+v", ranks)
	}
}
