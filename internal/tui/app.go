// Package tui is the interactive browser for a correlation run: the Master
// records with their best matches, per-record correlation details, coverage
// charts and exports.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/palette"
	"github.com/ethanolivertroy/crosswalk/internal/report"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewChartsMenu
	ViewCoverageChart
	ViewClassChart
	ViewMatrix
	ViewFindings
	ViewExportMenu
)

// ChartOption represents a chart in the charts menu
type ChartOption struct {
	Name        string
	Description string
	View        ViewState
}

// ExportOption represents an export menu entry
type ExportOption struct {
	Name   string
	Format report.Format
	Kind   report.Kind
}

// SortMode represents the current sort order
type SortMode int

const (
	SortByID SortMode = iota
	SortByDomain
	SortByConfidence
)

func (s SortMode) String() string {
	switch s {
	case SortByID:
		return "ID"
	case SortByDomain:
		return "Domain"
	case SortByConfidence:
		return "Best Confidence"
	}
	return ""
}

// ClassFilter restricts the list to one classification
type ClassFilter int

const (
	FilterAll ClassFilter = iota
	FilterFullyMapped
	FilterPartiallyMapped
	FilterGaps
)

func (f ClassFilter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterFullyMapped:
		return string(model.ClassFullyMapped)
	case FilterPartiallyMapped:
		return string(model.ClassPartiallyMapped)
	case FilterGaps:
		return "Gaps"
	}
	return ""
}

func (f ClassFilter) matches(c model.Classification) bool {
	switch f {
	case FilterFullyMapped:
		return c == model.ClassFullyMapped
	case FilterPartiallyMapped:
		return c == model.ClassPartiallyMapped
	case FilterGaps:
		return c == model.ClassGap
	}
	return true
}

// Loader produces the correlation result the browser shows. It runs off
// the UI goroutine.
type Loader func() (grc.Result, error)

// Model is the main application model
type Model struct {
	load          Loader
	exportDir     string
	list          list.Model
	listReady     bool
	result        grc.Result
	items         []model.MasterItem
	visible       []list.Item
	spinner       spinner.Model
	loading       bool
	err           error
	width         int
	height        int
	view          ViewState
	selected      *model.MasterItem
	keys          KeyMap
	help          help.Model
	showHelp      bool
	viewport      viewport.Model
	viewportReady bool
	matrix        table.Model
	sortMode      SortMode
	classFilter   ClassFilter
	statusMsg     string
	palette       palette.Model
	// charts menu state
	chartOptions       []ChartOption
	selectedChartIndex int
	// export menu state
	exportOptions       []ExportOption
	selectedExportIndex int
}

// Messages
type ResultLoadedMsg struct {
	Result grc.Result
}

type ErrorMsg struct {
	Err error
}

// OpenAgentMsg asks the host to show and focus the assistant panel
type OpenAgentMsg struct{}

func selectedCmd(item *model.MasterItem) tea.Cmd {
	return func() tea.Msg {
		return model.MasterSelectedMsg{Item: item}
	}
}

// NewModel creates the browser. Exports are written to exportDir.
func NewModel(load Loader, exportDir string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	h := help.New()
	h.ShowAll = false

	if exportDir == "" {
		exportDir = "."
	}

	var exports []ExportOption
	for _, kind := range []report.Kind{report.KindCorrelations, report.KindCoverageMatrix} {
		for _, format := range []report.Format{report.FormatJSON, report.FormatCSV, report.FormatMarkdown} {
			exports = append(exports, ExportOption{
				Name:   fmt.Sprintf("%s (%s)", kind, format),
				Format: format,
				Kind:   kind,
			})
		}
	}

	return Model{
		load:      load,
		exportDir: exportDir,
		spinner:   s,
		loading:   true,
		keys:      DefaultKeyMap(),
		help:      h,
		width:     80,
		height:    24,
		palette:   palette.New(paletteCommands()),
		chartOptions: []ChartOption{
			{Name: "Framework Coverage", Description: "Share of master records each framework covers", View: ViewCoverageChart},
			{Name: "Classification", Description: "Fully mapped, partially mapped and gaps", View: ViewClassChart},
			{Name: "Coverage Matrix", Description: "Domain × framework coverage grid", View: ViewMatrix},
			{Name: "Gap Findings", Description: "Unmapped controls by severity", View: ViewFindings},
		},
		exportOptions: exports,
	}
}

func paletteCommands() []palette.Command {
	return []palette.Command{
		{Name: "Framework Coverage Chart", Key: "g", Action: "chart:coverage"},
		{Name: "Classification Chart", Key: "g", Action: "chart:class"},
		{Name: "Coverage Matrix", Key: "g", Action: "chart:matrix"},
		{Name: "Gap Findings", Key: "g", Action: "chart:findings"},
		{Name: "Export Menu", Key: "x", Action: "export"},
		{Name: "Cycle Classification Filter", Key: "f", Action: "filter"},
		{Name: "Cycle Sort", Key: "s", Action: "sort"},
		{Name: "Cycle Theme", Key: "t", Action: "theme"},
		{Name: "Reload Records", Key: "r", Action: "reload"},
		{Name: "Toggle Help", Key: "?", Action: "help"},
		{Name: "Quit", Key: "q", Action: "quit"},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadResult())
}

func (m Model) loadResult() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return ErrorMsg{Err: fmt.Errorf("no record loader configured")}
		}
		result, err := load()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ResultLoadedMsg{Result: result}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Active {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.statusMsg = ""

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+k":
			return m, func() tea.Msg { return OpenAgentMsg{} }
		case "ctrl+p":
			if !m.loading && m.err == nil {
				m.palette.SetColors(PaletteColors())
				m.palette.SetWidth(min(64, m.width-4))
				m.palette.Open()
			}
			return m, nil
		case "?":
			if !m.filtering() {
				m.showHelp = !m.showHelp
				return m, nil
			}
		}

		if m.err != nil || m.loading {
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.view {
		case ViewList:
			if !m.filtering() {
				if next, cmd, handled := m.updateList(msg); handled {
					return next, cmd
				}
			}
		case ViewDetail:
			return m.updateDetail(msg)
		case ViewChartsMenu:
			return m.updateChartsMenu(msg), nil
		case ViewExportMenu:
			return m.updateExportMenu(msg), nil
		case ViewMatrix:
			switch msg.String() {
			case "q", "esc", "g", "backspace":
				m.view = ViewChartsMenu
				return m, nil
			}
			var cmd tea.Cmd
			m.matrix, cmd = m.matrix.Update(msg)
			return m, cmd
		case ViewCoverageChart, ViewClassChart, ViewFindings:
			switch msg.String() {
			case "q", "esc", "g", "backspace":
				m.view = ViewChartsMenu
			}
			return m, nil
		}

	case palette.SelectedAction:
		return m.runAction(string(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.listReady {
			m.list.SetSize(msg.Width, m.listHeight())
		}
		if m.viewportReady {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - 6
			if m.selected != nil {
				m.viewport.SetContent(m.renderDetailContent())
			}
		}
		if m.view == ViewMatrix {
			m.matrix = NewMatrixTable(m.result.Summary, m.width, m.height)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case ResultLoadedMsg:
		m.loading = false
		m.err = nil
		m.setResult(msg.Result)
		if n := len(msg.Result.Skipped); n > 0 {
			m.statusMsg = fmt.Sprintf("Skipped %d malformed record(s)", n)
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	if m.view == ViewList && m.listReady {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) filtering() bool {
	return m.listReady && m.list.FilterState() == list.Filtering
}

func (m Model) listHeight() int {
	return max(5, m.height-6) // stats + indicators + footer
}

func (m *Model) setResult(r grc.Result) {
	m.result = r
	m.items = r.Items()
	m.applySortAndFilter()

	if !m.listReady {
		m.list = list.New(m.visible, NewMasterDelegate(), m.width, m.listHeight())
		m.list.Title = "Control Crosswalk"
		m.list.SetShowStatusBar(true)
		m.list.SetFilteringEnabled(true)
		m.list.SetShowHelp(false)
		m.list.Styles.Title = TitleStyle
		m.list.Filter = substringFilter
		m.listReady = true
		return
	}
	m.list.SetItems(m.visible)
}

// substringFilter keeps items containing the term, in list order
func substringFilter(term string, targets []string) []list.Rank {
	var ranks []list.Rank
	term = strings.ToLower(term)
	for i, target := range targets {
		if strings.Contains(strings.ToLower(target), term) {
			ranks = append(ranks, list.Rank{Index: i})
		}
	}
	return ranks
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "enter":
		if item, ok := m.list.SelectedItem().(model.MasterItem); ok {
			m.openDetail(item)
			return m, selectedCmd(m.selected), true
		}
	case "f":
		m.classFilter = (m.classFilter + 1) % 4
		m.refreshList()
		m.statusMsg = fmt.Sprintf("Showing: %s (%d)", m.classFilter, len(m.visible))
		return m, nil, true
	case "s":
		m.sortMode = (m.sortMode + 1) % 3
		m.refreshList()
		m.statusMsg = fmt.Sprintf("Sorted by: %s", m.sortMode)
		return m, nil, true
	case "c":
		if item, ok := m.list.SelectedItem().(model.MasterItem); ok {
			m.copyID(item.ID)
			return m, nil, true
		}
	case "g", "x", "t", "r":
		next, cmd := m.runAction(map[string]string{"g": "charts", "x": "export", "t": "theme", "r": "reload"}[msg.String()])
		return next, cmd, true
	case "G", "end":
		if n := len(m.list.Items()); n > 0 {
			m.list.Select(n - 1)
		}
		return m, nil, true
	case "home":
		m.list.Select(0)
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		m.view = ViewList
		m.selected = nil
		return m, selectedCmd(nil)
	case "c":
		if m.selected != nil {
			m.copyID(m.selected.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateChartsMenu(msg tea.KeyMsg) Model {
	n := len(m.chartOptions)
	switch msg.String() {
	case "q", "esc", "g", "backspace":
		m.view = ViewList
	case "j", "down":
		m.selectedChartIndex = (m.selectedChartIndex + 1) % n
	case "k", "up":
		m.selectedChartIndex = (m.selectedChartIndex - 1 + n) % n
	case "enter":
		m.showChart(m.chartOptions[m.selectedChartIndex].View)
	}
	return m
}

func (m Model) updateExportMenu(msg tea.KeyMsg) Model {
	n := len(m.exportOptions)
	switch msg.String() {
	case "q", "esc", "x", "backspace":
		m.view = ViewList
	case "j", "down":
		m.selectedExportIndex = (m.selectedExportIndex + 1) % n
	case "k", "up":
		m.selectedExportIndex = (m.selectedExportIndex - 1 + n) % n
	case "enter":
		opt := m.exportOptions[m.selectedExportIndex]
		res := report.Export(m.result, opt.Format, opt.Kind, m.exportDir)
		if res.Err != nil {
			m.statusMsg = fmt.Sprintf("Export failed: %v", res.Err)
		} else {
			m.statusMsg = fmt.Sprintf("Exported %s (%d rows) to %s", opt.Kind, res.Count, res.FilePath)
		}
		m.view = ViewList
	}
	return m
}

// runAction handles palette selections and their list-view shortcuts
func (m Model) runAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "charts":
		m.selectedChartIndex = 0
		m.view = ViewChartsMenu
	case "chart:coverage":
		m.showChart(ViewCoverageChart)
	case "chart:class":
		m.showChart(ViewClassChart)
	case "chart:matrix":
		m.showChart(ViewMatrix)
	case "chart:findings":
		m.showChart(ViewFindings)
	case "export":
		m.selectedExportIndex = 0
		m.view = ViewExportMenu
	case "filter":
		m.view = ViewList
		m.classFilter = (m.classFilter + 1) % 4
		m.refreshList()
		m.statusMsg = fmt.Sprintf("Showing: %s (%d)", m.classFilter, len(m.visible))
	case "sort":
		m.view = ViewList
		m.sortMode = (m.sortMode + 1) % 3
		m.refreshList()
		m.statusMsg = fmt.Sprintf("Sorted by: %s", m.sortMode)
	case "theme":
		name := CycleTheme()
		if m.listReady {
			m.list.SetDelegate(NewMasterDelegate())
			m.list.Styles.Title = TitleStyle
		}
		m.spinner.Style = lipgloss.NewStyle().Foreground(PrimaryColor)
		m.statusMsg = fmt.Sprintf("Theme: %s", name)
	case "reload":
		m.loading = true
		m.view = ViewList
		m.selected = nil
		return m, tea.Batch(m.spinner.Tick, m.loadResult())
	case "help":
		m.showHelp = !m.showHelp
	case "quit":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) showChart(v ViewState) {
	if v == ViewMatrix {
		m.matrix = NewMatrixTable(m.result.Summary, m.width, m.height)
	}
	m.view = v
}

func (m *Model) openDetail(item model.MasterItem) {
	m.selected = &item
	m.view = ViewDetail
	m.viewport = viewport.New(m.width-4, m.height-6)
	m.viewport.SetContent(m.renderDetailContent())
	m.viewportReady = true
}

func (m *Model) copyID(id string) {
	if err := clipboard.WriteAll(id); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("Copied: %s", id)
}

func (m *Model) refreshList() {
	m.applySortAndFilter()
	if m.listReady {
		m.list.SetItems(m.visible)
	}
}

func (m *Model) applySortAndFilter() {
	items := make([]model.MasterItem, 0, len(m.items))
	for _, it := range m.items {
		if m.classFilter.matches(it.Class) {
			items = append(items, it)
		}
	}

	switch m.sortMode {
	case SortByID:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ID < items[j].ID
		})
	case SortByDomain:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Domain != items[j].Domain {
				return items[i].Domain < items[j].Domain
			}
			return items[i].ID < items[j].ID
		})
	case SortByConfidence:
		sort.SliceStable(items, func(i, j int) bool {
			return bestConfidence(items[i]) > bestConfidence(items[j])
		})
	}

	m.visible = make([]list.Item, len(items))
	for i, it := range items {
		m.visible[i] = it
	}
}

func bestConfidence(it model.MasterItem) int {
	if it.Best == nil {
		return -1
	}
	return it.Best.Confidence
}

// View renders the view
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Correlating control records...\n", m.spinner.View())
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.err)
	}

	var out string
	switch m.view {
	case ViewDetail:
		out = m.renderDetailView()
	case ViewChartsMenu:
		out = m.renderMenu("Charts", m.chartMenuLines(), "j/k navigate • enter select • g/esc back")
	case ViewExportMenu:
		out = m.renderMenu("Export Report", m.exportMenuLines(), "j/k navigate • enter export • x/esc back")
	case ViewCoverageChart:
		out = RenderCoverageChart(m.result.Summary, m.width, m.height)
	case ViewClassChart:
		out = RenderClassificationChart(m.result.Summary, m.width, m.height)
	case ViewMatrix:
		out = RenderMatrixView(m.matrix)
	case ViewFindings:
		out = RenderFindingsChart(m.result.Summary, m.width, m.height)
	default:
		out = m.renderListView()
	}
	return m.palette.Overlay(out, m.width, m.height)
}

func (m Model) chartMenuLines() []string {
	var lines []string
	for i, opt := range m.chartOptions {
		lines = append(lines, menuEntry(opt.Name, i == m.selectedChartIndex))
		lines = append(lines, SubtitleStyle.Render("    "+opt.Description), "")
	}
	return lines
}

func (m Model) exportMenuLines() []string {
	lines := []string{
		SubtitleStyle.Render(fmt.Sprintf("%d correlations | %d domains | writing to %s",
			len(m.result.Correlations), len(m.result.Summary.Domains()), m.exportDir)),
		"",
	}
	for i, opt := range m.exportOptions {
		lines = append(lines, menuEntry(opt.Name, i == m.selectedExportIndex))
	}
	return lines
}

func menuEntry(name string, selected bool) string {
	if selected {
		return TitleStyle.Render("> " + name)
	}
	return "  " + name
}

func (m Model) renderMenu(title string, lines []string, footer string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(footer))
	return b.String()
}

func (m Model) renderListView() string {
	var b strings.Builder

	stats := GetClassStats(m.result.Summary)
	header := fmt.Sprintf("%s %d masters | %s %d fully mapped | %s %d partial | %s %d gaps | %d correlations",
		StatHighlight.Render("■"), stats.Total,
		lipgloss.NewStyle().Foreground(FullColor).Render("■"), stats.Full,
		lipgloss.NewStyle().Foreground(PartialColor).Render("■"), stats.Partial,
		lipgloss.NewStyle().Foreground(GapColor).Render("■"), stats.Gap,
		len(m.result.Correlations),
	)
	b.WriteString(StatsStyle.Render(header))
	b.WriteString("\n")

	indicators := []string{fmt.Sprintf("Sort: %s", m.sortMode)}
	if m.classFilter != FilterAll {
		indicators = append(indicators, lipgloss.NewStyle().Foreground(PrimaryColor).Render("Filter: "+m.classFilter.String()))
	}
	if n := len(m.result.Skipped); n > 0 {
		indicators = append(indicators, lipgloss.NewStyle().Foreground(GapColor).Render(fmt.Sprintf("%d skipped", n)))
	}
	b.WriteString(SubtitleStyle.Render(strings.Join(indicators, " | ")))
	b.WriteString("\n")

	if m.listReady {
		b.WriteString(m.list.View())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(m.statusMsg))
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(SubtitleStyle.Render("/ search • f class • s sort • g charts • x export • t theme • ctrl+p commands • q quit"))
	}
	return b.String()
}

func (m Model) renderDetailView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(IDBadge.Render(m.selected.ID))
	b.WriteString("  ")
	b.WriteString(ClassBadge(m.selected.Class))
	b.WriteString("\n\n")

	if m.viewportReady {
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	footer := "↑/↓ scroll | c copy id | q/esc back"
	if m.statusMsg != "" {
		footer = m.statusMsg + " | " + footer
	}
	b.WriteString(SubtitleStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderDetailContent() string {
	if m.selected == nil {
		return "No record selected"
	}
	r := m.selected
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ForegroundColor).Render(r.Title()))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Domain", r.Domain},
		{"Standard", r.StandardRef()},
		{"Frequency", string(r.Frequency)},
		{"Status", string(r.Status)},
		{"Cross-references", strings.Join(r.CrossReferenceIDs, ", ")},
		{"Classification", string(r.Class)},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(LabelStyle.Render(f.label + ":"))
		b.WriteString(ValueStyle.Render(f.value))
		b.WriteString("\n")
	}

	if desc := r.ControlRecord.Description; desc != "" {
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Width(max(20, m.width-8)).Render(desc))
		b.WriteString("\n")
	}

	corrs := m.result.CorrelationsFor(r.ID)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Render(fmt.Sprintf("Correlations (%d)", len(corrs))))
	b.WriteString("\n")
	if len(corrs) == 0 {
		b.WriteString(SubtitleStyle.Render("No correlation in any framework. Gap severity: "))
		b.WriteString(SeverityBadge(grc.GapSeverity(r.ControlRecord)))
		b.WriteString("\n")
		return b.String()
	}

	for i, c := range corrs {
		b.WriteString("\n")
		marker := "  "
		if i == 0 {
			marker = lipgloss.NewStyle().Foreground(FullColor).Render("★ ")
		}
		mapping := lipgloss.NewStyle().Foreground(MappingColor(c.MappingType)).Bold(true).Render(fmt.Sprintf("%-8s", c.MappingType))
		fmt.Fprintf(&b, "%s%s %s  %s %s %s\n",
			marker, mapping,
			lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s %s", c.TargetFramework, c.TargetID)),
			ConfidenceBar(c.Confidence, 20), ConfidenceBadge(c.Confidence),
			SubtitleStyle.Render("via "+string(c.Rule)))
		if target, ok := m.result.Record(c.TargetFramework, c.TargetID); ok && target.Title != "" {
			b.WriteString("    ")
			b.WriteString(SubtitleStyle.Render(target.Title))
			b.WriteString("\n")
		}
		for _, gap := range c.Gaps {
			b.WriteString("    ")
			b.WriteString(GapNoteStyle.Render("• " + gap))
			b.WriteString("\n")
		}
	}
	return b.String()
}
