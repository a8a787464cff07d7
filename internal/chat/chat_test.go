package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

type fakeAsker struct {
	queries []string
	answer  string
	err     error
	cleared int
}

func (f *fakeAsker) Chat(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.answer, f.err
}

func (f *fakeAsker) ClearSession() {
	f.cleared++
}

func testItem() *model.MasterItem {
	return &model.MasterItem{
		ControlRecord: model.ControlRecord{
			ID:     "ML-002",
			Title:  "Firewall [changes]\nreview",
			Domain: "Change - Config",
		},
		Class: model.ClassPartiallyMapped,
		Best: &model.Correlation{
			MasterID:        "ML-002",
			TargetFramework: model.FrameworkTripwireCore,
			TargetID:        "TW-CH-01",
			MappingType:     model.MappingPartial,
			Confidence:      70,
		},
	}
}

func typeAndEnter(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestMasterSelectedMsgSetsAndClearsContext(t *testing.T) {
	m := NewModel(context.Background(), &fakeAsker{})
	if m.Current() != nil {
		t.Fatal("context should be empty initially")
	}

	next, _ := m.Update(model.MasterSelectedMsg{Item: testItem()})
	m = next.(Model)
	if m.Current() == nil || m.Current().ID != "ML-002" {
		t.Fatalf("Current() = %v, want ML-002", m.Current())
	}
	if !strings.Contains(m.View(), "ML-002") {
		t.Error("view should show the context badge")
	}

	next, _ = m.Update(model.MasterSelectedMsg{})
	m = next.(Model)
	if m.Current() != nil {
		t.Error("nil item should clear the context")
	}
	if !strings.Contains(m.View(), "Crosswalk Assistant") {
		t.Error("view should contain the title")
	}
}

func TestBuildEnrichedQuery(t *testing.T) {
	tests := []struct {
		name    string
		current *model.MasterItem
		want    []string
		exact   bool
	}{
		{"without context", nil, []string{"why?"}, true},
		{
			name:    "with context",
			current: testItem(),
			want: []string{
				"[Context: User is viewing Master record ML-002",
				"Firewall (changes) review",
				"Change - Config, Partially Mapped",
				"Best match: Tripwire Core TW-CH-01 Partial 70%",
				"\n\nwhy?",
			},
		},
		{
			name:    "no best match",
			current: &model.MasterItem{ControlRecord: model.ControlRecord{ID: "ML-003", Domain: "Backup - Recovery"}, Class: model.ClassGap},
			want:    []string{"Best match: none"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildEnrichedQuery(tt.current, "why?")
			if tt.exact && got != tt.want[0] {
				t.Fatalf("got %q, want %q", got, tt.want[0])
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("enriched query %q missing %q", got, w)
				}
			}
		})
	}
}

func TestSanitizeForPrompt(t *testing.T) {
	got := sanitizeForPrompt("  a\n[b]\r\n  c  ")
	if got != "a (b) c" {
		t.Errorf("sanitizeForPrompt() = %q", got)
	}
}

func TestAskRoundTrip(t *testing.T) {
	asker := &fakeAsker{answer: "ML-002 maps to **TW-CH-01**"}
	m := NewModel(context.Background(), asker)
	next, _ := m.Update(model.MasterSelectedMsg{Item: testItem()})
	m = next.(Model)

	m, cmd := typeAndEnter(t, m, "why partial?")
	if !m.thinking {
		t.Fatal("model should be thinking after a question")
	}
	if cmd == nil {
		t.Fatal("enter should return a command")
	}

	// while thinking further input is ignored
	if _, again := typeAndEnter(t, m, "another"); again != nil {
		t.Error("input should be ignored while thinking")
	}

	resp := m.ask("direct")()
	if _, ok := resp.(AgentResponseMsg); !ok {
		t.Fatalf("ask() = %T, want AgentResponseMsg", resp)
	}
	if len(asker.queries) != 1 || asker.queries[0] != "direct" {
		t.Errorf("queries = %v", asker.queries)
	}

	next, _ = m.Update(AgentResponseMsg{Content: asker.answer})
	m = next.(Model)
	if m.thinking {
		t.Error("response should end the thinking state")
	}
	msgs := m.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != RoleAgent || last.Content != asker.answer {
		t.Errorf("last message = %+v", last)
	}
	if msgs[len(msgs)-2].Role != RoleUser || msgs[len(msgs)-2].Content != "why partial?" {
		t.Errorf("user message = %+v", msgs[len(msgs)-2])
	}
}

func TestAgentError(t *testing.T) {
	m := NewModel(context.Background(), &fakeAsker{})
	next, _ := m.Update(AgentResponseMsg{Err: errors.New("quota exceeded")})
	m = next.(Model)

	last := m.Messages()[len(m.Messages())-1]
	if !last.IsError || !strings.Contains(last.Content, "quota exceeded") {
		t.Errorf("last message = %+v, want error", last)
	}
}

func TestAskWithoutAgent(t *testing.T) {
	m := NewModel(context.Background(), nil)
	resp, ok := m.ask("hi")().(AgentResponseMsg)
	if !ok || resp.Err == nil {
		t.Errorf("ask() without an assistant = %#v, want error", resp)
	}
}

func TestSlashCommands(t *testing.T) {
	asker := &fakeAsker{}
	m := NewModel(context.Background(), asker)

	m, _ = typeAndEnter(t, m, "/help")
	if last := m.Messages()[len(m.Messages())-1]; !strings.Contains(last.Content, "/clear") {
		t.Error("/help should list commands")
	}

	m, _ = typeAndEnter(t, m, "/bogus")
	if last := m.Messages()[len(m.Messages())-1]; !last.IsError {
		t.Error("unknown command should be an error")
	}

	m, _ = typeAndEnter(t, m, "/clear")
	if asker.cleared != 1 {
		t.Errorf("ClearSession called %d times", asker.cleared)
	}
	if len(m.Messages()) != 1 {
		t.Errorf("got %d messages after /clear, want 1", len(m.Messages()))
	}

	_, cmd := typeAndEnter(t, m, "/exit")
	if cmd == nil {
		t.Fatal("/exit should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("/exit should return tea.Quit")
	}
	if len(asker.queries) != 0 {
		t.Errorf("slash commands reached the assistant: %v", asker.queries)
	}
}

func TestWindowResize(t *testing.T) {
	m := NewModel(context.Background(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 55, Height: 30})
	m = next.(Model)
	if m.viewport.Width != 51 || m.viewport.Height != 30-headerHeight-footerHeight {
		t.Errorf("viewport = %dx%d", m.viewport.Width, m.viewport.Height)
	}
}

func press(t *testing.T, m Model, key tea.KeyType) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: key})
	return next.(Model)
}

func TestInputHistory(t *testing.T) {
	m := NewModel(context.Background(), &fakeAsker{})

	// nothing to recall yet
	m = press(t, m, tea.KeyUp)
	if m.textInput.Value() != "" {
		t.Fatalf("up with empty history set %q", m.textInput.Value())
	}

	for _, q := range []string{"first", "second", "second"} {
		m, _ = typeAndEnter(t, m, q)
		next, _ := m.Update(AgentResponseMsg{Content: "ok"})
		m = next.(Model)
	}
	if len(m.history) != 2 {
		t.Fatalf("history = %v, want repeats collapsed", m.history)
	}

	m.textInput.SetValue("draft")
	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "second"},
		{tea.KeyUp, "first"},
		{tea.KeyUp, "first"},
		{tea.KeyDown, "second"},
		{tea.KeyDown, "draft"},
		{tea.KeyDown, "draft"},
	}
	for i, s := range steps {
		m = press(t, m, s.key)
		if got := m.textInput.Value(); got != s.want {
			t.Errorf("step %d: input = %q, want %q", i, got, s.want)
		}
	}

	m = press(t, m, tea.KeyUp)
	m = press(t, m, tea.KeyEsc)
	if m.textInput.Value() != "" || m.recall != len(m.history) {
		t.Errorf("esc should reset input and recall, got %q at %d", m.textInput.Value(), m.recall)
	}
}

func TestHistoryLimit(t *testing.T) {
	m := NewModel(context.Background(), nil)
	for i := 0; i < historyLimit+5; i++ {
		m.remember(strings.Repeat("q", i+1))
	}
	if len(m.history) != historyLimit {
		t.Fatalf("history length = %d, want %d", len(m.history), historyLimit)
	}
	if m.history[0] != strings.Repeat("q", 6) {
		t.Errorf("oldest entry = %q", m.history[0])
	}
}

func TestContextCommand(t *testing.T) {
	asker := &fakeAsker{}
	m := NewModel(context.Background(), asker)
	last := func() ChatMessage { return m.Messages()[len(m.Messages())-1] }

	m, _ = typeAndEnter(t, m, "/context")
	if !strings.Contains(last().Content, "No record attached") {
		t.Errorf("empty context reply = %q", last().Content)
	}

	next, _ := m.Update(model.MasterSelectedMsg{Item: testItem()})
	m = next.(Model)
	m, _ = typeAndEnter(t, m, "/context")
	if !strings.Contains(last().Content, "ML-002") || !strings.Contains(last().Content, "Partially Mapped") {
		t.Errorf("context reply = %q", last().Content)
	}

	m, _ = typeAndEnter(t, m, "/context bogus")
	if !last().IsError {
		t.Error("bad /context argument should be an error")
	}
	if m.Current() == nil {
		t.Fatal("bad argument should keep the context")
	}

	m, _ = typeAndEnter(t, m, "/CONTEXT clear")
	if m.Current() != nil {
		t.Error("/context clear should drop the record")
	}
	if len(asker.queries) != 0 {
		t.Errorf("commands reached the assistant: %v", asker.queries)
	}
}

func TestContextBadgeColoredByClass(t *testing.T) {
	st := newStyles()
	item := testItem()
	got := st.contextBadge(item, 55)
	if !strings.Contains(got, "ML-002") {
		t.Errorf("badge %q missing the record ID", got)
	}

	item.Class = "Unknown"
	if !strings.Contains(st.contextBadge(item, 55), "ML-002") {
		t.Error("fallback badge should still show the ID")
	}
}
