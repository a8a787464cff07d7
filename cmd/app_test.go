package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethanolivertroy/crosswalk/internal/chat"
	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/llm"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/tui"
)

type fakeAsker struct{}

func (fakeAsker) Chat(context.Context, string) (string, error) { return "ok", nil }
func (fakeAsker) ClearSession()                                 {}

var ollamaConfig = llm.Config{Provider: llm.ProviderOllama, Model: "llama3.2", OllamaURL: "http://localhost:11434"}

func appResult() grc.Result {
	return grc.NewEngine(nil).Run(grc.Snapshot{
		Master: []model.ControlRecord{
			{ID: "ML-001", Title: "AD account review", Domain: "Access - AD", CrossReferenceIDs: []string{"AC-2"}},
		},
		Candidates: map[model.Framework][]model.ControlRecord{
			model.FrameworkNIST: {{ID: "AC-2", Title: "Account Management", Domain: "Access Control"}},
		},
	})
}

func testApp(t *testing.T, cfg llm.Config, factory agentFactory) AppModel {
	t.Helper()
	load := func() (grc.Result, error) { return appResult(), nil }
	return newAppModel(load, t.TempDir(), cfg, factory)
}

func update(t *testing.T, app AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := app.Update(msg)
	out, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

// collectMsgs runs cmd and any batched commands it expands to
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func selected(id string) model.MasterSelectedMsg {
	return model.MasterSelectedMsg{Item: &model.MasterItem{
		ControlRecord: model.ControlRecord{ID: id, Title: "Selected", Domain: "Access - AD"},
		Class:         model.ClassGap,
	}}
}

func currentID(t *testing.T, app AppModel) string {
	t.Helper()
	c, ok := app.assistant.(chat.Model)
	if !ok {
		t.Fatalf("assistant is %T, want chat.Model", app.assistant)
	}
	if c.Current() == nil {
		return ""
	}
	return c.Current().ID
}

func TestMasterSelectedMsgRoutedToAssistant(t *testing.T) {
	app := testApp(t, ollamaConfig, nil)
	app.assistant = chat.NewModel(context.Background(), fakeAsker{})

	app, _ = update(t, app, selected("ML-042"))
	if got := currentID(t, app); got != "ML-042" {
		t.Errorf("assistant context = %q, want ML-042", got)
	}

	app, _ = update(t, app, model.MasterSelectedMsg{})
	if got := currentID(t, app); got != "" {
		t.Errorf("context not cleared, got %q", got)
	}
}

func TestMasterSelectedMsgWithoutAssistant(t *testing.T) {
	app := testApp(t, ollamaConfig, nil)

	app, cmd := update(t, app, selected("ML-007"))
	if cmd != nil {
		t.Error("expected no command without an assistant")
	}
	if app.pendingItem == nil || app.pendingItem.ID != "ML-007" {
		t.Errorf("pendingItem = %+v", app.pendingItem)
	}
}

func TestContextPreservedAcrossAgentInit(t *testing.T) {
	app := testApp(t, ollamaConfig, nil)

	app, _ = update(t, app, selected("ML-PRESERVED"))
	app, _ = update(t, app, agentInitMsg{asker: fakeAsker{}, ctx: context.Background()})

	if got := currentID(t, app); got != "ML-PRESERVED" {
		t.Errorf("assistant context = %q, want ML-PRESERVED", got)
	}
}

func TestResultLoadedStartsAssistant(t *testing.T) {
	var built []grc.Result
	factory := func(_ context.Context, r grc.Result) (chat.Asker, error) {
		built = append(built, r)
		return fakeAsker{}, nil
	}
	app := testApp(t, ollamaConfig, factory)

	app, cmd := update(t, app, tui.ResultLoadedMsg{Result: appResult()})

	var init *agentInitMsg
	for _, msg := range collectMsgs(cmd) {
		if m, ok := msg.(agentInitMsg); ok {
			init = &m
		}
	}
	if init == nil {
		t.Fatal("no agentInitMsg after result loaded")
	}
	if len(built) != 1 || len(built[0].Masters) != 1 {
		t.Fatalf("factory called with %d results", len(built))
	}

	app, _ = update(t, app, *init)
	if app.assistant == nil {
		t.Fatal("assistant not created")
	}
	if !strings.Contains(app.View(), "Crosswalk Assistant") {
		t.Error("sidebar does not show the assistant")
	}
}

func TestResultLoadedWithoutProvider(t *testing.T) {
	called := false
	factory := func(context.Context, grc.Result) (chat.Asker, error) {
		called = true
		return fakeAsker{}, nil
	}
	app := testApp(t, llm.Config{Provider: llm.ProviderGemini}, factory)

	app, cmd := update(t, app, tui.ResultLoadedMsg{Result: appResult()})
	collectMsgs(cmd)
	if called {
		t.Error("assistant built without a usable provider")
	}
	if !strings.Contains(app.View(), "GEMINI_API_KEY") {
		t.Error("sidebar should show setup help")
	}
}

func TestAgentInitError(t *testing.T) {
	factory := func(context.Context, grc.Result) (chat.Asker, error) {
		return nil, errors.New("ollama unreachable")
	}
	app := testApp(t, ollamaConfig, factory)

	msgs := collectMsgs(app.initAgent(appResult()))
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	app, _ = update(t, app, msgs[0])
	if !strings.Contains(app.View(), "ollama unreachable") {
		t.Error("sidebar should show the init error")
	}
}

func TestPanelFocusKeys(t *testing.T) {
	app := testApp(t, ollamaConfig, nil)
	app, _ = update(t, app, tea.WindowSizeMsg{Width: 160, Height: 40})

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.focusedPanel != PanelAgent {
		t.Error("tab should focus the assistant")
	}
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.focusedPanel != PanelBrowser {
		t.Error("tab should return focus to the browser")
	}

	app.focusedPanel = PanelAgent
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'\\'}})
	if app.agentVisible || app.focusedPanel != PanelBrowser {
		t.Error("backslash should hide the panel and focus the browser")
	}

	app, _ = update(t, app, tui.OpenAgentMsg{})
	if !app.agentVisible || app.focusedPanel != PanelAgent {
		t.Error("OpenAgentMsg should show and focus the assistant")
	}
}

func TestCompactLayout(t *testing.T) {
	app := testApp(t, ollamaConfig, nil)
	app, _ = update(t, app, tea.WindowSizeMsg{Width: 80, Height: 30})
	if !app.compact {
		t.Fatal("expected compact mode below the breakpoint")
	}

	app, _ = update(t, app, tui.OpenAgentMsg{})
	if app.focusedPanel != PanelBrowser {
		t.Error("compact mode should keep focus on the browser")
	}
	if strings.Contains(app.View(), "Assistant") {
		t.Error("compact mode should not render the sidebar")
	}
}

func TestAgentResponseRoutedRegardlessOfFocus(t *testing.T) {
	app := testApp(t, ollamaConfig, nil)
	app.assistant = chat.NewModel(context.Background(), fakeAsker{})
	app.focusedPanel = PanelBrowser

	app, _ = update(t, app, chat.AgentResponseMsg{Content: "ML-001 maps to AC-2"})
	msgs := app.assistant.(chat.Model).Messages()
	if len(msgs) == 0 || !strings.Contains(msgs[len(msgs)-1].Content, "AC-2") {
		t.Errorf("response not delivered to the assistant: %+v", msgs)
	}
}

func TestProviderSetupHelp(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"", "GEMINI_API_KEY"},
		{"gemini", "GEMINI_API_KEY"},
		{"vertex", "VERTEX_PROJECT"},
		{"ollama", "ollama serve"},
		{"bedrock", "llm.provider"},
	}
	for _, tt := range tests {
		if got := providerSetupHelp(tt.provider); !strings.Contains(got, tt.want) {
			t.Errorf("providerSetupHelp(%q) = %q, want it to mention %q", tt.provider, got, tt.want)
		}
	}
}
