package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/ollama/ollama/api"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
	"google.golang.org/genai"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "gemini without API key",
			config:  Config{Provider: "gemini"},
			wantErr: true,
			errMsg:  "GEMINI_API_KEY",
		},
		{
			name:   "gemini with API key",
			config: Config{Provider: "gemini", APIKey: "test-key"},
		},
		{
			name:   "empty provider defaults to gemini",
			config: Config{APIKey: "test-key"},
		},
		{
			name:   "provider is case insensitive",
			config: Config{Provider: " Gemini ", APIKey: "test-key"},
		},
		{
			name:    "vertex without project",
			config:  Config{Provider: "vertex"},
			wantErr: true,
			errMsg:  "VERTEX_PROJECT",
		},
		{
			name:    "vertex without location",
			config:  Config{Provider: "vertex", VertexProject: "my-project"},
			wantErr: true,
			errMsg:  "VERTEX_LOCATION",
		},
		{
			name:   "vertex with all fields",
			config: Config{Provider: "vertex", VertexProject: "my-project", VertexLocation: "us-central1"},
		},
		{
			name:    "ollama without URL",
			config:  Config{Provider: "ollama"},
			wantErr: true,
			errMsg:  "OLLAMA_URL",
		},
		{
			name:   "ollama with URL",
			config: Config{Provider: "ollama", OllamaURL: "http://localhost:11434"},
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "openrouter"},
			wantErr: true,
			errMsg:  "unknown LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"", "gemini-2.0-flash"},
		{"gemini", "gemini-2.0-flash"},
		{"vertex", "gemini-2.0-flash"},
		{"ollama", "llama3.2"},
		{"OLLAMA", "llama3.2"},
	}
	for _, tt := range tests {
		if got := DefaultModel(tt.provider); got != tt.want {
			t.Errorf("DefaultModel(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	if _, err := NewModel(context.Background(), Config{Provider: "gemini"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewOllamaModel(t *testing.T) {
	m, err := NewOllamaModel(context.Background(), Config{Provider: "ollama", OllamaURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name() != "llama3.2" {
		t.Errorf("Name() = %q, want llama3.2", m.Name())
	}

	if _, err := NewOllamaModel(context.Background(), Config{OllamaURL: "not a url"}); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestToOllamaMessages(t *testing.T) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{genai.NewPartFromText("map ML-001")}},
		{Role: "model", Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{
			Name: "correlate_control",
			Args: map[string]any{"id": "ML-001"},
		}}}},
		{Role: "user", Parts: []*genai.Part{{FunctionResponse: &genai.FunctionResponse{
			Name:     "correlate_control",
			Response: map[string]any{"best": "AC-2"},
		}}}},
		{Role: "model", Parts: []*genai.Part{}},
	}

	msgs := toOllamaMessages(contents)
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "map ML-001" {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" || len(msgs[1].ToolCalls) != 1 {
		t.Fatalf("msgs[1] = %+v", msgs[1])
	}
	if msgs[1].ToolCalls[0].Function.Name != "correlate_control" {
		t.Errorf("tool call name = %q", msgs[1].ToolCalls[0].Function.Name)
	}
	if msgs[2].Role != "tool" || !strings.Contains(msgs[2].Content, "AC-2") {
		t.Errorf("msgs[2] = %+v", msgs[2])
	}
}

func TestToOllamaTools(t *testing.T) {
	tools := map[string]any{
		"get_record": map[string]any{
			"description": "look up a record",
			"parameters": map[string]any{
				"properties": map[string]any{
					"id":        map[string]any{"type": "string", "description": "record id"},
					"framework": map[string]any{"description": "framework name"},
				},
			},
		},
		"ignored": "not a declaration",
	}

	got := toOllamaTools(tools)
	if len(got) != 1 {
		t.Fatalf("got %d tools, want 1", len(got))
	}
	fn := got[0].Function
	if fn.Name != "get_record" || fn.Description != "look up a record" {
		t.Errorf("function = %+v", fn)
	}
	if n := fn.Parameters.Properties.Len(); n != 2 {
		t.Fatalf("got %d properties, want 2", n)
	}
	framework, ok := fn.Parameters.Properties.Get("framework")
	if !ok || framework.Description != "framework name" {
		t.Errorf("framework property = %+v", framework)
	}
}

type lookupArgs struct {
	ID string `json:"id" jsonschema:"record id"`
}

type lookupResult struct {
	Found bool `json:"found"`
}

func TestToOllamaToolsFromFunctionTool(t *testing.T) {
	lookup, err := functiontool.New(
		functiontool.Config{Name: "get_record", Description: "look up a record"},
		func(tool.Context, lookupArgs) (lookupResult, error) { return lookupResult{}, nil },
	)
	if err != nil {
		t.Fatalf("functiontool.New: %v", err)
	}

	got := toOllamaTools(map[string]any{"get_record": lookup})
	if len(got) != 1 {
		t.Fatalf("got %d tools, want 1", len(got))
	}
	fn := got[0].Function
	if fn.Name != "get_record" || fn.Description != "look up a record" {
		t.Errorf("function = %+v", fn)
	}
	id, ok := fn.Parameters.Properties.Get("id")
	if !ok || id.Description != "record id" || len(id.Type) != 1 || id.Type[0] != "string" {
		t.Errorf("id property = %+v", id)
	}
	if len(fn.Parameters.Required) != 1 || fn.Parameters.Required[0] != "id" {
		t.Errorf("required = %v", fn.Parameters.Required)
	}
}

func TestFromOllamaMessage(t *testing.T) {
	text := fromOllamaMessage(api.Message{Role: "assistant", Content: "ML-014 is a gap"})
	if text.Content.Parts[0].Text != "ML-014 is a gap" {
		t.Errorf("text part = %q", text.Content.Parts[0].Text)
	}

	args := api.NewToolCallFunctionArguments()
	args.Set("id", "ML-002")
	call := fromOllamaMessage(api.Message{ToolCalls: []api.ToolCall{{
		Function: api.ToolCallFunction{Name: "get_coverage", Arguments: args},
	}}})
	if len(call.Content.Parts) != 1 || call.Content.Parts[0].FunctionCall == nil {
		t.Fatalf("parts = %+v", call.Content.Parts)
	}
	if call.Content.Parts[0].FunctionCall.Args["id"] != "ML-002" {
		t.Errorf("args = %v", call.Content.Parts[0].FunctionCall.Args)
	}
}
