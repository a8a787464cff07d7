package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/ollama/ollama/api"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

var errStopped = errors.New("iteration stopped")

// OllamaModel adapts a local Ollama server to the ADK model.LLM interface
type OllamaModel struct {
	client *api.Client
	name   string
}

func NewOllamaModel(_ context.Context, cfg Config) (model.LLM, error) {
	u, err := url.Parse(cfg.OllamaURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid OLLAMA_URL %q", cfg.OllamaURL)
	}
	return &OllamaModel{
		client: api.NewClient(u, http.DefaultClient),
		name:   cfg.modelName(),
	}, nil
}

func (m *OllamaModel) Name() string {
	return m.name
}

func (m *OllamaModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		chatReq := &api.ChatRequest{
			Model:    m.name,
			Messages: toOllamaMessages(req.Contents),
			Stream:   &stream,
		}
		if len(req.Tools) > 0 {
			chatReq.Tools = toOllamaTools(req.Tools)
		}

		if !stream {
			var last api.ChatResponse
			if err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
				last = resp
				return nil
			}); err != nil {
				yield(nil, fmt.Errorf("ollama chat: %w", err))
				return
			}
			resp := fromOllamaMessage(last.Message)
			resp.TurnComplete = true
			yield(resp, nil)
			return
		}

		err := m.client.Chat(ctx, chatReq, func(chunk api.ChatResponse) error {
			if chunk.Message.Content == "" && len(chunk.Message.ToolCalls) == 0 {
				return nil
			}
			resp := fromOllamaMessage(chunk.Message)
			resp.Partial = !chunk.Done && len(chunk.Message.ToolCalls) == 0
			resp.TurnComplete = chunk.Done
			if !yield(resp, nil) {
				return errStopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(nil, fmt.Errorf("ollama chat: %w", err))
		}
	}
}

func ollamaRole(role string) string {
	if role == "model" {
		return "assistant"
	}
	return role
}

func toOllamaMessages(contents []*genai.Content) []api.Message {
	messages := make([]api.Message, 0, len(contents))
	for _, c := range contents {
		if c == nil {
			continue
		}
		var text strings.Builder
		var calls []api.ToolCall
		for _, part := range c.Parts {
			switch {
			case part.FunctionResponse != nil:
				// tool results travel as their own message
				body, _ := json.Marshal(part.FunctionResponse.Response)
				messages = append(messages, api.Message{Role: "tool", Content: string(body)})
			case part.FunctionCall != nil:
				args := api.NewToolCallFunctionArguments()
				for k, v := range part.FunctionCall.Args {
					args.Set(k, v)
				}
				calls = append(calls, api.ToolCall{Function: api.ToolCallFunction{
					Name:      part.FunctionCall.Name,
					Arguments: args,
				}})
			default:
				text.WriteString(part.Text)
			}
		}
		if text.Len() == 0 && len(calls) == 0 {
			continue
		}
		messages = append(messages, api.Message{
			Role:      ollamaRole(c.Role),
			Content:   text.String(),
			ToolCalls: calls,
		})
	}
	return messages
}

// declarer is what ADK function tools put in LLMRequest.Tools
type declarer interface {
	Declaration() *genai.FunctionDeclaration
}

func toOllamaTools(tools map[string]any) []api.Tool {
	out := make([]api.Tool, 0, len(tools))
	for name, t := range tools {
		var desc string
		var params map[string]any
		switch t := t.(type) {
		case declarer:
			decl := t.Declaration()
			if decl == nil {
				continue
			}
			desc = decl.Description
			params = schemaMap(decl.ParametersJsonSchema)
		case map[string]any:
			desc, _ = t["description"].(string)
			params, _ = t["parameters"].(map[string]any)
		default:
			continue
		}
		required, _ := params["required"].([]any)
		fn := api.ToolFunction{
			Name:        name,
			Description: desc,
			Parameters: api.ToolFunctionParameters{
				Type:       "object",
				Properties: toOllamaProperties(params),
			},
		}
		for _, r := range required {
			if s, ok := r.(string); ok {
				fn.Parameters.Required = append(fn.Parameters.Required, s)
			}
		}
		out = append(out, api.Tool{Type: "function", Function: fn})
	}
	slices.SortFunc(out, func(a, b api.Tool) int { return strings.Compare(a.Function.Name, b.Function.Name) })
	return out
}

// schemaMap flattens a JSON schema value into generic maps
func schemaMap(schema any) map[string]any {
	if schema == nil {
		return nil
	}
	if m, ok := schema.(map[string]any); ok {
		return m
	}
	body, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}
	return m
}

func toOllamaProperties(params map[string]any) *api.ToolPropertiesMap {
	out := api.NewToolPropertiesMap()
	props, _ := params["properties"].(map[string]any)
	for name, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p := api.ToolProperty{Type: api.PropertyType{"string"}}
		if t, ok := prop["type"].(string); ok {
			p.Type = api.PropertyType{t}
		}
		p.Description, _ = prop["description"].(string)
		out.Set(name, p)
	}
	return out
}

// fromOllamaMessage turns an assistant message into an ADK response.
// Tool calls take precedence over text.
func fromOllamaMessage(msg api.Message) *model.LLMResponse {
	var parts []*genai.Part
	for _, tc := range msg.ToolCalls {
		args := tc.Function.Arguments.ToMap()
		if args == nil {
			args = map[string]any{}
		}
		parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
			Name: tc.Function.Name,
			Args: args,
		}})
	}
	if len(parts) == 0 {
		parts = []*genai.Part{genai.NewPartFromText(msg.Content)}
	}
	return &model.LLMResponse{
		Content: &genai.Content{Role: "model", Parts: parts},
	}
}
