// Package llm builds the ADK model behind the crosswalk assistant.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
)

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderOllama = "ollama"
)

// Config holds LLM configuration
type Config struct {
	Provider       string // gemini, vertex or ollama
	Model          string // empty means DefaultModel(Provider)
	APIKey         string // Gemini API key
	OllamaURL      string
	VertexProject  string
	VertexLocation string
}

// DefaultModel returns the model used when none is configured
func DefaultModel(provider string) string {
	switch normalizeProvider(provider) {
	case ProviderOllama:
		return "llama3.2"
	default:
		return "gemini-2.0-flash"
	}
}

func normalizeProvider(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return ProviderGemini
	}
	return p
}

func (c Config) modelName() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

// NewModel creates an ADK-compatible model based on the config
func NewModel(ctx context.Context, cfg Config) (model.LLM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch normalizeProvider(cfg.Provider) {
	case ProviderVertex:
		return NewVertexModel(ctx, cfg)
	case ProviderOllama:
		return NewOllamaModel(ctx, cfg)
	default:
		return NewGeminiModel(ctx, cfg)
	}
}

// Validate checks the fields the selected provider needs
func (c Config) Validate() error {
	switch normalizeProvider(c.Provider) {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderVertex:
		if c.VertexProject == "" {
			return fmt.Errorf("VERTEX_PROJECT is required for the vertex provider")
		}
		if c.VertexLocation == "" {
			return fmt.Errorf("VERTEX_LOCATION is required for the vertex provider")
		}
	case ProviderOllama:
		if c.OllamaURL == "" {
			return fmt.Errorf("OLLAMA_URL is required for the ollama provider")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %s (supported: gemini, vertex, ollama)", c.Provider)
	}
	return nil
}
