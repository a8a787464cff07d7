package llm

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// NewGeminiModel talks to the Gemini API with an API key
func NewGeminiModel(ctx context.Context, cfg Config) (model.LLM, error) {
	return newGenaiModel(ctx, cfg.modelName(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newGenaiModel(ctx context.Context, name string, cc *genai.ClientConfig) (model.LLM, error) {
	m, err := gemini.NewModel(ctx, name, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", name, err)
	}
	return m, nil
}
