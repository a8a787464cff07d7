package llm

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// NewVertexModel uses the Vertex AI backend. Credentials come from
// Application Default Credentials (gcloud auth application-default login).
func NewVertexModel(ctx context.Context, cfg Config) (model.LLM, error) {
	return newGenaiModel(ctx, cfg.modelName(), &genai.ClientConfig{
		Project:  cfg.VertexProject,
		Location: cfg.VertexLocation,
		Backend:  genai.BackendVertexAI,
	})
}
