// Package server serves the crosswalk assistant over A2A
package server

import (
	"context"
	"fmt"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/web"
	"google.golang.org/adk/cmd/launcher/web/a2a"
	"google.golang.org/adk/session"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/agent"
	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/llm"
)

// A2AConfig holds configuration for the A2A server
type A2AConfig struct {
	// Host is only used for the advertised URLs; the launcher binds Port
	Host      string
	Port      int
	LLMConfig llm.Config
	Result    grc.Result
	ExportDir string
	Logger    *zap.Logger
}

// launcherArgs builds the web launcher flags for cfg
func launcherArgs(cfg A2AConfig) []string {
	return []string{"--port", fmt.Sprintf("%d", cfg.Port)}
}

// baseURL is the advertised root of the server
func baseURL(cfg A2AConfig) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, cfg.Port)
}

// RunA2AServer serves an assistant bound to cfg.Result until ctx is done
func RunA2AServer(ctx context.Context, cfg A2AConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a, err := agent.New(ctx, cfg.LLMConfig, cfg.Result, cfg.ExportDir)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	webLauncher := web.NewLauncher(a2a.NewLauncher())
	if _, err := webLauncher.Parse(launcherArgs(cfg)); err != nil {
		return fmt.Errorf("failed to parse launcher args: %w", err)
	}

	base := baseURL(cfg)
	logger.Info("A2A server starting",
		zap.Int("port", cfg.Port),
		zap.String("agent_card", base+"/.well-known/agent-card.json"),
		zap.String("endpoint", base+"/a2a"),
		zap.String("provider", cfg.LLMConfig.Provider),
		zap.String("model", cfg.LLMConfig.Model),
		zap.Int("masters", len(cfg.Result.Masters)),
		zap.Int("correlations", len(cfg.Result.Correlations)),
	)

	return webLauncher.Run(ctx, &launcher.Config{
		AgentLoader:    adkagent.NewSingleLoader(a.ADK()),
		SessionService: session.InMemoryService(),
	})
}
