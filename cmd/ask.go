package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ethanolivertroy/crosswalk/internal/agent"
	"github.com/ethanolivertroy/crosswalk/internal/chat"
	"github.com/ethanolivertroy/crosswalk/internal/llm"
)

// llmConfigError adds setup hints to a provider validation error
func llmConfigError(cfg llm.Config, err error) error {
	if cfg.Provider == "" || cfg.Provider == llm.ProviderGemini {
		return fmt.Errorf("LLM configuration error: %w\n\nFor Gemini, set:\n  export GEMINI_API_KEY=your-api-key\n\nFor Ollama (local), set:\n  export CROSSWALK_LLM_PROVIDER=ollama", err)
	}
	return fmt.Errorf("LLM configuration error: %w", err)
}

func (c *cli) askCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the assistant about the crosswalk",
		Long: `ask answers one question and exits. With no question it opens an
interactive chat.`,
		Example: `  crosswalk ask "which Master records have no NIST mapping?"
  crosswalk ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			llmCfg := c.cfg.LLMConfig()
			if err := llmCfg.Validate(); err != nil {
				return llmConfigError(llmCfg, err)
			}

			ctx := cmd.Context()
			result, err := c.correlate(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Initializing assistant (%s/%s)...\n", llmCfg.Provider, llmCfg.Model)
			a, err := agent.New(ctx, llmCfg, result, c.cfg.Export.Dir)
			if err != nil {
				return fmt.Errorf("failed to initialize agent: %w", err)
			}

			if len(args) > 0 {
				query := strings.TrimSpace(strings.Join(args, " "))
				if query == "" {
					return errors.New("query cannot be empty")
				}
				response, err := a.Query(ctx, query)
				if err != nil {
					return fmt.Errorf("query failed: %w", err)
				}
				if raw {
					fmt.Fprintln(cmd.OutOrStdout(), response)
				} else {
					fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(response, 100))
				}
				return nil
			}

			p := tea.NewProgram(chat.NewModel(ctx, a), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the answer as plain markdown")
	return cmd
}
