// Package cmd implements the crosswalk command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/config"
	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/logging"
	"github.com/ethanolivertroy/crosswalk/internal/store"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=..."
var version = "0.1.0"

// cli carries the state shared by every subcommand
type cli struct {
	configPath string
	dataDir    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
	repo   store.Repository
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the browser.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "crosswalk",
		Short: "Correlate a Master List of controls against compliance frameworks",
		Long: `crosswalk correlates a Master List of internal security controls against
Tripwire Core, Alert, NIST 800-53, CIS, PCI-DSS, HIPAA and SOX records.

Each Master record is classified Fully Mapped, Partially Mapped or Gap, and
coverage is rolled up per domain and framework. Records come from the
built-in catalogs, a data directory (--data-dir) or a remote bundle
(data.url in the config file).

Keyboard (browser):
  \       Toggle assistant panel
  Tab     Switch focus between panels
  Ctrl+K  Open/focus the assistant
  Ctrl+P  Open command palette
  Ctrl+C  Quit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default: ./crosswalk.yaml or ~/.config/crosswalk/crosswalk.yaml)")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "Directory of per-framework record files (default: built-in catalogs)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		c.tuiCmd(),
		c.correlateCmd(),
		c.coverageCmd(),
		c.gapsCmd(),
		c.exportCmd(),
		c.initCmd(),
		c.askCmd(),
		c.serveCmd(),
		c.rulesCmd(),
		versionCmd(),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger
func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.Data.Dir = c.dataDir
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

// repository picks the record store: a remote bundle, a data directory,
// or the built-in catalogs. The store is built once per process.
func (c *cli) repository() (store.Repository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	switch {
	case c.cfg.Data.URL != "":
		c.repo = store.NewRemoteStore(c.cfg.Data.URL, store.WithLogger(c.logger))
	case c.cfg.Data.Dir != "":
		format, err := store.ParseFormat(c.cfg.Data.Format)
		if err != nil {
			return nil, err
		}
		c.repo = store.NewFileStore(c.cfg.Data.Dir, format, c.logger)
	default:
		c.repo = store.NewSeededMemoryStore()
	}
	return c.repo, nil
}

// reload drops any cached remote bundle and correlates again
func (c *cli) reload(ctx context.Context) (grc.Result, error) {
	if rs, ok := c.repo.(*store.RemoteStore); ok {
		rs.Invalidate()
	}
	return c.correlate(ctx)
}

// correlate loads a snapshot from the configured store and runs the engine
func (c *cli) correlate(ctx context.Context) (grc.Result, error) {
	rules, err := c.cfg.RuleSet()
	if err != nil {
		return grc.Result{}, err
	}
	repo, err := c.repository()
	if err != nil {
		return grc.Result{}, err
	}
	snap, err := store.Snapshot(ctx, repo)
	if err != nil {
		return grc.Result{}, fmt.Errorf("failed to load records: %w", err)
	}

	engine := grc.NewEngine(rules)
	w := engine.Rules().Weights()
	c.logger.Debug("matching weights",
		zap.Int("cross_reference", w.CrossReference),
		zap.Int("exact_standard", w.ExactStandard),
		zap.Int("gap_penalty", w.GapPenalty),
	)
	result := engine.Run(snap)
	for _, s := range result.Skipped {
		c.logger.Warn("skipped record",
			zap.String("framework", string(s.Framework)),
			zap.String("id", s.ID),
			zap.Int("index", s.Index),
			zap.Strings("reasons", s.Reasons),
		)
	}
	c.logger.Info("correlated",
		zap.Int("masters", len(result.Masters)),
		zap.Int("frameworks", len(result.Frameworks)),
		zap.Int("correlations", len(result.Correlations)),
		zap.Int("gaps", len(result.Summary.Gaps)),
	)
	return result, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crosswalk v%s\n", version)
		},
	}
}
