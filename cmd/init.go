package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/catalog"
	"github.com/ethanolivertroy/crosswalk/internal/store"
)

func (c *cli) initCmd() *cobra.Command {
	var formatName string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed a data directory from the built-in catalogs",
		Long: `init writes one file per framework into --data-dir so the records can be
edited and correlated with crosswalk --data-dir DIR.`,
		Example: `  crosswalk init --data-dir ./records
  crosswalk init --data-dir ./records --format json --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := c.cfg.Data.Dir
			if dir == "" {
				return errors.New("--data-dir is required")
			}
			if formatName == "" {
				formatName = c.cfg.Data.Format
			}
			format, err := store.ParseFormat(formatName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			fs := store.NewFileStore(dir, format, c.logger)
			existing, err := fs.Frameworks(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 && !force {
				return fmt.Errorf("%s already holds %d framework files (use --force to overwrite)", dir, len(existing))
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, fw := range catalog.Frameworks() {
				records := catalog.Records(fw)
				if err := fs.Save(ctx, fw, records); err != nil {
					return fmt.Errorf("writing %s: %w", fw, err)
				}
				total += len(records)
				fmt.Fprintf(out, "%-14s %3d records  %s%s\n", fw, len(records), fw.Slug(), format.Extension())
			}
			c.logger.Info("seeded data directory", zap.String("dir", dir), zap.Int("records", total))
			fmt.Fprintf(out, "\nWrote %d records to %s\n", total, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "", "File format: yaml, json (default: data.format from config)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing framework files")
	return cmd
}
