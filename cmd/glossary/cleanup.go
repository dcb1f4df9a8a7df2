package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lularocha/glossary-builder/internal/app"
)

// cleanupCMD removes stored glossaries that were not saved recently. It is
// intended to be invoked by an external cron job.
func cleanupCMD() *cobra.Command {
	var (
		olderThan time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete session glossaries not saved within --older-than",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive (got %s)", olderThan)
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			deleted, err := app.Cleanup(cmd.Context(), cfg, logger, olderThan, dryRun)
			if err != nil {
				return err
			}

			logger.Info("cleanup completed",
				slog.Int64("deleted", deleted),
				slog.Duration("older_than", olderThan),
				slog.Bool("dry_run", dryRun),
			)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age after which a snapshot is deleted")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the cutoff without deleting")

	return cmd
}
