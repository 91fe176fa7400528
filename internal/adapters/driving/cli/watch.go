package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verdex/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch registered roots and index changes live",
	Long: `Performs an initial scan of all registered roots, then keeps watching
them for created or changed verdict documents and indexes each one as
it appears. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if ingestOrchestrator == nil || verdictWatcher == nil || processor == nil {
		return errors.New("watch services not configured")
	}
	if rootRegistry == nil {
		return errors.New("registry not configured")
	}

	ctx := cmd.Context()

	roots, err := rootRegistry.Roots(ctx)
	if err != nil {
		return fmt.Errorf("resolving registered roots: %w", err)
	}
	if len(roots) == 0 {
		return errors.New("no roots registered; add some to the registry file first")
	}

	// Catch up before watching so events only cover the delta.
	report, err := ingestOrchestrator.IngestAll(ctx)
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}
	cmd.Printf("Initial scan: %d indexed, %d unchanged.\n", report.Processed, report.Skipped)
	cmd.Printf("Watching %d root(s). Press Ctrl+C to stop.\n", len(roots))

	candidates, errs := verdictWatcher.Watch(ctx, roots)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)

		case candidate, ok := <-candidates:
			if !ok {
				return nil
			}
			processed, err := processor.ProcessOne(ctx, candidate.Path)
			switch {
			case err != nil:
				logger.Warn("Failed to process %s: %v", candidate.Path, err)
			case processed:
				cmd.Printf("Indexed %s\n", candidate.Path)
			}
		}
	}
}
