package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root...]",
	Short: "Scan directories for verdict documents",
	Long: `Scans directories for review verdict documents and indexes them.
If roots are given, only those directories are scanned. Otherwise every
root declared in the registry file is scanned. Documents whose content
and extractor version are unchanged are skipped.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest orchestrator not configured")
	}

	ctx := cmd.Context()

	var (
		report *driving.IngestReport
		err    error
	)
	if len(args) > 0 {
		cmd.Printf("Scanning %d root(s)...\n", len(args))
		report, err = ingestOrchestrator.Ingest(ctx, args)
	} else {
		cmd.Println("Scanning registered roots...")
		report, err = ingestOrchestrator.IngestAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	cmd.Printf("Indexed %d document(s), %d unchanged, %d error(s).\n",
		report.Processed, report.Skipped, report.Errors)
	return nil
}
