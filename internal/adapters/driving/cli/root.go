// Package cli provides the cobra command tree for verdex.
// Commands talk to the core exclusively through driving ports;
// wiring happens once in initServices before any command runs.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verdex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/verdex/internal/core/ports/driven"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
	"github.com/custodia-labs/verdex/internal/core/services"
	"github.com/custodia-labs/verdex/internal/extractor"
	"github.com/custodia-labs/verdex/internal/logger"
	"github.com/custodia-labs/verdex/internal/registry"
	"github.com/custodia-labs/verdex/internal/scanner"
)

// version is stamped by Execute from the build entry point.
var version = "dev"

// Persistent flag values.
var (
	verbose      bool
	dataDir      string
	registryPath string
)

// documentProcessor handles one candidate file at a time.
// Satisfied by the ingest orchestrator; the watch command uses it to
// process events as they arrive.
type documentProcessor interface {
	ProcessOne(ctx context.Context, path string) (bool, error)
}

// Package-level services, wired by initServices or injected by tests.
var (
	rootRegistry          driven.Registry
	verdictWatcher        driven.Watcher
	ingestOrchestrator    driving.IngestOrchestrator
	recommendationService driving.RecommendationService
	processor             documentProcessor

	// storeCloser releases the sqlite handle after the command tree ran.
	storeCloser interface{ Close() error }
)

var rootCmd = &cobra.Command{
	Use:   "verdex",
	Short: "Index and analyse code review verdicts",
	Long: `Verdex scans project directories for review verdict documents,
extracts their decision, blocking issues and recommendations into a
local index, and derives statistics and review-template suggestions
from recurring issue patterns.`,
	PersistentPreRunE: initServices,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.verdex/data)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "registry file (default ~/.verdex/registry.toml)")
}

// initServices wires the store, registry, scanner and services.
// Services already present (injected by tests) are left untouched.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if ingestOrchestrator != nil || recommendationService != nil {
		return nil
	}

	dir := dataDir
	if dir == "" {
		dir = defaultDataDir()
	}

	store, err := sqlite.NewStore(dir)
	if err != nil {
		return err
	}
	storeCloser = store

	regPath := registryPath
	if regPath == "" {
		regPath = defaultRegistryPath()
	}
	reg := registry.New(regPath)
	rootRegistry = reg

	orchestrator := services.NewIngestOrchestrator(
		store,
		scanner.New(),
		reg,
		extractor.New(extractor.Config{}),
	)
	ingestOrchestrator = orchestrator
	processor = orchestrator
	recommendationService = services.NewRecommendationService(store)
	verdictWatcher = scanner.NewWatcher()

	return nil
}

// defaultDataDir returns ~/.verdex/data, falling back to a relative
// directory when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".verdex", "data")
	}
	return filepath.Join(home, ".verdex", "data")
}

// defaultRegistryPath returns ~/.verdex/registry.toml.
func defaultRegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".verdex", "registry.toml")
	}
	return filepath.Join(home, ".verdex", "registry.toml")
}

// Execute runs the command tree. The build version is stamped here so
// the version command reports what the binary was built as.
func Execute(buildVersion string) error {
	return ExecuteContext(context.Background(), buildVersion)
}

// ExecuteContext runs the command tree under ctx so long-running
// commands (watch, tui, mcp) stop on interrupt.
func ExecuteContext(ctx context.Context, buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}

	defer func() {
		if storeCloser != nil {
			storeCloser.Close() //nolint:errcheck
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}
