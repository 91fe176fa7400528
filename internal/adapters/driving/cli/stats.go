package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verdex/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate verdict statistics",
	Long: `Shows aggregate statistics over all indexed verdict documents:
record counts, blocking issues by category and tier, and decisions.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if recommendationService == nil {
		return errors.New("recommendation service not configured")
	}

	stats, err := recommendationService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	if statsJSON {
		return outputStatsJSON(cmd, stats)
	}

	return outputStatsTable(cmd, stats)
}

func outputStatsJSON(cmd *cobra.Command, stats *domain.AggregateStats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputStatsTable(cmd *cobra.Command, stats *domain.AggregateStats) error {
	if stats.TotalRecords == 0 {
		cmd.Println("No verdicts indexed. Run 'verdex scan' first.")
		return nil
	}

	cmd.Printf("Total records:        %d\n", stats.TotalRecords)
	cmd.Printf("With blocking issues: %d\n", stats.RecordsWithIssues)

	if len(stats.ByCategory) > 0 {
		cmd.Println()
		cmd.Println("Issues by category:")
		for _, cc := range stats.ByCategory {
			cmd.Printf("  %-20s %d\n", cc.Category, cc.Count)
		}
	}

	if len(stats.ByTier) > 0 {
		cmd.Println()
		cmd.Println("Issues by tier:")
		tiers := make([]int, 0, len(stats.ByTier))
		for tier := range stats.ByTier {
			tiers = append(tiers, tier)
		}
		sort.Ints(tiers)
		for _, tier := range tiers {
			cmd.Printf("  Tier %d: %d\n", tier, stats.ByTier[tier])
		}
	}

	if len(stats.ByDecision) > 0 {
		cmd.Println()
		cmd.Println("Decisions:")
		decisions := make([]string, 0, len(stats.ByDecision))
		for d := range stats.ByDecision {
			decisions = append(decisions, string(d))
		}
		sort.Strings(decisions)
		for _, d := range decisions {
			cmd.Printf("  %-16s %d\n", d, stats.ByDecision[domain.Decision(d)])
		}
	}

	return nil
}
