package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/template"
)

var (
	recommendThreshold int
	recommendJSON      bool
	recommendApply     string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest review-template improvements",
	Long: `Derives review-template suggestions from recurring blocking issues.
Every issue category whose occurrence count meets the threshold yields
one suggestion: a checklist item when the category maps to a known
template section, a new section otherwise.

With --apply the suggestions are appended to the given template file.
The original content is backed up to <file>.bak first, and the target
must resolve inside a registered root.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendThreshold, "threshold", "t", 3, "minimum occurrence count")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output suggestions as JSON")
	recommendCmd.Flags().StringVar(&recommendApply, "apply", "", "append suggestions to this template file")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if recommendationService == nil {
		return errors.New("recommendation service not configured")
	}

	recs, err := recommendationService.Recommend(cmd.Context(), recommendThreshold)
	if err != nil {
		return fmt.Errorf("generating recommendations: %w", err)
	}

	if recommendApply != "" {
		return applyRecommendations(cmd, recommendApply, recs)
	}

	if recommendJSON {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal recommendations: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(recs) == 0 {
		cmd.Printf("No issue category reached %d occurrences.\n", recommendThreshold)
		return nil
	}

	for _, rec := range recs {
		cmd.Printf("  [%s] %s\n", rec.Kind, rec.Section)
		cmd.Printf("      %s\n", rec.Content)
	}
	return nil
}

// applyRecommendations appends the suggestions to the template file,
// grouped by target section. The writer backs the original up and
// rejects targets outside the registered roots.
func applyRecommendations(cmd *cobra.Command, path string, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		cmd.Println("Nothing to apply.")
		return nil
	}
	if rootRegistry == nil {
		return errors.New("registry not configured")
	}

	roots, err := rootRegistry.Roots(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolving registered roots: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading template: %w", err)
	}

	content := append(existing, renderRecommendations(recs)...)

	writer := template.NewWriter(roots)
	if err := writer.Apply(path, content); err != nil {
		return fmt.Errorf("applying recommendations: %w", err)
	}

	cmd.Printf("Applied %d suggestion(s) to %s.\n", len(recs), path)
	return nil
}

// renderRecommendations renders suggestions as markdown, one heading
// per target section in recommendation order.
func renderRecommendations(recs []domain.Recommendation) []byte {
	var b strings.Builder

	lastSection := ""
	for _, rec := range recs {
		if rec.Section != lastSection {
			b.WriteString("\n## ")
			b.WriteString(rec.Section)
			b.WriteString("\n\n")
			lastSection = rec.Section
		}
		b.WriteString("- [ ] ")
		b.WriteString(rec.Content)
		b.WriteString("\n")
	}

	return []byte(b.String())
}
