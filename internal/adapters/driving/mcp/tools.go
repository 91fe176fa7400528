package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// StatsInput is the input schema for the verdict_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the verdict_stats tool.
type StatsOutput struct {
	TotalRecords      int                   `json:"total_records"`
	RecordsWithIssues int                   `json:"records_with_issues"`
	ByCategory        []CategoryCountOutput `json:"by_category"`
	ByTier            map[string]int        `json:"by_tier,omitempty"`
	ByDecision        map[string]int        `json:"by_decision,omitempty"`
}

// CategoryCountOutput pairs a category with its issue count.
type CategoryCountOutput struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// RecommendationsInput is the input schema for the verdict_recommendations tool.
type RecommendationsInput struct {
	Threshold int `json:"threshold,omitempty" jsonschema:"minimum issue count for a category to produce a suggestion (default 3)"`
}

// RecommendationsOutput is the output schema for the verdict_recommendations tool.
type RecommendationsOutput struct {
	Recommendations []RecommendationOutput `json:"recommendations"`
	Count           int                    `json:"count"`
}

// RecommendationOutput represents a single template suggestion.
type RecommendationOutput struct {
	Kind     string `json:"kind"`
	Section  string `json:"section"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Count    int    `json:"count"`
}

// IngestInput is the input schema for the verdict_ingest tool.
type IngestInput struct {
	Roots []string `json:"roots,omitempty" jsonschema:"directories to scan; all registered roots when empty"`
}

// IngestOutput is the output schema for the verdict_ingest tool.
type IngestOutput struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verdict_stats",
		Description: "Aggregate statistics over all indexed review verdicts",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verdict_recommendations",
		Description: "Review-template suggestions derived from recurring blocking issues",
	}, s.handleRecommendations)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "verdict_ingest",
			Description: "Scan registered roots and index new or changed verdict documents",
		}, s.handleIngest)
	}
}

// handleStats handles the verdict_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Recommendation.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		TotalRecords:      stats.TotalRecords,
		RecordsWithIssues: stats.RecordsWithIssues,
		ByCategory:        make([]CategoryCountOutput, len(stats.ByCategory)),
	}

	for i, cc := range stats.ByCategory {
		output.ByCategory[i] = CategoryCountOutput{
			Category: cc.Category,
			Count:    cc.Count,
		}
	}

	if len(stats.ByTier) > 0 {
		output.ByTier = make(map[string]int, len(stats.ByTier))
		for tier, n := range stats.ByTier {
			output.ByTier[tierLabel(tier)] = n
		}
	}
	if len(stats.ByDecision) > 0 {
		output.ByDecision = make(map[string]int, len(stats.ByDecision))
		for decision, n := range stats.ByDecision {
			output.ByDecision[string(decision)] = n
		}
	}

	return nil, output, nil
}

// handleRecommendations handles the verdict_recommendations tool invocation.
func (s *Server) handleRecommendations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendationsInput,
) (*mcp.CallToolResult, RecommendationsOutput, error) {
	threshold := input.Threshold
	if threshold <= 0 {
		threshold = 3
	}

	recs, err := s.ports.Recommendation.Recommend(ctx, threshold)
	if err != nil {
		return nil, RecommendationsOutput{}, err
	}

	output := RecommendationsOutput{
		Recommendations: make([]RecommendationOutput, len(recs)),
		Count:           len(recs),
	}

	for i := range recs {
		output.Recommendations[i] = RecommendationOutput{
			Kind:     string(recs[i].Kind),
			Section:  recs[i].Section,
			Category: recs[i].Category,
			Content:  recs[i].Content,
			Count:    recs[i].Count,
		}
	}

	return nil, output, nil
}

// handleIngest handles the verdict_ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var (
		report *driving.IngestReport
		err    error
	)
	if len(input.Roots) > 0 {
		report, err = s.ports.Ingest.Ingest(ctx, input.Roots)
	} else {
		report, err = s.ports.Ingest.IngestAll(ctx)
	}
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		Processed: report.Processed,
		Skipped:   report.Skipped,
		Errors:    report.Errors,
	}, nil
}

func tierLabel(tier int) string {
	switch tier {
	case 1:
		return "tier_1"
	case 2:
		return "tier_2"
	case 3:
		return "tier_3"
	default:
		return "unknown"
	}
}
