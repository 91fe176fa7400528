package mcp

import (
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommendation provides statistics and template suggestions.
	Recommendation driving.RecommendationService

	// Ingest coordinates verdict scanning and extraction.
	Ingest driving.IngestOrchestrator
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Recommendation == nil {
		return ErrMissingRecommendationService
	}
	// Ingest is optional; without it the ingest tool is not registered
	return nil
}
