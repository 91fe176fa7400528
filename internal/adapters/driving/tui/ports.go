// Package tui provides an interactive terminal user interface for verdex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommendation provides statistics and template suggestions.
	Recommendation driving.RecommendationService

	// Ingest coordinates verdict scanning and extraction.
	Ingest driving.IngestOrchestrator
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	recommendation driving.RecommendationService,
	ingest driving.IngestOrchestrator,
) *Ports {
	return &Ports{
		Recommendation: recommendation,
		Ingest:         ingest,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Recommendation == nil {
		return ErrMissingRecommendationService
	}
	if p.Ingest == nil {
		return ErrMissingIngestOrchestrator
	}
	return nil
}
