package tui

import "errors"

// ErrMissingRecommendationService is returned when the recommendation service is not provided.
var ErrMissingRecommendationService = errors.New("tui: recommendation service is required")

// ErrMissingIngestOrchestrator is returned when the ingest orchestrator is not provided.
var ErrMissingIngestOrchestrator = errors.New("tui: ingest orchestrator is required")
