package mcp

import (
	"context"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// mockRecommendationService is a test double for driving.RecommendationService.
type mockRecommendationService struct {
	stats *domain.AggregateStats
	recs  []domain.Recommendation
	err   error

	lastThreshold int
}

func (m *mockRecommendationService) Stats(_ context.Context) (*domain.AggregateStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats == nil {
		return &domain.AggregateStats{}, nil
	}
	return m.stats, nil
}

func (m *mockRecommendationService) Recommend(_ context.Context, threshold int) ([]domain.Recommendation, error) {
	m.lastThreshold = threshold
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

// mockIngestOrchestrator is a test double for driving.IngestOrchestrator.
type mockIngestOrchestrator struct {
	report *driving.IngestReport
	err    error

	lastRoots  []string
	calledAll  bool
	calledSome bool
}

func (m *mockIngestOrchestrator) Ingest(_ context.Context, roots []string) (*driving.IngestReport, error) {
	m.calledSome = true
	m.lastRoots = roots
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockIngestOrchestrator) IngestAll(_ context.Context) (*driving.IngestReport, error) {
	m.calledAll = true
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockIngestOrchestrator) Status(_ context.Context) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{}, nil
}
