package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// mockIngestOrchestrator implements driving.IngestOrchestrator for testing.
type mockIngestOrchestrator struct {
	report *driving.IngestReport
	err    error

	lastRoots []string
	calledAll bool
}

func (m *mockIngestOrchestrator) Ingest(_ context.Context, roots []string) (*driving.IngestReport, error) {
	m.lastRoots = roots
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &driving.IngestReport{}, nil
	}
	return m.report, nil
}

func (m *mockIngestOrchestrator) IngestAll(_ context.Context) (*driving.IngestReport, error) {
	m.calledAll = true
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &driving.IngestReport{}, nil
	}
	return m.report, nil
}

func (m *mockIngestOrchestrator) Status(_ context.Context) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{}, nil
}

// mockRecommendationService implements driving.RecommendationService for testing.
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

// mockRegistry implements driven.Registry for testing.
type mockRegistry struct {
	roots []string
	err   error
}

func (m *mockRegistry) Roots(_ context.Context) ([]string, error) {
	return m.roots, m.err
}

var errMockFailure = errors.New("mock failure")
