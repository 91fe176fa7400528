package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driven"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
	"github.com/custodia-labs/verdex/internal/pattern"
)

// Ensure RecommendationService implements the interface.
var _ driving.RecommendationService = (*RecommendationService)(nil)

// RecommendationService proposes review-template improvements from
// stored aggregates. Read-then-propose only: it never mutates files.
type RecommendationService struct {
	store driven.VerdictStore
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store driven.VerdictStore) *RecommendationService {
	return &RecommendationService{store: store}
}

// Stats returns aggregate statistics over all stored records.
func (s *RecommendationService) Stats(ctx context.Context) (*domain.AggregateStats, error) {
	stats, err := s.store.PatternStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pattern stats: %w", err)
	}
	return stats, nil
}

// Recommend generates suggestions from the store's current aggregates.
func (s *RecommendationService) Recommend(ctx context.Context, threshold int) ([]domain.Recommendation, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return Generate(stats, threshold), nil
}

// Generate emits one recommendation per category whose occurrence
// count meets threshold, ordered by descending count with ties kept in
// the stats' stable category order. Categories with a dedicated
// template section get a checklist item; unmapped categories propose a
// new section.
func Generate(stats *domain.AggregateStats, threshold int) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, cc := range stats.ByCategory {
		if cc.Count < threshold {
			continue
		}

		kind := domain.RecommendAddSection
		if pattern.KnownCategory(cc.Category) {
			kind = domain.RecommendAddChecklistItem
		}

		recs = append(recs, domain.Recommendation{
			Kind:     kind,
			Section:  pattern.CategoryToSection(cc.Category),
			Category: cc.Category,
			Content: fmt.Sprintf("Address recurring %q issues: %d occurrences across reviewed repositories",
				cc.Category, cc.Count),
			Count: cc.Count,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Count > recs[j].Count })
	return recs
}
