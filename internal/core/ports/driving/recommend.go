package driving

import (
	"context"

	"github.com/custodia-labs/verdex/internal/core/domain"
)

// RecommendationService reads stored aggregates and proposes
// review-template improvements. Pure read-then-propose: no file
// mutation happens here.
type RecommendationService interface {
	// Stats returns aggregate statistics over all stored records.
	Stats(ctx context.Context) (*domain.AggregateStats, error)

	// Recommend generates ordered suggestions for every category whose
	// occurrence count meets threshold.
	Recommend(ctx context.Context, threshold int) ([]domain.Recommendation, error)
}
