package driven

import (
	"context"

	"github.com/custodia-labs/verdex/internal/core/domain"
)

// VerdictStore persists verdict records and their blocking issues.
// Backed by SQLite for durable storage.
type VerdictStore interface {
	// NeedsUpdate reports whether the document at path must be
	// re-extracted. True when no record exists, when the stored
	// fingerprint differs, or when the stored extractor version differs.
	NeedsUpdate(ctx context.Context, path string, fp domain.Fingerprint, version string) (bool, error)

	// Upsert stores or replaces the record for its path and returns the
	// record ID. The prior issue list is discarded and the new one
	// installed as a single atomic unit.
	Upsert(ctx context.Context, record *domain.VerdictRecord) (string, error)

	// Get retrieves the record for a document path.
	Get(ctx context.Context, path string) (*domain.VerdictRecord, error)

	// List returns all stored records.
	List(ctx context.Context) ([]domain.VerdictRecord, error)

	// Delete removes the record for a document path and its issues.
	Delete(ctx context.Context, path string) error

	// PatternStats computes aggregate statistics over all records.
	// It never fails on an empty store: counts are zeroed, maps empty.
	PatternStats(ctx context.Context) (*domain.AggregateStats, error)
}
