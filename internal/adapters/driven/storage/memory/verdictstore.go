// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and anywhere durable storage is not needed.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driven"
)

// Ensure VerdictStore implements the interface.
var _ driven.VerdictStore = (*VerdictStore)(nil)

// VerdictStore is an in-memory implementation of driven.VerdictStore.
type VerdictStore struct {
	mu sync.RWMutex

	// records is keyed by document path.
	records map[string]domain.VerdictRecord

	// order preserves first-insertion order of issue categories so
	// PatternStats has a stable tiebreak, matching the SQLite store.
	order []string
}

// NewVerdictStore creates a new in-memory verdict store.
func NewVerdictStore() *VerdictStore {
	return &VerdictStore{
		records: make(map[string]domain.VerdictRecord),
	}
}

// NeedsUpdate reports whether the document at path must be re-extracted.
func (s *VerdictStore) NeedsUpdate(_ context.Context, path string, fp domain.Fingerprint, version string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[path]
	if !ok {
		return true, nil
	}
	return record.Fingerprint != fp || record.ExtractorVersion != version, nil
}

// Upsert stores or replaces the record for its path.
func (s *VerdictStore) Upsert(_ context.Context, record *domain.VerdictRecord) (string, error) {
	if record == nil || record.Path == "" {
		return "", domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *record
	stored.UpdatedAt = now

	if existing, ok := s.records[record.Path]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		stored.CreatedAt = now
	}

	stored.Issues = append([]domain.BlockingIssue(nil), record.Issues...)
	s.records[record.Path] = stored

	for _, issue := range record.Issues {
		if !contains(s.order, issue.Category) {
			s.order = append(s.order, issue.Category)
		}
	}

	return stored.ID, nil
}

// Get retrieves the record for a document path.
func (s *VerdictStore) Get(_ context.Context, path string) (*domain.VerdictRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all stored records ordered by path.
func (s *VerdictStore) List(_ context.Context) ([]domain.VerdictRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.VerdictRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records, nil
}

// Delete removes the record for a document path.
func (s *VerdictStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, path)
	return nil
}

// PatternStats computes aggregate statistics over all records.
func (s *VerdictStore) PatternStats(_ context.Context) (*domain.AggregateStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.AggregateStats{
		ByTier:     make(map[int]int),
		ByDecision: make(map[domain.Decision]int),
	}

	counts := make(map[string]int)
	for _, record := range s.records {
		stats.TotalRecords++
		stats.ByDecision[record.Decision]++
		if len(record.Issues) > 0 {
			stats.RecordsWithIssues++
		}
		for _, issue := range record.Issues {
			counts[issue.Category]++
			stats.ByTier[issue.Tier]++
		}
	}

	for _, category := range s.order {
		if counts[category] > 0 {
			stats.ByCategory = append(stats.ByCategory,
				domain.CategoryCount{Category: category, Count: counts[category]})
		}
	}
	sort.SliceStable(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].Count > stats.ByCategory[j].Count
	})

	return stats, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
