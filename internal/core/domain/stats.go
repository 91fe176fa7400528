package domain

// CategoryCount pairs an issue category with its occurrence count.
// Stores return categories as an ordered slice so consumers have a
// stable tiebreak order when sorting by count.
type CategoryCount struct {
	Category string
	Count    int
}

// AggregateStats are derived counts over all stored verdict records.
// They are computed on demand and never persisted.
type AggregateStats struct {
	// TotalRecords is the number of stored verdict records.
	TotalRecords int

	// RecordsWithIssues counts records with at least one blocking issue.
	RecordsWithIssues int

	// ByCategory holds per-category issue counts in stable store order.
	ByCategory []CategoryCount

	// ByTier holds issue counts keyed by severity tier.
	ByTier map[int]int

	// ByDecision holds record counts keyed by decision outcome.
	ByDecision map[Decision]int
}

// CategoryCount returns the count for a category, zero when absent.
func (s *AggregateStats) CategoryCount(category string) int {
	for _, cc := range s.ByCategory {
		if cc.Category == category {
			return cc.Count
		}
	}
	return 0
}
