package driven

import "context"

// Registry resolves the declared repository roots to scan.
// Malformed registries degrade to an empty list; roots missing from
// disk are dropped with a warning rather than aborting the batch.
type Registry interface {
	// Roots returns the resolved, existing repository roots.
	Roots(ctx context.Context) ([]string, error)
}
