package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTier indicates a blocking issue tier outside 1..3.
	// Construction fails fast on this; tiers are never silently coerced.
	ErrInvalidTier = errors.New("invalid tier")

	// ErrOutsideRoot indicates a path resolving outside its declared root.
	// Such paths are always rejected, even when the access would succeed.
	ErrOutsideRoot = errors.New("path outside declared root")

	// ErrIngestInProgress indicates an ingest run is already active.
	ErrIngestInProgress = errors.New("ingest in progress")
)
