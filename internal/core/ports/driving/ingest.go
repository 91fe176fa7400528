package driving

import "context"

// IngestOrchestrator coordinates verdict discovery and extraction.
type IngestOrchestrator interface {
	// Ingest scans the given roots, extracting stale documents.
	// Per-document failures are warnings; the batch always completes
	// and the report carries the final processed count.
	Ingest(ctx context.Context, roots []string) (*IngestReport, error)

	// IngestAll scans every root declared in the registry.
	IngestAll(ctx context.Context) (*IngestReport, error)

	// Status returns progress for the currently running ingest.
	Status(ctx context.Context) (*IngestStatus, error)
}

// IngestReport summarises one completed ingest run.
type IngestReport struct {
	// Processed is the count of documents extracted and stored.
	Processed int

	// Skipped is the count of documents whose records were fresh.
	Skipped int

	// Errors is the count of per-document failures.
	Errors int
}

// IngestStatus represents the current state of an ingest operation.
type IngestStatus struct {
	// Running indicates if an ingest is currently in progress.
	Running bool

	// Processed is the count of documents extracted so far.
	Processed int

	// Skipped is the count of fresh documents skipped so far.
	Skipped int

	// ErrorCount is the number of per-document errors encountered.
	ErrorCount int
}
