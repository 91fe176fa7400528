package services

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driven"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
	"github.com/custodia-labs/verdex/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestOrchestrator = (*IngestOrchestrator)(nil)

// IngestOrchestrator coordinates verdict discovery, staleness checks
// and extraction. The pipeline is sequential per document; writes for
// one identity never overlap.
type IngestOrchestrator struct {
	store     driven.VerdictStore
	scanner   driven.Scanner
	registry  driven.Registry
	extractor driven.Extractor

	// Status tracking
	mu     sync.RWMutex
	active *driving.IngestStatus
}

// NewIngestOrchestrator creates a new ingest orchestrator.
func NewIngestOrchestrator(
	store driven.VerdictStore,
	scan driven.Scanner,
	reg driven.Registry,
	extract driven.Extractor,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		store:     store,
		scanner:   scan,
		registry:  reg,
		extractor: extract,
	}
}

// Ingest scans the given roots and extracts every stale document.
// Per-document failures are logged warnings; the batch always
// completes and the report carries the final processed count.
func (o *IngestOrchestrator) Ingest(ctx context.Context, roots []string) (*driving.IngestReport, error) {
	status := &driving.IngestStatus{Running: true}
	o.setStatus(status)
	defer o.clearStatus()

	logger.Info("Starting ingest over %d root(s)", len(roots))

	for _, root := range roots {
		if err := o.ingestRoot(ctx, root, status); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A root that cannot be scanned is a warning, not an abort.
			logger.Warn("Skipping root %s: %v", root, err)
			status.ErrorCount++
		}
	}

	report := &driving.IngestReport{
		Processed: status.Processed,
		Skipped:   status.Skipped,
		Errors:    status.ErrorCount,
	}
	logger.Info("Ingest complete: %d processed, %d fresh, %d errors",
		report.Processed, report.Skipped, report.Errors)
	return report, nil
}

// IngestAll scans every root declared in the registry.
func (o *IngestOrchestrator) IngestAll(ctx context.Context) (*driving.IngestReport, error) {
	roots, err := o.registry.Roots(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve registry roots: %w", err)
	}
	return o.Ingest(ctx, roots)
}

// Status returns progress for the currently running ingest.
func (o *IngestOrchestrator) Status(_ context.Context) (*driving.IngestStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.active != nil {
		// Return a copy to avoid race conditions
		copied := *o.active
		return &copied, nil
	}
	return &driving.IngestStatus{Running: false}, nil
}

// ingestRoot drains one root's scan, processing each candidate.
// Both channels are consumed to exhaustion: a scan error buffered
// before the candidate channel closed must still surface, so a closed
// candidate channel never short-circuits the error side.
func (o *IngestOrchestrator) ingestRoot(
	ctx context.Context,
	root string,
	status *driving.IngestStatus,
) error {
	candidates, errs := o.scanner.Scan(ctx, root)

	for candidates != nil || errs != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("scan root: %w", err)
			}

		case candidate, ok := <-candidates:
			if !ok {
				candidates = nil
				continue
			}

			logger.Debug("Considering: %s", candidate.Path)
			processed, err := o.ProcessOne(ctx, candidate.Path)
			if err != nil {
				status.ErrorCount++
				logger.Warn("Failed to process %s: %v", candidate.Path, err)
				continue
			}
			if processed {
				status.Processed++
			} else {
				status.Skipped++
			}
		}
	}

	return nil
}

// ProcessOne runs the per-document pipeline: read, fingerprint,
// staleness check, extract, persist. Returns false when the stored
// record was already fresh. Also used by watch mode for single
// documents.
func (o *IngestOrchestrator) ProcessOne(ctx context.Context, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read document: %w", err)
	}

	fp := domain.FingerprintBytes(content)
	stale, err := o.store.NeedsUpdate(ctx, path, fp, o.extractor.Version())
	if err != nil {
		return false, fmt.Errorf("staleness check: %w", err)
	}
	if !stale {
		logger.Debug("Fresh, skipping: %s", path)
		return false, nil
	}

	record := o.extractor.Extract(path, content)
	if _, err := o.store.Upsert(ctx, &record); err != nil {
		return false, fmt.Errorf("persist record: %w", err)
	}

	logger.Debug("Stored %s (%s, %d issues)", path, record.Decision, len(record.Issues))
	return true, nil
}

// setStatus records the active ingest status.
func (o *IngestOrchestrator) setStatus(status *driving.IngestStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = status
}

// clearStatus removes the active ingest status.
func (o *IngestOrchestrator) clearStatus() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = nil
}
