package driven

import "github.com/custodia-labs/verdex/internal/core/domain"

// Extractor turns raw review document text into a structured record.
// Extraction is best-effort: it never fails on malformed input, every
// field has a defined fallback.
type Extractor interface {
	// Extract parses content read from path into a verdict record.
	// The returned record carries the extractor version and the
	// fingerprint of content.
	Extract(path string, content []byte) domain.VerdictRecord

	// Version is the extractor version stamped on produced records.
	// It changes whenever extraction logic changes, so cached records
	// go stale even for byte-identical content.
	Version() string
}
