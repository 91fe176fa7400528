package domain

import (
	"fmt"
	"time"
)

// Kind classifies the review document that produced a record.
type Kind string

const (
	// KindDesignReview is a review of a design document.
	// Kind detection defaults to this when path and content are inconclusive.
	KindDesignReview Kind = "design-review"

	// KindIssueReview is a review of an implemented issue.
	KindIssueReview Kind = "issue-review"
)

// Decision is the extracted review outcome. The vocabulary is closed:
// extraction never populates this field with raw document text.
type Decision string

const (
	DecisionApproved      Decision = "APPROVED"
	DecisionBlocked       Decision = "BLOCKED"
	DecisionNeedsRevision Decision = "NEEDS_REVISION"
	DecisionPending       Decision = "PENDING"

	// DecisionUnknown is the fallback when no vocabulary match is found.
	DecisionUnknown Decision = "UNKNOWN"
)

// Decisions lists the closed extraction vocabulary, excluding the
// UNKNOWN fallback. The order is stable for iteration and display; it
// does not break ties during extraction, which keeps whichever keyword
// occurs first in the document text.
func Decisions() []Decision {
	return []Decision{DecisionApproved, DecisionBlocked, DecisionNeedsRevision, DecisionPending}
}

// Tier bounds for blocking issues. Tier 1 is the most severe.
const (
	TierMin = 1
	TierMax = 3
)

// BlockingIssue is a reviewer-flagged problem with a severity tier.
// Construct via NewBlockingIssue; a zero value is not guaranteed valid.
type BlockingIssue struct {
	// Tier is the severity ranking, 1 (highest) through 3 (lowest).
	Tier int

	// Category is the normalised category token (e.g. "security").
	Category string

	// Description is the free-text remainder of the issue line.
	Description string
}

// NewBlockingIssue validates the tier and returns a constructed issue.
// An out-of-range tier fails with ErrInvalidTier; it is never coerced.
func NewBlockingIssue(tier int, category, description string) (BlockingIssue, error) {
	if tier < TierMin || tier > TierMax {
		return BlockingIssue{}, fmt.Errorf("%w: %d", ErrInvalidTier, tier)
	}
	return BlockingIssue{
		Tier:        tier,
		Category:    category,
		Description: description,
	}, nil
}

// VerdictRecord is the structured extraction of one review document.
// One record exists per document path; re-extraction replaces the record
// and its issue list wholesale.
type VerdictRecord struct {
	// ID is the unique identifier, minted by the store on first upsert.
	ID string

	// Path is the stable document identity across scans.
	Path string

	// Fingerprint is the content digest at extraction time.
	Fingerprint Fingerprint

	// ExtractorVersion is the extractor version that produced this record.
	// A version bump makes the record stale even for identical content.
	ExtractorVersion string

	// Kind classifies the source document.
	Kind Kind

	// Decision is the extracted outcome, or DecisionUnknown.
	Decision Decision

	// Title is the extracted document title, or the "Unknown" sentinel.
	Title string

	// Issues are the blocking issues in document order, duplicates kept.
	Issues []BlockingIssue

	// Recommendations are the reviewer's free-text recommendation bullets.
	Recommendations []string

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the record was last replaced.
	UpdatedAt time.Time
}
