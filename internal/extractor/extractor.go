// Package extractor parses semi-structured review documents into
// verdict records. Parsing is a composition of independent per-field
// extractors, each with a defined fallback: malformed input never
// fails, it degrades.
//
// The extractor has no side effects and never logs. Callers attach
// filename context on their own failure paths.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driven"
)

// UnknownTitle is the sentinel used when no title can be extracted.
const UnknownTitle = "Unknown"

// Version is the current extractor version. Bump it whenever
// extraction logic changes so cached records go stale even for
// byte-identical content.
const Version = "3"

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Config carries the injected extractor configuration. The version is
// explicit rather than a hidden global: bumping it is a deliberate,
// versioned action shared with the staleness check.
type Config struct {
	// Version overrides the built-in extractor version. Empty means
	// the package Version constant.
	Version string
}

// Extractor turns raw document text into structured verdict records.
type Extractor struct {
	version string
}

// New creates an extractor from the given configuration.
func New(cfg Config) *Extractor {
	version := cfg.Version
	if version == "" {
		version = Version
	}
	return &Extractor{version: version}
}

// Version returns the version stamped on produced records.
func (e *Extractor) Version() string {
	return e.version
}

// Extract parses content read from path into a verdict record.
// Every field has a fallback; the issue list preserves document order
// and keeps duplicates.
func (e *Extractor) Extract(path string, content []byte) domain.VerdictRecord {
	text := string(content)

	return domain.VerdictRecord{
		Path:             path,
		Fingerprint:      domain.FingerprintBytes(content),
		ExtractorVersion: e.version,
		Kind:             detectKind(path, text),
		Decision:         extractDecision(text),
		Title:            extractTitle(text),
		Issues:           extractBlockingIssues(text),
		Recommendations:  extractRecommendations(text),
	}
}

// issueReviewToken marks issue reviews in paths and content.
var issueReviewContent = regexp.MustCompile(`(?i)\bissue[- ]review\b`)

// detectKind inspects the path, then the content, for kind tokens.
// Inconclusive input defaults to design-review: a documented bias,
// not a bug.
func detectKind(path, content string) domain.Kind {
	lowerPath := strings.ToLower(path)
	if strings.Contains(lowerPath, "issue") {
		return domain.KindIssueReview
	}
	if strings.Contains(lowerPath, "design") {
		return domain.KindDesignReview
	}
	if issueReviewContent.MatchString(content) {
		return domain.KindIssueReview
	}
	return domain.KindDesignReview
}

// titleLabel matches a "Title:"-labeled line.
var titleLabel = regexp.MustCompile(`(?i)^title:\s*(.+)$`)

// extractTitle returns the first top-level heading, else the first
// "Title:"-labeled line, else the Unknown sentinel.
func extractTitle(content string) string {
	var labeled string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
		if labeled == "" {
			if m := titleLabel.FindStringSubmatch(trimmed); m != nil {
				labeled = strings.TrimSpace(m[1])
			}
		}
	}
	if labeled != "" {
		return labeled
	}
	return UnknownTitle
}

// decisionWord matches any vocabulary keyword, tolerating the space
// variant of NEEDS_REVISION.
const decisionWord = `(APPROVED|BLOCKED|NEEDS[_ ]REVISION|PENDING)`

var (
	decisionLabel = regexp.MustCompile(`(?im)^\s*(?:\*\*)?(?:VERDICT|STATUS)(?:\*\*)?\s*:\s*\**\s*` + decisionWord + `\b`)
	decisionBold  = regexp.MustCompile(`(?m)^\s*\*\*` + decisionWord + `\*\*\s*$`)
	decisionBare  = regexp.MustCompile(`\b` + decisionWord + `\b`)
)

// extractDecision applies the decision cascade: explicit label, bolded
// standalone keyword, then a bare keyword anywhere. First match wins.
// Output is restricted to the closed vocabulary; no unmatched raw text
// is ever returned.
func extractDecision(content string) domain.Decision {
	if m := decisionLabel.FindStringSubmatch(content); m != nil {
		return canonicalDecision(m[1])
	}
	if m := decisionBold.FindStringSubmatch(content); m != nil {
		return canonicalDecision(m[1])
	}
	if m := decisionBare.FindStringSubmatch(content); m != nil {
		return canonicalDecision(m[1])
	}
	return domain.DecisionUnknown
}

// canonicalDecision folds keyword variants onto the vocabulary.
func canonicalDecision(raw string) domain.Decision {
	normalized := strings.ReplaceAll(strings.ToUpper(raw), " ", "_")
	for _, d := range domain.Decisions() {
		if normalized == string(d) {
			return d
		}
	}
	return domain.DecisionUnknown
}

var (
	blockingHeading = regexp.MustCompile(`(?i)^#{1,6}\s*blocking issues\b`)
	recsHeading     = regexp.MustCompile(`(?i)^#{1,6}\s*recommendations\b`)

	// structuredIssue captures "[Tier N] - [Category] - Description"
	// list items. The category capture excludes its own brackets and
	// any leading dash; that boundary is covered by explicit tests.
	structuredIssue = regexp.MustCompile(`(?i)^\s*[-*]?\s*\[\s*Tier\s*([1-3])\s*\]\s*-\s*\[\s*-?\s*([^\]]*?)\s*\]\s*-\s*(.+?)\s*$`)

	// looseTier is the fallback scan for tier-labeled lines anywhere
	// in the document.
	looseTier = regexp.MustCompile(`(?i)^\s*[-*]?\s*tier\s*([1-3])\s*[:\-\s]\s*(.+?)\s*$`)

	bulletItem = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
)

// extractBlockingIssues prefers structured list items under the
// "Blocking Issues" heading and falls back to a looser tier-labeled
// scan over the whole document. Document order is preserved and no
// deduplication happens.
func extractBlockingIssues(content string) []domain.BlockingIssue {
	var issues []domain.BlockingIssue

	for _, line := range sectionLines(content, blockingHeading) {
		m := structuredIssue.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tier, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		issue, err := domain.NewBlockingIssue(tier, strings.ToLower(m[2]), m[3])
		if err != nil {
			continue
		}
		issues = append(issues, issue)
	}

	if issues != nil {
		return issues
	}

	// Loose fallback: tier-labeled lines anywhere in the document.
	for _, line := range strings.Split(content, "\n") {
		if structuredIssue.MatchString(line) {
			m := structuredIssue.FindStringSubmatch(line)
			tier, _ := strconv.Atoi(m[1])
			if issue, err := domain.NewBlockingIssue(tier, strings.ToLower(m[2]), m[3]); err == nil {
				issues = append(issues, issue)
			}
			continue
		}
		m := looseTier.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tier, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		description := strings.TrimSpace(m[2])
		if description == "" {
			continue
		}
		category := "uncategorized"
		if c, ok := categoryFromLine(line); ok {
			category = c
		}
		if issue, err := domain.NewBlockingIssue(tier, category, description); err == nil {
			issues = append(issues, issue)
		}
	}

	return issues
}

// looseCategory captures a bracketed token on a loose tier line.
var looseCategory = regexp.MustCompile(`\[\s*-?\s*([^\]]*?)\s*\]`)

// categoryFromLine pulls a bracketed category off a loose tier line.
func categoryFromLine(line string) (string, bool) {
	// Skip the tier bracket itself if present.
	matches := looseCategory.FindAllStringSubmatch(line, -1)
	for _, m := range matches {
		token := strings.ToLower(strings.TrimSpace(m[1]))
		if token == "" || strings.HasPrefix(token, "tier") {
			continue
		}
		return token, true
	}
	return "", false
}

// extractRecommendations collects bullet items under the
// "Recommendations" heading. Order is preserved, empty bullets are
// dropped, unmatched sections yield an empty slice.
func extractRecommendations(content string) []string {
	var recs []string
	for _, line := range sectionLines(content, recsHeading) {
		m := bulletItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if text == "" {
			continue
		}
		recs = append(recs, text)
	}
	return recs
}

// sectionLines returns the lines between a heading matching headingRe
// and the next heading (or end of document). A missing heading yields
// nil.
func sectionLines(content string, headingRe *regexp.Regexp) []string {
	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		if headingRe.MatchString(strings.TrimSpace(line)) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
			end = i
			break
		}
	}
	return lines[start:end]
}
