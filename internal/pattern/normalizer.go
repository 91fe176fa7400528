// Package pattern canonicalises free-text issue descriptions so that
// textually different but structurally identical issues group together.
// Variable tokens (file names, line numbers, quoted identifiers, bare
// numbers) are replaced with fixed placeholders.
package pattern

import (
	"regexp"
	"strings"
)

// Placeholders substituted into normalised patterns. NumberPlaceholder
// is shared by the line-number and bare-number rules so whole-string
// matching behaves predictably regardless of which rule fired.
const (
	FilePlaceholder   = "<FILE>"
	VarPlaceholder    = "<VAR>"
	NumberPlaceholder = "<N>"
)

// DefaultSection is the template section for unmapped categories.
const DefaultSection = "General Guidelines"

// fileExtensions is the fixed extension set recognised as file tokens.
var filePattern = regexp.MustCompile(
	`\b[\w./-]*\w\.(?:go|py|js|ts|tsx|rs|java|c|h|cpp|sh|md|json|yaml|yml|toml)\b`)

// linePattern matches "line <number>" case-insensitively. The
// replacement is emitted in lower case so case-insensitive consumers
// see one consistent form.
var linePattern = regexp.MustCompile(`(?i)\bline\s+\d+\b`)

// varPattern matches a quoted identifier immediately followed by the
// word "variable". Quotes are preserved around the placeholder.
var varPattern = regexp.MustCompile("(['\"`])[A-Za-z_][A-Za-z0-9_]*(['\"`])(\\s+variable\\b)")

// numberPattern matches any remaining standalone integer. Earlier
// placeholders contain no digits, so this rule cannot corrupt them.
var numberPattern = regexp.MustCompile(`\b\d+\b`)

// categoryPattern captures the bracketed category of a structured issue
// line. The capture excludes the brackets themselves and any leading
// dash or whitespace inside them.
var categoryPattern = regexp.MustCompile(`(?i)\[\s*Tier\s*\d\s*\]\s*-\s*\[\s*-?\s*([^\]]*?)\s*\]`)

// sectionByCategory is the static category-to-section map used when
// proposing template edits.
var sectionByCategory = map[string]string{
	"security":       "Security Checklist",
	"testing":        "Testing Requirements",
	"documentation":  "Documentation Standards",
	"performance":    "Performance Considerations",
	"error-handling": "Error Handling",
	"architecture":   "Architecture Review",
}

// Normalize canonicalises an issue description. Rules apply strictly in
// order: file tokens, "line N", quoted identifiers before "variable",
// then any remaining standalone integers. Two descriptions differing
// only in those tokens normalise to byte-identical strings.
func Normalize(description string) string {
	s := filePattern.ReplaceAllString(description, FilePlaceholder)
	s = linePattern.ReplaceAllString(s, "line "+NumberPlaceholder)
	s = varPattern.ReplaceAllString(s, "${1}"+VarPlaceholder+"${2}${3}")
	s = numberPattern.ReplaceAllString(s, NumberPlaceholder)
	return s
}

// ExtractCategory pulls the category token out of a structured issue
// line. Returns false when the line carries no bracketed category.
func ExtractCategory(line string) (string, bool) {
	m := categoryPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	category := strings.ToLower(strings.TrimSpace(m[1]))
	if category == "" {
		return "", false
	}
	return category, true
}

// CategoryToSection maps a category to its review-template section.
// Unmapped categories fall back to DefaultSection.
func CategoryToSection(category string) string {
	if section, ok := sectionByCategory[strings.ToLower(category)]; ok {
		return section
	}
	return DefaultSection
}

// KnownCategory reports whether category has a dedicated template
// section. Used to choose between checklist-item and new-section
// recommendations.
func KnownCategory(category string) bool {
	_, ok := sectionByCategory[strings.ToLower(category)]
	return ok
}
