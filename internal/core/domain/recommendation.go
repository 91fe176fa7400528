package domain

// RecommendationKind describes how a suggestion edits the review template.
type RecommendationKind string

const (
	// RecommendAddSection proposes a new template section.
	RecommendAddSection RecommendationKind = "add_section"

	// RecommendAddChecklistItem proposes an item in an existing section.
	RecommendAddChecklistItem RecommendationKind = "add_checklist_item"
)

// Recommendation is one proposed review-template improvement.
// Recommendations are ephemeral: regenerated per invocation, never stored.
type Recommendation struct {
	// Kind is the type of template edit proposed.
	Kind RecommendationKind

	// Section is the target template section.
	Section string

	// Category is the issue category that motivated the suggestion.
	Category string

	// Content is the suggestion text, embedding category and count.
	Content string

	// Count is the number of stored issues that motivated the suggestion.
	Count int
}
