// Package domain defines the core business entities for Verdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - VerdictRecord: A structured extraction of a review document
//   - BlockingIssue: A tiered, categorised reviewer finding
//   - AggregateStats: Derived counts over all stored records
//   - Recommendation: A proposed review-template improvement
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
