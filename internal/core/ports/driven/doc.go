// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VerdictStore: Record persistence, staleness checks and aggregates
//   - Scanner: Candidate document discovery under declared roots
//   - Watcher: Live candidate discovery for watch mode
//   - Registry: Declared repository root resolution
//   - Extractor: Structured extraction of raw review documents
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, scanner, or extractor package
package driven
