// Package sqlite provides the SQLite-backed verdict store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It implements
// the VerdictStore driven port over a single database connection.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. The schema version marker is independent
// of the extractor version: the former drives migrations at open time,
// the latter drives record staleness.
//
// # Data Location
//
// By default, the database is stored at ~/.verdex/data/verdicts.db
//
// # Thread Safety
//
// All operations are thread-safe for concurrent readers. Concurrent
// writers for the same document path require external mutual exclusion;
// the ingest pipeline is single-writer.
package sqlite
