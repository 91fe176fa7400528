package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/verdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VerdictStore = (*Store)(nil)

// Store is the SQLite-backed verdict store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.verdex/data/verdicts.db. The
// containing directory is created idempotently and all pending
// migrations run to completion before the store is usable.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".verdex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "verdicts.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations. The schema_migrations version
// marker is distinct from the extractor version; additive future steps
// drop in as numbered .up.sql files without changing this entry point.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// NeedsUpdate reports whether the document at path must be re-extracted.
// True when no record exists, the fingerprint changed, or the extractor
// version changed. A version bump alone forces reprocessing of
// byte-identical content.
func (s *Store) NeedsUpdate(ctx context.Context, path string, fp domain.Fingerprint, version string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT fingerprint, extractor_version FROM verdicts WHERE path = ?
	`, path)

	var storedFP, storedVersion string
	if err := row.Scan(&storedFP, &storedVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("scanning staleness row: %w", err)
	}

	return storedFP != string(fp) || storedVersion != version, nil
}

// Upsert stores or replaces the record for its path and returns the
// record ID. The record row and its whole issue list are replaced in
// one transaction, so concurrent readers of aggregates never observe a
// partial issue set.
func (s *Store) Upsert(ctx context.Context, record *domain.VerdictRecord) (string, error) {
	if record == nil || record.Path == "" {
		return "", domain.ErrInvalidInput
	}

	recsJSON, err := json.Marshal(record.Recommendations)
	if err != nil {
		return "", fmt.Errorf("marshalling recommendations: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()

	// Keep the existing ID and creation time on replacement.
	id := record.ID
	createdAt := now
	row := tx.QueryRowContext(ctx, "SELECT id, created_at FROM verdicts WHERE path = ?", record.Path)
	var existingID string
	var existingCreated time.Time
	switch err := row.Scan(&existingID, &existingCreated); {
	case err == nil:
		id = existingID
		createdAt = existingCreated
	case errors.Is(err, sql.ErrNoRows):
		if id == "" {
			id = uuid.New().String()
		}
	default:
		return "", fmt.Errorf("scanning existing record: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO verdicts
			(id, path, fingerprint, extractor_version, kind, decision, title, recommendations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			extractor_version = excluded.extractor_version,
			kind = excluded.kind,
			decision = excluded.decision,
			title = excluded.title,
			recommendations = excluded.recommendations,
			updated_at = excluded.updated_at
	`, id, record.Path, string(record.Fingerprint), record.ExtractorVersion,
		string(record.Kind), string(record.Decision), record.Title,
		string(recsJSON), createdAt, now)
	if err != nil {
		return "", fmt.Errorf("saving verdict: %w", err)
	}

	// Wholesale issue replace: discard prior issues, install new list.
	if _, err := tx.ExecContext(ctx, "DELETE FROM blocking_issues WHERE verdict_id = ?", id); err != nil {
		return "", fmt.Errorf("clearing issues: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blocking_issues (verdict_id, position, tier, category, description)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("preparing issue insert: %w", err)
	}
	defer stmt.Close()

	for i, issue := range record.Issues {
		if _, err := stmt.ExecContext(ctx, id, i, issue.Tier, issue.Category, issue.Description); err != nil {
			return "", fmt.Errorf("saving issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// Get retrieves the record for a document path.
func (s *Store) Get(ctx context.Context, path string) (*domain.VerdictRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, fingerprint, extractor_version, kind, decision, title, recommendations, created_at, updated_at
		FROM verdicts WHERE path = ?
	`, path)

	record, err := scanVerdict(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if record.Issues, err = s.issuesFor(ctx, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns all stored records with their issues, ordered by path.
func (s *Store) List(ctx context.Context) ([]domain.VerdictRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, fingerprint, extractor_version, kind, decision, title, recommendations, created_at, updated_at
		FROM verdicts ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying verdicts: %w", err)
	}
	defer rows.Close()

	var records []domain.VerdictRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanVerdict(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating verdicts: %w", err)
	}

	for i := range records {
		if records[i].Issues, err = s.issuesFor(ctx, records[i].ID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Delete removes the record for a document path; issues cascade.
func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM verdicts WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("deleting verdict: %w", err)
	}
	return nil
}

// PatternStats computes aggregate statistics over all records. An empty
// store yields zeroed counts and empty maps, never an error. Category
// order is count-descending with first-inserted winning ties, giving
// consumers a stable tiebreak order.
func (s *Store) PatternStats(ctx context.Context) (*domain.AggregateStats, error) {
	stats := &domain.AggregateStats{
		ByTier:     make(map[int]int),
		ByDecision: make(map[domain.Decision]int),
	}

	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM verdicts")
	if err := row.Scan(&stats.TotalRecords); err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	row = s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT verdict_id) FROM blocking_issues")
	if err := row.Scan(&stats.RecordsWithIssues); err != nil {
		return nil, fmt.Errorf("counting records with issues: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS n FROM blocking_issues
		GROUP BY category ORDER BY n DESC, MIN(id) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying category counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}

	tierRows, err := s.db.QueryContext(ctx, "SELECT tier, COUNT(*) FROM blocking_issues GROUP BY tier")
	if err != nil {
		return nil, fmt.Errorf("querying tier counts: %w", err)
	}
	defer tierRows.Close()
	for tierRows.Next() {
		var tier, count int
		if err := tierRows.Scan(&tier, &count); err != nil {
			return nil, fmt.Errorf("scanning tier count: %w", err)
		}
		stats.ByTier[tier] = count
	}
	if err := tierRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tier counts: %w", err)
	}

	decisionRows, err := s.db.QueryContext(ctx, "SELECT decision, COUNT(*) FROM verdicts GROUP BY decision")
	if err != nil {
		return nil, fmt.Errorf("querying decision counts: %w", err)
	}
	defer decisionRows.Close()
	for decisionRows.Next() {
		var decision string
		var count int
		if err := decisionRows.Scan(&decision, &count); err != nil {
			return nil, fmt.Errorf("scanning decision count: %w", err)
		}
		stats.ByDecision[domain.Decision(decision)] = count
	}
	if err := decisionRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decision counts: %w", err)
	}

	return stats, nil
}

// issuesFor loads a record's issues in document order.
func (s *Store) issuesFor(ctx context.Context, verdictID string) ([]domain.BlockingIssue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tier, category, description FROM blocking_issues
		WHERE verdict_id = ? ORDER BY position
	`, verdictID)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.BlockingIssue //nolint:prealloc // size unknown from query
	for rows.Next() {
		var issue domain.BlockingIssue
		if err := rows.Scan(&issue.Tier, &issue.Category, &issue.Description); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

// scanVerdict scans one verdict row via the given scan function.
func scanVerdict(scan func(dest ...any) error) (*domain.VerdictRecord, error) {
	var record domain.VerdictRecord
	var fingerprint, kind, decision, recsJSON string

	if err := scan(&record.ID, &record.Path, &fingerprint, &record.ExtractorVersion,
		&kind, &decision, &record.Title, &recsJSON,
		&record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}

	record.Fingerprint = domain.Fingerprint(fingerprint)
	record.Kind = domain.Kind(kind)
	record.Decision = domain.Decision(decision)

	if err := json.Unmarshal([]byte(recsJSON), &record.Recommendations); err != nil {
		return nil, fmt.Errorf("unmarshaling recommendations: %w", err)
	}
	return &record, nil
}
