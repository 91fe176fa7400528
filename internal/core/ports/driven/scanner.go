package driven

import "context"

// Candidate is a discovered verdict document awaiting extraction.
type Candidate struct {
	// Root is the declared scan root that produced this candidate.
	Root string

	// Path is the candidate's absolute path within the root.
	Path string
}

// Scanner discovers candidate verdict documents under a declared root.
// The sequence is lazy and finite: traversal is depth-bounded, symlink
// cycles are skipped, and paths resolving outside the root are rejected
// before they are yielded.
type Scanner interface {
	// Scan walks root and streams candidates. Both channels close when
	// the walk completes. Per-directory errors are logged and skipped,
	// never sent; the errors channel carries only fatal setup failures.
	Scan(ctx context.Context, root string) (<-chan Candidate, <-chan error)
}

// Watcher streams candidates as they are created or modified under the
// declared roots. Used by long-running watch mode.
type Watcher interface {
	// Watch blocks until ctx is cancelled, sending each changed
	// candidate that passes the scanner's filter and containment rules.
	Watch(ctx context.Context, roots []string) (<-chan Candidate, <-chan error)
}
