// Package scanner discovers candidate verdict documents under declared
// repository roots. Traversal is an explicit worklist rather than
// recursion, bounded by a fixed maximum depth, with symlink-cycle
// detection and canonical containment checks on every yielded path.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/verdex/internal/core/ports/driven"
	"github.com/custodia-labs/verdex/internal/logger"
)

// MaxDepth bounds traversal depth even in cycle-free trees.
const MaxDepth = 32

// prunedDirs are well-known non-source directories never descended into.
var prunedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"__pycache__":  true,
}

// Ensure Scanner implements the interface.
var _ driven.Scanner = (*Scanner)(nil)

// Scanner walks repository roots for verdict documents.
type Scanner struct {
	maxDepth int
}

// New creates a scanner with the default depth bound.
func New() *Scanner {
	return &Scanner{maxDepth: MaxDepth}
}

// Scan walks root depth-first and streams candidates. Both channels
// close when the walk completes. Directory read errors degrade to
// "nothing from this subtree"; only a failure to resolve the root
// itself is fatal.
func (s *Scanner) Scan(ctx context.Context, root string) (<-chan driven.Candidate, <-chan error) {
	candidates := make(chan driven.Candidate)
	errs := make(chan error, 1)

	go func() {
		defer close(candidates)
		defer close(errs)

		canonicalRoot, err := canonicalize(root)
		if err != nil {
			errs <- err
			return
		}

		s.walk(ctx, root, canonicalRoot, candidates)
	}()

	return candidates, errs
}

// workItem is one pending directory on the traversal worklist.
type workItem struct {
	path  string
	depth int
}

// walk runs the worklist traversal for one root. The visited set is
// per scan and keyed by canonicalized directory identity; revisiting
// is the sole cycle defense and terminates self- or mutually-
// referential symlink chains.
func (s *Scanner) walk(ctx context.Context, root, canonicalRoot string, out chan<- driven.Candidate) {
	visited := make(map[string]bool)
	stack := []workItem{{path: root, depth: 0}}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return
		}

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		canonical, err := canonicalize(item.path)
		if err != nil {
			logger.Warn("Skipping unresolvable directory %s: %v", item.path, err)
			continue
		}
		if visited[canonical] {
			logger.Warn("Cycle detected at %s, skipping", item.path)
			continue
		}
		visited[canonical] = true

		entries, err := os.ReadDir(item.path)
		if err != nil {
			logger.Warn("Skipping unreadable directory %s: %v", item.path, err)
			continue
		}

		// Entries are pushed in reverse so the scan yields in
		// lexical directory order.
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			path := filepath.Join(item.path, entry.Name())

			if isDir(entry, path) {
				if skipDir(entry.Name()) {
					continue
				}
				if item.depth+1 > s.maxDepth {
					logger.Warn("Max depth exceeded at %s, skipping", path)
					continue
				}
				stack = append(stack, workItem{path: path, depth: item.depth + 1})
				continue
			}

			if !IsCandidate(entry.Name()) {
				continue
			}
			if !s.yieldable(path, canonicalRoot) {
				continue
			}

			select {
			case out <- driven.Candidate{Root: root, Path: path}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// yieldable runs the canonical containment check for one candidate.
// Paths resolving outside their scan root are rejected and logged,
// never yielded, even when the underlying access would succeed.
func (s *Scanner) yieldable(path, canonicalRoot string) bool {
	resolved, err := canonicalize(path)
	if err != nil {
		logger.Warn("Skipping unresolvable candidate %s: %v", path, err)
		return false
	}
	if !contained(resolved, canonicalRoot) {
		logger.Warn("Rejecting %s: resolves outside scan root %s", path, canonicalRoot)
		return false
	}
	return true
}

// isDir reports whether entry is a directory, following symlinks.
// Symlinked directories must be walked so the visited set can catch
// cycles; DirEntry.IsDir alone reports false for them.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsCandidate reports whether a file name looks like a verdict
// document: a markdown file whose name carries the verdict token.
func IsCandidate(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") && strings.Contains(lower, "verdict")
}

// skipDir prunes hidden directories and the fixed non-source set.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || prunedDirs[name]
}

// canonicalize resolves symlinks and returns an absolute path.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// contained reports whether path sits at or below root. Both arguments
// must already be canonical.
func contained(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
