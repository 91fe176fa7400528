package scanner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/verdex/internal/core/ports/driven"
	"github.com/custodia-labs/verdex/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.Watcher = (*Watcher)(nil)

// Watcher streams verdict candidates as they appear or change under
// the declared roots. Filtering and containment follow the same rules
// as Scan.
type Watcher struct{}

// NewWatcher creates a filesystem watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch blocks until ctx is cancelled. Newly created directories are
// added to the watch; created or written candidate files pass the
// containment check before being sent.
func (w *Watcher) Watch(ctx context.Context, roots []string) (<-chan driven.Candidate, <-chan error) {
	candidates := make(chan driven.Candidate)
	errs := make(chan error, 1)

	go func() {
		defer close(candidates)
		defer close(errs)

		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			errs <- err
			return
		}
		defer fsw.Close()

		// rootByDir maps each watched directory to its canonical root
		// for containment checks on events.
		rootByDir := make(map[string]string)
		for _, root := range roots {
			canonicalRoot, err := canonicalize(root)
			if err != nil {
				logger.Warn("Skipping unwatchable root %s: %v", root, err)
				continue
			}
			addWatchTree(fsw, root, canonicalRoot, rootByDir)
		}

		for {
			select {
			case <-ctx.Done():
				return

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", err)

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}

				canonicalRoot, known := rootByDir[filepath.Dir(event.Name)]
				if !known {
					continue
				}

				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if event.Has(fsnotify.Create) && !skipDir(filepath.Base(event.Name)) {
						addWatchTree(fsw, event.Name, canonicalRoot, rootByDir)
					}
					continue
				}

				if !IsCandidate(filepath.Base(event.Name)) {
					continue
				}
				resolved, err := canonicalize(event.Name)
				if err != nil || !contained(resolved, canonicalRoot) {
					logger.Warn("Rejecting %s: resolves outside watch root", event.Name)
					continue
				}

				select {
				case candidates <- driven.Candidate{Root: canonicalRoot, Path: event.Name}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return candidates, errs
}

// addWatchTree registers dir and its subdirectories with the watcher,
// honouring the scanner's prune rules and depth bound.
func addWatchTree(fsw *fsnotify.Watcher, dir, canonicalRoot string, rootByDir map[string]string) {
	stack := []workItem{{path: dir, depth: 0}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fsw.Add(item.path); err != nil {
			logger.Warn("Cannot watch %s: %v", item.path, err)
			continue
		}
		rootByDir[item.path] = canonicalRoot

		entries, err := os.ReadDir(item.path)
		if err != nil {
			logger.Warn("Skipping unreadable directory %s: %v", item.path, err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || skipDir(entry.Name()) || item.depth+1 > MaxDepth {
				continue
			}
			stack = append(stack, workItem{path: filepath.Join(item.path, entry.Name()), depth: item.depth + 1})
		}
	}
}
