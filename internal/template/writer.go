// Package template applies review-template edits on disk. Writes are
// atomic with a backup of the prior content, and target paths must
// pass a containment check against the allowed roots before anything
// is touched.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/verdex/internal/core/domain"
)

// BackupSuffix is appended to the target path for the pre-write backup.
const BackupSuffix = ".bak"

// Writer mutates template files under a fixed set of allowed roots.
type Writer struct {
	allowedRoots []string
}

// NewWriter creates a writer confined to the given roots.
func NewWriter(allowedRoots []string) *Writer {
	return &Writer{allowedRoots: allowedRoots}
}

// Apply replaces the content of path. Existing content is first copied
// to path+".bak"; a target that does not yet exist gets no backup. The
// write goes through a temp file and rename, so a failure partway
// leaves the original intact. Paths resolving outside every allowed
// root fail with domain.ErrOutsideRoot before any filesystem mutation.
func (w *Writer) Apply(path string, content []byte) error {
	if err := w.checkContainment(path); err != nil {
		return err
	}

	prior, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := os.WriteFile(path+BackupSuffix, prior, 0o644); err != nil {
			return fmt.Errorf("writing backup: %w", err)
		}
	case os.IsNotExist(err):
		// New target: no backup to take.
	default:
		return fmt.Errorf("reading current content: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing target: %w", err)
	}
	return nil
}

// checkContainment verifies that path resolves inside an allowed root.
// The parent directory is canonicalized so symlinked segments cannot
// smuggle the target outside; the leaf itself may not exist yet.
func (w *Writer) checkContainment(path string) error {
	dir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}
	resolved := filepath.Join(dir, filepath.Base(path))

	for _, root := range w.allowedRoots {
		canonicalRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			continue
		}
		if resolved == canonicalRoot ||
			strings.HasPrefix(resolved, canonicalRoot+string(filepath.Separator)) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrOutsideRoot, path)
}
