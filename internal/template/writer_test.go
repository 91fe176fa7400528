package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verdex/internal/core/domain"
)

func TestApplyBacksUpAndReplaces(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "TEMPLATE.md")
	require.NoError(t, os.WriteFile(target, []byte("old content"), 0o644))

	w := NewWriter([]string{root})
	require.NoError(t, w.Apply(target, []byte("new content")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))

	backup, err := os.ReadFile(target + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(backup))
}

func TestApplyNewTargetWritesWithoutBackup(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "TEMPLATE.md")

	w := NewWriter([]string{root})
	require.NoError(t, w.Apply(target, []byte("fresh")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))

	_, err = os.Stat(target + BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestApplyRejectsPathOutsideRoots(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	target := filepath.Join(elsewhere, "TEMPLATE.md")

	w := NewWriter([]string{root})
	err := w.Apply(target, []byte("nope"))

	assert.ErrorIs(t, err, domain.ErrOutsideRoot)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyRejectsTraversalEscape(t *testing.T) {
	root := t.TempDir()
	w := NewWriter([]string{filepath.Join(root, "inner")})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "inner"), 0o755))

	err := w.Apply(filepath.Join(root, "inner", "..", "TEMPLATE.md"), []byte("nope"))
	assert.ErrorIs(t, err, domain.ErrOutsideRoot)
}

func TestApplyRejectsSymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	w := NewWriter([]string{root})
	err := w.Apply(filepath.Join(root, "link", "TEMPLATE.md"), []byte("nope"))

	assert.ErrorIs(t, err, domain.ErrOutsideRoot)
}

func TestApplySecondWriteRefreshesBackup(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "TEMPLATE.md")

	w := NewWriter([]string{root})
	require.NoError(t, w.Apply(target, []byte("v1")))
	require.NoError(t, w.Apply(target, []byte("v2")))
	require.NoError(t, w.Apply(target, []byte("v3")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "v3", string(got))

	backup, err := os.ReadFile(target + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(backup))
}
