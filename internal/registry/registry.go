// Package registry loads the declared repository roots from a TOML
// registry file. The file's historical shapes (a flat "roots" list, or
// a list or table under a "projects"/"repositories" key) form a small
// tagged union normalised to one canonical list at this boundary.
package registry

import (
	"context"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/verdex/internal/core/ports/driven"
	"github.com/custodia-labs/verdex/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.Registry = (*Registry)(nil)

// Registry reads repository roots from a TOML file on every call, so
// edits take effect without restarting.
type Registry struct {
	path string
}

// New creates a registry backed by the TOML file at path.
func New(path string) *Registry {
	return &Registry{path: path}
}

// Roots returns the declared roots that exist on disk. Unreadable or
// malformed registries degrade to an empty list with a logged error;
// declared roots missing from disk are skipped with a warning. Partial
// failure never aborts the batch, so the error is always nil.
func (r *Registry) Roots(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		logger.Warn("Cannot read registry %s: %v", r.path, err)
		return nil, nil
	}

	declared := parse(r.path, data)

	var roots []string
	for _, root := range declared {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			logger.Warn("Skipping missing repository root %s", root)
			continue
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// rootKeys are the accepted registry shapes, in lookup order.
var rootKeys = []string{"roots", "projects", "repositories"}

// parse normalises any accepted registry shape to a flat root list.
func parse(path string, data []byte) []string {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		logger.Warn("Malformed registry %s: %v", path, err)
		return nil
	}

	for _, key := range rootKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if roots := normalize(value); len(roots) > 0 {
			return roots
		}
	}
	return nil
}

// normalize flattens one registry value: either a list of path strings
// or a name-to-path table. Table entries come out sorted by name so
// the result is deterministic.
func normalize(value any) []string {
	switch v := value.(type) {
	case []any:
		var roots []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				roots = append(roots, s)
			}
		}
		return roots

	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		var roots []string
		for _, name := range names {
			if s, ok := v[name].(string); ok && s != "" {
				roots = append(roots, s)
			}
		}
		return roots

	default:
		return nil
	}
}
