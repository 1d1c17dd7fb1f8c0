package syncer

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ReferenceCache maps project identity to that project's most recently
// observed project-reference paths. It is injected into the syncer rather
// than held as process-global state, so independent graphs in one process
// stay isolated.
//
// The cache is safe for concurrent use by parallel insertions. Staleness
// across two different keys during one edge-discovery scan is acceptable:
// edges are only ever added, so a missed edge is narrowed (not eliminated)
// by overwriting the entry before discovery runs in the same call.
type ReferenceCache struct {
	mu   sync.RWMutex
	refs map[uuid.UUID][]string
}

// NewReferenceCache returns an empty cache.
func NewReferenceCache() *ReferenceCache {
	return &ReferenceCache{refs: make(map[uuid.UUID][]string)}
}

// Put overwrites the reference list for a project identity. The previous
// list, if any, is discarded — the cache stores only the most recent one.
func (c *ReferenceCache) Put(id uuid.UUID, referencePaths []string) {
	cleaned := make([]string, 0, len(referencePaths))
	for _, p := range referencePaths {
		cleaned = append(cleaned, filepath.Clean(p))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs[id] = cleaned
}

// Contains reports whether the cached reference list for id names the
// given project path. A missing cache entry (project never added) is an
// expected miss, not an error.
func (c *ReferenceCache) Contains(id uuid.UUID, projectPath string) bool {
	projectPath = filepath.Clean(projectPath)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.refs[id] {
		if p == projectPath {
			return true
		}
	}
	return false
}

// Get returns a copy of the cached reference list for a project identity.
func (c *ReferenceCache) Get(id uuid.UUID) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	refs, ok := c.refs[id]
	if !ok {
		return nil, false
	}
	return append([]string(nil), refs...), true
}
