// Package inmemoryworkspace is the in-process Workspace implementation:
// a versioned graph guarded by a mutex, with optimistic concurrency on
// apply.
package inmemoryworkspace

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vk/buildgraphgo/internal/graph"
)

// Workspace holds the authoritative graph. Snapshots carry the version
// they were derived from; a proposal is accepted only if no other commit
// happened in between, which gives the synchronizer its all-or-nothing
// guarantee without a cross-call lock.
type Workspace struct {
	mu      sync.RWMutex
	current *graph.Graph
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{current: graph.New()}
}

// CurrentGraph returns an independent snapshot of the current graph.
func (w *Workspace) CurrentGraph() *graph.Graph {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Clone()
}

// TryApply commits a proposed graph if it was derived from the current
// version. On success the proposal becomes the new current graph (the
// workspace clones it, so the caller keeps ownership of its copy).
func (w *Workspace) TryApply(proposed *graph.Graph) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if proposed.Version != w.current.Version {
		return false
	}
	next := proposed.Clone()
	next.Version = w.current.Version + 1
	w.current = next
	return true
}

// NodeByPath looks a committed node up by project file path.
func (w *Workspace) NodeByPath(path string) (*graph.Node, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n, ok := w.current.NodeByPath(path)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// NodeByID looks a committed node up by project identity.
func (w *Workspace) NodeByID(id uuid.UUID) (*graph.Node, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n, ok := w.current.NodeByID(id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}
