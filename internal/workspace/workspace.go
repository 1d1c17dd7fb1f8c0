// Package workspace defines the mutable workspace collaborator the
// synchronizer merges project graphs into. The downstream analysis engine
// supplies the real implementation; internal/inmemoryworkspace provides
// the in-process one.
package workspace

import (
	"github.com/google/uuid"

	"github.com/vk/buildgraphgo/internal/graph"
)

// Workspace exposes the target graph as read snapshots plus an atomic
// propose-then-apply mutation. Implementations must be safe for concurrent
// use: multiple synchronizer calls for different projects may run in
// parallel.
type Workspace interface {
	// CurrentGraph returns a snapshot of the current graph. The snapshot
	// is the caller's to mutate and propose back via TryApply.
	CurrentGraph() *graph.Graph

	// TryApply commits a proposed graph. It reports false when the
	// proposal conflicts with a concurrent change, in which case the
	// workspace is left untouched.
	TryApply(proposed *graph.Graph) bool

	// NodeByPath looks a committed node up by project file path.
	NodeByPath(path string) (*graph.Node, bool)

	// NodeByID looks a committed node up by project identity.
	NodeByID(id uuid.UUID) (*graph.Node, bool)
}
