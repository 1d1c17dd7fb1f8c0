// Package syncer converts one-at-a-time build results into a consistent,
// reference-linked project graph inside a target workspace.
//
// Each AddResult call runs one insertion pass: resolve the source dialect,
// build the graph node (documents, metadata references, compiler options),
// overwrite the reference cache entry, discover edges in both directions,
// commit atomically, and optionally recurse into referenced projects that
// are not in the workspace yet.
//
// Edge direction rules: at insertion time the new node receives outgoing
// edges only to projects already present (path lookup), and every
// already-present node whose cached reference list names the new node's
// path receives an outgoing edge to it. Edges are only ever added, never
// retracted.
package syncer
