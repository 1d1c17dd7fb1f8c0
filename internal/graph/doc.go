// Package graph holds the in-memory project graph model: nodes derived
// from build results and the directed reference edges between them.
//
// A Graph value is a snapshot. Mutation follows a propose-then-apply
// protocol: callers Clone the current snapshot, mutate the clone, and hand
// it back to the owning workspace, which accepts or rejects it atomically.
// A Graph is therefore not internally synchronized; the owning workspace
// provides the locking.
package graph
