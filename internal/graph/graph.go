package graph

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// Graph is one snapshot of the project graph.
type Graph struct {
	// Version identifies the workspace state this snapshot was derived
	// from. It is managed by the owning workspace; package graph only
	// carries it through Clone.
	Version uint64

	nodes  map[uuid.UUID]*Node
	byPath map[string]uuid.UUID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:  make(map[uuid.UUID]*Node),
		byPath: make(map[string]uuid.UUID),
	}
}

// AddNode inserts a node. Inserting the same identity twice is an error;
// inserting a second node for the same path is allowed (repeated insertions
// of one project produce independent nodes) and repoints the path index at
// the newest node.
func (g *Graph) AddNode(n *Node) error {
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("node already present: %s", n.ID)
	}
	g.nodes[n.ID] = n
	g.byPath[filepath.Clean(n.Path)] = n.ID
	return nil
}

// AddEdge adds a directed reference edge between two present nodes. Adding
// an existing edge is a no-op; a self-referential edge is an error.
func (g *Graph) AddEdge(fromID, toID uuid.UUID) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s", fromID)
	}
	from, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	if !from.HasReference(toID) {
		from.References = append(from.References, toID)
	}
	return nil
}

// NodeByID looks a node up by project identity.
func (g *Graph) NodeByID(id uuid.UUID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeByPath looks a node up by cleaned project file path. When the same
// path was inserted more than once, the newest node wins.
func (g *Graph) NodeByPath(path string) (*Node, bool) {
	id, ok := g.byPath[filepath.Clean(path)]
	if !ok {
		return nil, false
	}
	return g.nodes[id], true
}

// Nodes returns all nodes in unspecified order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the total number of reference edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.References)
	}
	return total
}

// DocumentCount returns the total number of documents across all nodes.
func (g *Graph) DocumentCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.Documents)
	}
	return total
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Version: g.Version,
		nodes:   make(map[uuid.UUID]*Node, len(g.nodes)),
		byPath:  make(map[string]uuid.UUID, len(g.byPath)),
	}
	for id, n := range g.nodes {
		c.nodes[id] = n.Clone()
	}
	for path, id := range g.byPath {
		c.byPath[path] = id
	}
	return c
}
