package graph

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(path string) *Node {
	return &Node{ID: uuid.New(), Path: path}
}

func TestAddNode(t *testing.T) {
	g := New()
	a := newTestNode("a.csproj")
	require.NoError(t, g.AddNode(a))
	assert.Equal(t, 1, g.Len())

	err := g.AddNode(a)
	assert.ErrorContains(t, err, "already present")

	got, ok := g.NodeByPath("./a.csproj")
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)
}

func TestAddNode_SamePathNewestWins(t *testing.T) {
	g := New()
	first := newTestNode("a.csproj")
	second := newTestNode("a.csproj")
	require.NoError(t, g.AddNode(first))
	require.NoError(t, g.AddNode(second))

	assert.Equal(t, 2, g.Len())
	got, ok := g.NodeByPath("a.csproj")
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestAddEdge(t *testing.T) {
	g := New()
	a := newTestNode("a.csproj")
	b := newTestNode("b.csproj")
	require.NoError(t, g.AddNode(a))
	require.NoError(t, g.AddNode(b))

	require.NoError(t, g.AddEdge(a.ID, b.ID))
	assert.Equal(t, 1, g.EdgeCount())
	assert.True(t, a.HasReference(b.ID))
	assert.False(t, b.HasReference(a.ID))

	// Duplicate edges collapse.
	require.NoError(t, g.AddEdge(a.ID, b.ID))
	assert.Equal(t, 1, g.EdgeCount())

	assert.ErrorContains(t, g.AddEdge(a.ID, a.ID), "self-referential")
	assert.ErrorContains(t, g.AddEdge(uuid.New(), b.ID), "source node not found")
	assert.ErrorContains(t, g.AddEdge(a.ID, uuid.New()), "destination node not found")
}

func TestClone_IsIndependent(t *testing.T) {
	g := New()
	a := newTestNode("a.csproj")
	b := newTestNode("b.csproj")
	require.NoError(t, g.AddNode(a))
	require.NoError(t, g.AddNode(b))
	require.NoError(t, g.AddEdge(a.ID, b.ID))

	c := g.Clone()
	require.NoError(t, c.AddNode(newTestNode("c.csproj")))
	clonedA, ok := c.NodeByID(a.ID)
	require.True(t, ok)
	clonedA.References = nil

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.EdgeCount(), "mutating the clone must not touch the original")
	assert.Equal(t, 3, c.Len())
}
