package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddVertexIdempotent(t *testing.T) {
	g := New()
	g.AddVertex("a")
	g.AddVertex("a")
	assert.Equal(t, 1, g.Order())
	assert.True(t, g.Has("a"))
	assert.False(t, g.Has("b"))
}

func TestAddEdgeCreatesEndpoints(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	assert.Equal(t, 2, g.Order())
	assert.Equal(t, 1, g.Size())
	assert.True(t, g.Has("a"))
	assert.True(t, g.Has("b"))
}

func TestAddEdgeDeduplicatesBothOrientations(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	assert.Equal(t, 1, g.Size())
	assert.Equal(t, []Edge{{U: "a", V: "b"}}, g.Edges())
}

func TestVertexInsertionOrder(t *testing.T) {
	g := New()
	g.AddVertex("c")
	g.AddEdge("a", "b")
	g.AddVertex("a") // already present, order unchanged
	assert.Equal(t, []VertexID{"c", "a", "b"}, g.Vertices())
}

func TestSelfLoopIsRecorded(t *testing.T) {
	g := New()
	g.AddEdge("a", "a")
	assert.Equal(t, 1, g.Order())
	assert.Equal(t, []Edge{{U: "a", V: "a"}}, g.Edges())
}

func TestFromParts(t *testing.T) {
	g := FromParts(
		[]VertexID{"a", "b"},
		[]Edge{{U: "a", V: "b"}, {U: "b", V: "ghost"}},
	)
	assert.Equal(t, 2, g.Order())
	assert.Equal(t, 2, g.Size())
	assert.False(t, g.Has("ghost"))
}

func TestEdgesReturnsCopy(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	edges := g.Edges()
	edges[0] = Edge{U: "x", V: "y"}
	assert.Equal(t, []Edge{{U: "a", V: "b"}}, g.Edges())
}
