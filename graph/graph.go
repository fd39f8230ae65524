// Package graph holds the undirected simple graphs the reductions color,
// and a parser for the subset of the DOT format the benchmark graphs use.
package graph

import "github.com/emirpasic/gods/sets/linkedhashset"

// A VertexID identifies one vertex. IDs carry no meaning beyond identity
// and stable iteration order.
type VertexID string

// An Edge is an unordered pair of vertex identifiers.
type Edge struct {
	U, V VertexID
}

// A Graph is an undirected graph: an ordered set of vertices and a list of
// edges. Vertices iterate in insertion order, so formula construction over
// the same graph is deterministic. The graph records edges as given; the
// encoder is the place where self-loops and dangling endpoints are rejected.
type Graph struct {
	vertices *linkedhashset.Set
	edges    []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{vertices: linkedhashset.New()}
}

// FromParts builds a graph directly from already-validated parts. No
// deduplication or validation is performed.
func FromParts(vertices []VertexID, edges []Edge) *Graph {
	g := New()
	for _, v := range vertices {
		g.vertices.Add(v)
	}
	g.edges = append(g.edges, edges...)
	return g
}

// AddVertex adds a vertex. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(v VertexID) {
	g.vertices.Add(v)
}

// AddEdge adds an undirected edge, creating missing endpoints. A duplicate
// edge, in either orientation, is a no-op.
func (g *Graph) AddEdge(u, v VertexID) {
	g.vertices.Add(u)
	g.vertices.Add(v)
	for _, e := range g.edges {
		if (e.U == u && e.V == v) || (e.U == v && e.V == u) {
			return
		}
	}
	g.edges = append(g.edges, Edge{U: u, V: v})
}

// Has reports whether v is a vertex of the graph.
func (g *Graph) Has(v VertexID) bool {
	return g.vertices.Contains(v)
}

// Vertices returns the vertices in insertion order.
func (g *Graph) Vertices() []VertexID {
	vals := g.vertices.Values()
	res := make([]VertexID, len(vals))
	for i, v := range vals {
		res[i] = v.(VertexID)
	}
	return res
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	res := make([]Edge, len(g.edges))
	copy(res, g.edges)
	return res
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.vertices.Size() }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }
