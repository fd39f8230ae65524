// Package reduction assembles complete coloring formulas out of a graph and
// a theory colorer, and orchestrates the reduce-then-solve pipeline with its
// phase timings. The constraint topology here is theory-agnostic: one domain
// clause per vertex, one distinctness clause per edge. Everything that makes
// a given reduction hard for a given decision procedure lives inside the
// colorer it is handed.
package reduction

import (
	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/graph"
	"github.com/smtcolor/smtcolor/term"
)

// Encode builds the full formula for coloring g with c's theory: the
// colorer's global constraints, then every vertex's domain constraints in
// vertex order, then every edge's distinctness constraint in edge order.
// The iteration orders are the graph's stable orders, so the same inputs
// produce textually identical formulas.
//
// A self-loop or an edge endpoint missing from the vertex set is a contract
// violation by whoever built the graph; Encode surfaces it as a
// *MalformedGraphError rather than dropping the edge.
func Encode(g *graph.Graph, c colorer.Colorer) (*term.Formula, error) {
	for _, e := range g.Edges() {
		if e.U == e.V {
			return nil, &MalformedGraphError{Edge: e, Reason: "self-loop"}
		}
		if !g.Has(e.U) || !g.Has(e.V) {
			return nil, &MalformedGraphError{Edge: e, Reason: "endpoint not in vertex set"}
		}
	}

	d := c.Descriptor()
	var asserts []term.Term
	asserts = append(asserts, c.GlobalConstraints()...)

	vertices := g.Vertices()
	vertexTerms := make([]term.VertexTerm, 0, len(vertices))
	for _, v := range vertices {
		asserts = append(asserts, c.DomainConstraints(string(v))...)
		vertexTerms = append(vertexTerms, term.VertexTerm{
			Vertex: string(v),
			Term:   c.VertexTerm(string(v)),
		})
	}
	for _, e := range g.Edges() {
		asserts = append(asserts, c.Distinct(string(e.U), string(e.V)))
	}

	return &term.Formula{
		Theory:   string(d.Theory),
		Logic:    d.Theory.Logic(),
		K:        d.K,
		Mode:     c.Mode(),
		Decls:    c.Declarations(),
		Asserts:  asserts,
		Vertices: vertexTerms,
	}, nil
}
