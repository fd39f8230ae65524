package reduction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/graph"
)

func triangle() *graph.Graph {
	g := graph.New()
	g.AddEdge("1", "2")
	g.AddEdge("2", "3")
	g.AddEdge("3", "1")
	return g
}

func mustColorer(t *testing.T, th colorer.Theory, k int) colorer.Colorer {
	t.Helper()
	d, err := colorer.NewDescriptor(th, k)
	require.NoError(t, err)
	return colorer.New(d)
}

func TestEncodeTriangleLIA(t *testing.T) {
	f, err := Encode(triangle(), mustColorer(t, colorer.LIA, 3))
	require.NoError(t, err)

	assert.Equal(t, "LIA", f.Theory)
	assert.Equal(t, "QF_LIA", f.Logic)
	assert.Equal(t, 3, f.K)

	// One domain clause per vertex, one disequality per edge.
	require.Len(t, f.Asserts, 6)
	assert.Equal(t, []string{
		"(and (>= v_1 0) (<= v_1 2))",
		"(and (>= v_2 0) (<= v_2 2))",
		"(and (>= v_3 0) (<= v_3 2))",
		"(distinct v_1 v_2)",
		"(distinct v_2 v_3)",
		"(distinct v_3 v_1)",
	}, f.Assertions())

	require.Len(t, f.Vertices, 3)
	assert.Equal(t, "1", f.Vertices[0].Vertex)
	assert.Equal(t, "v_1", f.Vertices[0].Term.String())
}

func TestEncodeGlobalsComeFirst(t *testing.T) {
	f, err := Encode(triangle(), mustColorer(t, colorer.AUF, 3))
	require.NoError(t, err)
	// 3 pairwise color disequalities, then 3 vertices x 4 chain clauses,
	// then 3 edge disequalities.
	require.Len(t, f.Asserts, 18)
	assert.Equal(t, "(distinct c_1 c_2)", f.Asserts[0].String())
	assert.Equal(t, "(distinct v_3 v_1)", f.Asserts[17].String())
}

func TestEncodeDeterministic(t *testing.T) {
	for _, th := range colorer.Theories() {
		f1, err := Encode(triangle(), mustColorer(t, th, 4))
		require.NoError(t, err, "theory %s", th)
		f2, err := Encode(triangle(), mustColorer(t, th, 4))
		require.NoError(t, err, "theory %s", th)
		assert.Equal(t, f1.Script(true), f2.Script(true), "theory %s", th)
	}
}

func TestEncodeRejectsSelfLoop(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "a")
	for _, th := range colorer.Theories() {
		_, err := Encode(g, mustColorer(t, th, 4))
		var mge *MalformedGraphError
		require.ErrorAs(t, err, &mge, "theory %s", th)
		assert.Equal(t, "self-loop", mge.Reason, "theory %s", th)
	}
}

func TestEncodeRejectsDanglingEndpoint(t *testing.T) {
	g := graph.FromParts(
		[]graph.VertexID{"a", "b"},
		[]graph.Edge{{U: "a", V: "b"}, {U: "b", V: "ghost"}},
	)
	_, err := Encode(g, mustColorer(t, colorer.LIA, 3))
	var mge *MalformedGraphError
	require.ErrorAs(t, err, &mge)
	assert.Equal(t, "endpoint not in vertex set", mge.Reason)
	assert.Equal(t, graph.Edge{U: "b", V: "ghost"}, mge.Edge)
}

func TestEncodeEmptyGraph(t *testing.T) {
	f, err := Encode(graph.New(), mustColorer(t, colorer.LIA, 3))
	require.NoError(t, err)
	assert.Empty(t, f.Asserts)
	assert.Empty(t, f.Vertices)
}
