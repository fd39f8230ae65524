package reduction

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/smtcolor/smtcolor/graph"
)

// ErrUnsupportedPair reports a (solver, theory) combination outside the
// capability matrix. It fails before any construction and is never retried.
var ErrUnsupportedPair = errors.New("solver does not implement theory")

// A MalformedGraphError reports a graph the encoder refuses to encode:
// a self-loop, or an edge referencing a vertex absent from the vertex set.
type MalformedGraphError struct {
	Edge   graph.Edge
	Reason string
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("malformed graph: edge {%s, %s}: %s", e.Edge.U, e.Edge.V, e.Reason)
}
