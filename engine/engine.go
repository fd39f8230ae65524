// Package engine runs assembled coloring formulas on satisfiability
// backends. Two adapter families live here: external SMT engines driven
// over SMT-LIB v2 through a child process, and the native gophersat library
// fed through a finite-universe propositional grounding. Both satisfy the
// same Solver interface and report the same structured Outcome.
package engine

import (
	"context"

	"github.com/pkg/errors"

	"github.com/smtcolor/smtcolor/term"
)

// Status is the result of running one formula on one backend.
type Status byte

const (
	// Unknown means no result was produced; it only appears together with
	// an error.
	Unknown Status = iota
	// Sat means the formula is satisfiable: the graph is k-colorable.
	Sat
	// Unsat means the formula is unsatisfiable: the graph is not
	// k-colorable.
	Unsat
	// Timeout means the backend did not conclude within the deadline.
	// It is a first-class outcome, not an error.
	Timeout
	// Failed means the backend reported an internal failure. It is kept
	// distinct from Unsat: an engine error must never read as "not
	// colorable".
	Failed
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Timeout:
		return "TIMEOUT"
	case Failed:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// An Outcome is the structured result of one solve call.
type Outcome struct {
	Status Status
	// Model maps each vertex to its decoded color value in [0, k-1].
	// Present only when Status is Sat and a model was requested.
	Model map[string]int
	// Reason carries the backend's message when Status is Failed.
	Reason string
}

// Options control one solve call.
type Options struct {
	// WantModel asks the backend to extract a per-vertex color assignment
	// when the formula is satisfiable.
	WantModel bool
}

// A Solver decides one formula. Implementations must honor context
// cancellation by returning a Timeout outcome instead of blocking, and must
// not retain the formula or any engine handle after returning.
type Solver interface {
	Name() string
	Solve(ctx context.Context, f *term.Formula, opts Options) (Outcome, error)
}

// New returns the adapter for the named backend. The name must be one of
// the capability-matrix names; the reduction layer validates theory support
// before this is called.
func New(name string) (Solver, error) {
	if name == "gopher" {
		return &gopherSolver{}, nil
	}
	if cfg, ok := processEngines[name]; ok {
		return &processSolver{name: name, cfg: cfg}, nil
	}
	return nil, errors.Errorf("unknown solver %q", name)
}
