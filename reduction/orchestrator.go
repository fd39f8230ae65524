package reduction

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/engine"
	"github.com/smtcolor/smtcolor/graph"
)

// ErrUnknownSolver reports a solver name outside the capability matrix.
var ErrUnknownSolver = errors.New("unknown solver")

// A Request describes one reduction: which graph, how many colors, which
// backend, which theory, and what to report back.
type Request struct {
	Graph  *graph.Graph
	K      int
	Solver string
	Theory colorer.Theory
	// Timeout bounds the solve phase only; zero means no limit.
	Timeout time.Duration
	// WantModel asks for a per-vertex coloring when satisfiable.
	WantModel bool
	// WantFormula asks for the assertion text in the report.
	WantFormula bool
	// ReadTime is how long the caller spent reading the graph; it is
	// reported alongside the core timings but never folded into them.
	ReadTime time.Duration
}

// Timings are the four phase durations of one reduction. Total is
// Reduction + Solve: read cost is not part of the reduction being
// benchmarked. On timeout, Solve and Total are zero; the only fact worth
// reporting is that the deadline was reached.
type Timings struct {
	Read      time.Duration
	Reduction time.Duration
	Solve     time.Duration
	Total     time.Duration
}

// A Report is the full result of one reduction run.
type Report struct {
	Outcome engine.Outcome
	// Formula holds the assertion text when the request asked for it.
	Formula []string
	// Order and Size are the graph's vertex and edge counts.
	Order, Size int
	Timings     Timings
}

// An Orchestrator coordinates the reduce-then-solve pipeline. The zero
// value is not usable; call NewOrchestrator.
type Orchestrator struct {
	log *slog.Logger
	// newSolver is the adapter factory, replaceable in tests.
	newSolver func(name string) (engine.Solver, error)
}

// NewOrchestrator returns an orchestrator logging to the given logger.
// A nil logger means slog's default.
func NewOrchestrator(log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{log: log, newSolver: engine.New}
}

// Run validates the request, builds the formula, solves it and reports the
// outcome with phase timings. Configuration failures (unknown solver,
// unsupported pair, bad k) happen before anything is built. An engine
// failure is returned as both a Failed outcome and an error; it is never
// folded into UNSAT.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	if !KnownSolver(req.Solver) {
		return nil, errors.Wrapf(ErrUnknownSolver, "%q", req.Solver)
	}
	if !Supports(req.Solver, req.Theory) {
		return nil, errors.Wrapf(ErrUnsupportedPair, "%s does not implement %s", req.Solver, req.Theory)
	}
	desc, err := colorer.NewDescriptor(req.Theory, req.K)
	if err != nil {
		return nil, err
	}

	startReduction := time.Now()
	f, err := Encode(req.Graph, colorer.New(desc))
	if err != nil {
		return nil, err
	}
	reductionTime := time.Since(startReduction)
	o.log.Debug("formula built",
		"theory", req.Theory, "k", req.K,
		"assertions", len(f.Asserts), "duration", reductionTime)

	solver, err := o.newSolver(req.Solver)
	if err != nil {
		return nil, err
	}
	solveCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	report := &Report{
		Order: req.Graph.Order(),
		Size:  req.Graph.Size(),
	}
	if req.WantFormula {
		report.Formula = f.Assertions()
	}
	report.Timings.Read = req.ReadTime
	report.Timings.Reduction = reductionTime

	startSolve := time.Now()
	outcome, err := solver.Solve(solveCtx, f, engine.Options{WantModel: req.WantModel})
	report.Outcome = outcome
	if err != nil {
		o.log.Error("engine failure", "solver", req.Solver, "err", err)
		return report, errors.Wrapf(err, "solver %s", req.Solver)
	}
	if outcome.Status != engine.Timeout {
		report.Timings.Solve = time.Since(startSolve)
		report.Timings.Total = report.Timings.Reduction + report.Timings.Solve
	}
	o.log.Debug("solve finished",
		"solver", req.Solver, "status", outcome.Status, "duration", report.Timings.Solve)
	return report, nil
}
