package reduction

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/engine"
	"github.com/smtcolor/smtcolor/term"
)

// fakeSolver records the formula it was handed and plays back a canned
// outcome.
type fakeSolver struct {
	outcome engine.Outcome
	err     error

	gotFormula *term.Formula
	gotOpts    engine.Options
	deadline   bool
}

func (s *fakeSolver) Name() string { return "fake" }

func (s *fakeSolver) Solve(ctx context.Context, f *term.Formula, opts engine.Options) (engine.Outcome, error) {
	s.gotFormula = f
	s.gotOpts = opts
	_, s.deadline = ctx.Deadline()
	return s.outcome, s.err
}

func orchestratorWith(s engine.Solver) *Orchestrator {
	o := NewOrchestrator(nil)
	o.newSolver = func(string) (engine.Solver, error) { return s, nil }
	return o
}

func TestRunRejectsUnknownSolver(t *testing.T) {
	o := NewOrchestrator(nil)
	_, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 3, Solver: "cplex", Theory: colorer.LIA,
	})
	assert.True(t, errors.Is(err, ErrUnknownSolver))
}

func TestRunRejectsUnsupportedPair(t *testing.T) {
	o := NewOrchestrator(nil)
	_, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 3, Solver: "yices", Theory: colorer.NLA,
	})
	assert.True(t, errors.Is(err, ErrUnsupportedPair))
}

func TestRunRejectsBadColorCount(t *testing.T) {
	o := NewOrchestrator(nil)

	_, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 1, Solver: "gopher", Theory: colorer.LIA,
	})
	assert.True(t, errors.Is(err, colorer.ErrTooFewColors))

	_, err = o.Run(context.Background(), Request{
		Graph: triangle(), K: 5, Solver: "gopher", Theory: colorer.BV,
	})
	assert.True(t, errors.Is(err, colorer.ErrNotPowerOfTwo))
}

func TestRunReportsOutcomeAndTimings(t *testing.T) {
	fake := &fakeSolver{outcome: engine.Outcome{Status: engine.Sat}}
	o := orchestratorWith(fake)

	report, err := o.Run(context.Background(), Request{
		Graph:    triangle(),
		K:        3,
		Solver:   "gopher",
		Theory:   colorer.LIA,
		ReadTime: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, engine.Sat, report.Outcome.Status)
	assert.Equal(t, 3, report.Order)
	assert.Equal(t, 3, report.Size)
	assert.Equal(t, 5*time.Millisecond, report.Timings.Read)
	assert.Greater(t, report.Timings.Reduction, time.Duration(0))
	assert.Greater(t, report.Timings.Solve, time.Duration(0))
	assert.Equal(t, report.Timings.Reduction+report.Timings.Solve, report.Timings.Total)

	require.NotNil(t, fake.gotFormula)
	assert.Equal(t, "LIA", fake.gotFormula.Theory)
	assert.False(t, fake.deadline, "no timeout requested, no deadline expected")
}

func TestRunFormulaOnRequestOnly(t *testing.T) {
	fake := &fakeSolver{outcome: engine.Outcome{Status: engine.Unsat}}
	o := orchestratorWith(fake)
	req := Request{Graph: triangle(), K: 3, Solver: "gopher", Theory: colorer.LIA}

	report, err := o.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, report.Formula)

	req.WantFormula = true
	report, err = o.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.Formula, 6)
}

func TestRunForwardsModelRequest(t *testing.T) {
	fake := &fakeSolver{outcome: engine.Outcome{Status: engine.Sat}}
	o := orchestratorWith(fake)

	_, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 3, Solver: "gopher", Theory: colorer.LIA,
		WantModel: true,
	})
	require.NoError(t, err)
	assert.True(t, fake.gotOpts.WantModel)
}

func TestRunAppliesTimeout(t *testing.T) {
	fake := &fakeSolver{outcome: engine.Outcome{Status: engine.Sat}}
	o := orchestratorWith(fake)

	_, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 3, Solver: "gopher", Theory: colorer.LIA,
		Timeout: time.Minute,
	})
	require.NoError(t, err)
	assert.True(t, fake.deadline)
}

func TestRunTimeoutZeroesSolveTimings(t *testing.T) {
	fake := &fakeSolver{outcome: engine.Outcome{Status: engine.Timeout}}
	o := orchestratorWith(fake)

	report, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 3, Solver: "gopher", Theory: colorer.LIA,
		Timeout: time.Nanosecond,
	})
	require.NoError(t, err)
	assert.Equal(t, engine.Timeout, report.Outcome.Status)
	assert.Zero(t, report.Timings.Solve)
	assert.Zero(t, report.Timings.Total)
	assert.Greater(t, report.Timings.Reduction, time.Duration(0))
}

func TestRunEngineFailureKeepsReport(t *testing.T) {
	fake := &fakeSolver{
		outcome: engine.Outcome{Status: engine.Failed, Reason: "broken pipe"},
		err:     errors.New("broken pipe"),
	}
	o := orchestratorWith(fake)

	report, err := o.Run(context.Background(), Request{
		Graph: triangle(), K: 3, Solver: "gopher", Theory: colorer.LIA,
	})
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, engine.Failed, report.Outcome.Status)
	assert.Equal(t, "broken pipe", report.Outcome.Reason)
}
