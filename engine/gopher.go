package engine

import (
	"context"
	"strconv"

	"github.com/crillab/gophersat/bf"
	"github.com/pkg/errors"

	"github.com/smtcolor/smtcolor/term"
)

// gopherSolver is the native backend: formulas are grounded to
// propositional logic and decided in-process by the gophersat solver. It is
// the one backend covering all nine theories, set theories included.
//
// The library exposes no interrupt, so on timeout the solving goroutine is
// abandoned and its eventual result discarded; only the process adapters
// can hard-kill a running engine.
type gopherSolver struct{}

func (s *gopherSolver) Name() string { return "gopher" }

func (s *gopherSolver) Solve(ctx context.Context, f *term.Formula, opts Options) (Outcome, error) {
	gf, err := ground(f)
	if err != nil {
		return Outcome{Status: Failed, Reason: err.Error()},
			errors.Wrap(err, "could not ground formula")
	}

	type result struct {
		model map[string]bool
	}
	done := make(chan result, 1)
	go func() {
		done <- result{model: bf.Solve(gf)}
	}()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return Outcome{Status: Timeout}, nil
		}
		return Outcome{Status: Failed, Reason: ctx.Err().Error()}, ctx.Err()
	case res := <-done:
		if res.model == nil {
			return Outcome{Status: Unsat}, nil
		}
		o := Outcome{Status: Sat}
		if opts.WantModel {
			model, err := decodeGroundModel(f, res.model)
			if err != nil {
				return Outcome{Status: Failed, Reason: err.Error()}, err
			}
			o.Model = model
		}
		return o, nil
	}
}

// decodeGroundModel reads per-vertex colors back out of the boolean
// assignment. A variable the grounded formula never mentioned is simply
// unconstrained and reads as zero.
func decodeGroundModel(f *term.Formula, model map[string]bool) (map[string]int, error) {
	g := newGrounder(f.K)
	res := make(map[string]int, len(f.Vertices))
	canon := newCanonicalizer()
	for _, vt := range f.Vertices {
		sym, ok := vt.Term.(term.Symbol)
		if !ok {
			return nil, errors.Errorf("vertex %s: color representation is not a symbol", vt.Vertex)
		}
		var raw int
		switch s := sym.S.(type) {
		case term.SetSort:
			n, err := g.universeSize(s.Elem)
			if err != nil {
				return nil, err
			}
			for d := 0; d < n; d++ {
				if model[memberVarName(sym.Name, d)] {
					raw |= 1 << d
				}
			}
		default:
			n, err := g.universeSize(sym.S)
			if err != nil {
				return nil, err
			}
			for d := 0; d < n; d++ {
				if model[scalarVarName(sym.Name, d)] {
					raw = d
					break
				}
			}
		}
		if f.Mode == term.ModeCanonical {
			res[vt.Vertex] = canon.id(strconv.Itoa(raw))
		} else {
			res[vt.Vertex] = raw
		}
	}
	return res, nil
}
