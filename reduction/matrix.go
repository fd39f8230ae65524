package reduction

import "github.com/smtcolor/smtcolor/colorer"

// The capability matrix is part of the public contract: not every engine
// implements every theory, and an unsupported pair must fail before any
// formula is built. The native gopher backend covers all nine theories,
// including the set theories no external engine in the matrix accepts.
var capability = map[string][]colorer.Theory{
	"mathsat":   {colorer.LIA, colorer.AUF, colorer.AINT, colorer.ABV, colorer.BV},
	"z3":        {colorer.LIA, colorer.NLA, colorer.AUF, colorer.AINT, colorer.ABV, colorer.BV},
	"yices":     {colorer.LIA, colorer.BV},
	"boolector": {colorer.ABV, colorer.BV},
	"gopher":    colorer.Theories(),
}

// Solvers lists the known solver names, in a fixed order.
func Solvers() []string {
	return []string{"mathsat", "z3", "yices", "boolector", "gopher"}
}

// KnownSolver reports whether name is in the capability matrix.
func KnownSolver(name string) bool {
	_, ok := capability[name]
	return ok
}

// Supports reports whether the named solver implements the theory.
func Supports(solver string, t colorer.Theory) bool {
	for _, th := range capability[solver] {
		if th == t {
			return true
		}
	}
	return false
}
