package engine

import (
	"fmt"

	"github.com/crillab/gophersat/bf"

	"github.com/smtcolor/smtcolor/term"
)

// The native backend cannot consume sorted terms directly, so formulas are
// grounded first: every sort is assigned a finite universe and every symbol
// becomes a one-hot vector of boolean variables over that universe. This is
// sound and complete for the formulas the colorers emit: every atom is an
// equality, a store/select, a bounded-range inequality, or a
// product-equals-zero over variables whose domain constraints already
// confine them, so a model inside the universe injects unchanged into the
// unbounded theory, and a proper k-coloring always yields one (k colors, k
// index terms, 2^w bit-vector values).
//
// Universe sizes: Int and uninterpreted sorts get k values, BitVec(w) gets
// 2^w. Sets are characteristic vectors over their element universe.
//
// The grounded output is kept in clause form: every derived proposition (a
// store cell's value, a select result, a membership bit, a compound
// constraint) is materialized as a definitional variable fixed by its own
// equivalence clauses, so the solver receives a flat conjunction of
// disjunctions of literals and nothing deeper.

// A plit is a propositional literal: a possibly negated variable, or a
// constant when the name is empty.
type plit struct {
	name string
	neg  bool
}

var (
	litTrue  = plit{}
	litFalse = plit{neg: true}
)

func (l plit) not() plit { return plit{name: l.name, neg: !l.neg} }

func (l plit) formula() bf.Formula {
	if l.name == "" {
		if l.neg {
			return bf.False
		}
		return bf.True
	}
	if l.neg {
		return bf.Not(bf.Var(l.name))
	}
	return bf.Var(l.name)
}

type grounder struct {
	k    int
	aux  int
	syms map[string]*groundVal
	// clauses holds the definitional constraints, one disjunction of
	// literals per entry.
	clauses []bf.Formula
	// well holds the one-hot constraints for every materialized symbol.
	well []bf.Formula
}

// A groundVal is the finite semantics of one term: exactly one of the
// three fields is set, matching the term's sort family.
type groundVal struct {
	vals  map[int]plit // scalar: literal for "term = d" per value d
	cells []*groundVal // array: scalar value per index universe point
	chars []plit       // set: literal for "d ∈ term" per element d
}

// at returns the literal for "value = d", or constant false when the value
// cannot be d at all.
func (v *groundVal) at(d int) plit {
	if l, ok := v.vals[d]; ok {
		return l
	}
	return litFalse
}

func newGrounder(k int) *grounder {
	return &grounder{k: k, syms: make(map[string]*groundVal)}
}

// ground translates a formula into a single propositional formula for the
// native backend.
func ground(f *term.Formula) (bf.Formula, error) {
	g := newGrounder(f.K)
	conj := []bf.Formula{bf.True}
	for _, a := range f.Asserts {
		l, err := g.boolEval(a)
		if err != nil {
			return nil, err
		}
		conj = append(conj, l.formula())
	}
	conj = append(conj, g.clauses...)
	conj = append(conj, g.well...)
	return bf.And(conj...), nil
}

func (g *grounder) universeSize(s term.Sort) (int, error) {
	switch s := s.(type) {
	case term.IntSort, term.USort:
		return g.k, nil
	case term.BVSort:
		return 1 << s.Width, nil
	}
	return 0, fmt.Errorf("sort %s has no finite universe", s)
}

// scalarVarName names the boolean variable standing for "symbol = d".
func scalarVarName(sym string, d int) string { return fmt.Sprintf("%s=%d", sym, d) }

// memberVarName names the boolean variable standing for "d ∈ symbol".
func memberVarName(sym string, d int) string { return fmt.Sprintf("%s!%d", sym, d) }

func (g *grounder) freshAux() plit {
	g.aux++
	return plit{name: fmt.Sprintf("@%d", g.aux)}
}

// addClause records a disjunction of literals, simplifying constants away.
func (g *grounder) addClause(lits ...plit) {
	fs := make([]bf.Formula, 0, len(lits))
	for _, l := range lits {
		if l.name == "" {
			if !l.neg {
				return // clause already satisfied
			}
			continue
		}
		fs = append(fs, l.formula())
	}
	if len(fs) == 0 {
		g.clauses = append(g.clauses, bf.False)
		return
	}
	g.clauses = append(g.clauses, bf.Or(fs...))
}

// conj returns a literal equivalent to the conjunction of the given
// literals, introducing a definitional variable when more than one is left
// after constant folding.
func (g *grounder) conj(lits []plit) plit {
	kept := make([]plit, 0, len(lits))
	for _, l := range lits {
		if l.name == "" {
			if l.neg {
				return litFalse
			}
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		return litTrue
	}
	if len(kept) == 1 {
		return kept[0]
	}
	d := g.freshAux()
	reverse := make([]plit, 0, len(kept)+1)
	for _, l := range kept {
		g.addClause(d.not(), l)
		reverse = append(reverse, l.not())
	}
	g.addClause(append(reverse, d)...)
	return d
}

// define returns a literal equivalent to the given disjunction of
// conjunctions of literals. Both directions of the equivalence are
// asserted, so the result stays sound under negation.
func (g *grounder) define(dnf ...[]plit) plit {
	ds := make([]plit, 0, len(dnf))
	for _, c := range dnf {
		d := g.conj(c)
		if d == litTrue {
			return litTrue
		}
		if d == litFalse {
			continue
		}
		ds = append(ds, d)
	}
	if len(ds) == 0 {
		return litFalse
	}
	if len(ds) == 1 {
		return ds[0]
	}
	v := g.freshAux()
	for _, d := range ds {
		g.addClause(d.not(), v)
	}
	g.addClause(append([]plit{v.not()}, ds...)...)
	return v
}

// symbolVal materializes a declared symbol as fresh boolean variables, with
// the one-hot wellformedness constraints recorded on the side. Results are
// cached by name so every occurrence shares the same variables.
func (g *grounder) symbolVal(name string, s term.Sort) (*groundVal, error) {
	if v, ok := g.syms[name]; ok {
		return v, nil
	}
	v, err := g.freshVal(name, s)
	if err != nil {
		return nil, err
	}
	g.syms[name] = v
	return v, nil
}

func (g *grounder) freshVal(name string, s term.Sort) (*groundVal, error) {
	switch s := s.(type) {
	case term.ArraySort:
		n, err := g.universeSize(s.Index)
		if err != nil {
			return nil, err
		}
		cells := make([]*groundVal, n)
		for d := 0; d < n; d++ {
			cell, err := g.freshVal(fmt.Sprintf("%s@%d", name, d), s.Elem)
			if err != nil {
				return nil, err
			}
			cells[d] = cell
		}
		return &groundVal{cells: cells}, nil
	case term.SetSort:
		n, err := g.universeSize(s.Elem)
		if err != nil {
			return nil, err
		}
		chars := make([]plit, n)
		for d := 0; d < n; d++ {
			chars[d] = plit{name: memberVarName(name, d)}
		}
		return &groundVal{chars: chars}, nil
	default:
		n, err := g.universeSize(s)
		if err != nil {
			return nil, err
		}
		vals := make(map[int]plit, n)
		names := make([]string, n)
		for d := 0; d < n; d++ {
			names[d] = scalarVarName(name, d)
			vals[d] = plit{name: names[d]}
		}
		g.well = append(g.well, bf.Unique(names...))
		return &groundVal{vals: vals}, nil
	}
}

// eval computes the finite semantics of a non-boolean term.
func (g *grounder) eval(t term.Term) (*groundVal, error) {
	switch t := t.(type) {
	case term.Symbol:
		return g.symbolVal(t.Name, t.S)
	case term.IntLit:
		return &groundVal{vals: map[int]plit{t.Val: litTrue}}, nil
	case term.BVLit:
		return &groundVal{vals: map[int]plit{t.Val: litTrue}}, nil
	case term.EmptySetLit:
		n, err := g.universeSize(t.Elem)
		if err != nil {
			return nil, err
		}
		chars := make([]plit, n)
		for d := range chars {
			chars[d] = litFalse
		}
		return &groundVal{chars: chars}, nil
	}

	op, args := term.Args(t)
	switch op {
	case "store":
		arr, err := g.eval(args[0])
		if err != nil {
			return nil, err
		}
		idx, err := g.eval(args[1])
		if err != nil {
			return nil, err
		}
		val, err := g.eval(args[2])
		if err != nil {
			return nil, err
		}
		cells := make([]*groundVal, len(arr.cells))
		for d := range arr.cells {
			hit := idx.at(d)
			vals := make(map[int]plit)
			for w := range arr.cells[d].vals {
				vals[w] = litFalse
			}
			for w := range val.vals {
				vals[w] = litFalse
			}
			for w := range vals {
				vals[w] = g.define(
					[]plit{hit.not(), arr.cells[d].at(w)},
					[]plit{hit, val.at(w)},
				)
			}
			cells[d] = &groundVal{vals: vals}
		}
		return &groundVal{cells: cells}, nil
	case "select":
		arr, err := g.eval(args[0])
		if err != nil {
			return nil, err
		}
		idx, err := g.eval(args[1])
		if err != nil {
			return nil, err
		}
		dnfs := make(map[int][][]plit)
		for d := range arr.cells {
			hit := idx.at(d)
			for w, was := range arr.cells[d].vals {
				dnfs[w] = append(dnfs[w], []plit{hit, was})
			}
		}
		vals := make(map[int]plit, len(dnfs))
		for w, dnf := range dnfs {
			vals[w] = g.define(dnf...)
		}
		return &groundVal{vals: vals}, nil
	case "set.insert":
		elem, err := g.eval(args[0])
		if err != nil {
			return nil, err
		}
		set, err := g.eval(args[1])
		if err != nil {
			return nil, err
		}
		chars := make([]plit, len(set.chars))
		for d := range chars {
			chars[d] = g.define([]plit{set.chars[d]}, []plit{elem.at(d)})
		}
		return &groundVal{chars: chars}, nil
	case "-":
		a, err := g.eval(args[0])
		if err != nil {
			return nil, err
		}
		b, err := g.eval(args[1])
		if err != nil {
			return nil, err
		}
		dnfs := make(map[int][][]plit)
		for d1, f1 := range a.vals {
			for d2, f2 := range b.vals {
				dnfs[d1-d2] = append(dnfs[d1-d2], []plit{f1, f2})
			}
		}
		vals := make(map[int]plit, len(dnfs))
		for w, dnf := range dnfs {
			vals[w] = g.define(dnf...)
		}
		return &groundVal{vals: vals}, nil
	}
	return nil, fmt.Errorf("cannot ground term %s", t)
}

// boolEval computes the propositional semantics of a formula-sorted term as
// a single literal.
func (g *grounder) boolEval(t term.Term) (plit, error) {
	op, args := term.Args(t)
	switch op {
	case "and":
		subs := make([]plit, len(args))
		for i, a := range args {
			l, err := g.boolEval(a)
			if err != nil {
				return litFalse, err
			}
			subs[i] = l
		}
		return g.conj(subs), nil
	case "not":
		l, err := g.boolEval(args[0])
		if err != nil {
			return litFalse, err
		}
		return l.not(), nil
	case "=":
		return g.eq(args[0], args[1])
	case "distinct":
		var subs []plit
		for i := 0; i < len(args); i++ {
			for j := i + 1; j < len(args); j++ {
				eq, err := g.eq(args[i], args[j])
				if err != nil {
					return litFalse, err
				}
				subs = append(subs, eq.not())
			}
		}
		return g.conj(subs), nil
	case "<=", ">=":
		a, err := g.eval(args[0])
		if err != nil {
			return litFalse, err
		}
		b, err := g.eval(args[1])
		if err != nil {
			return litFalse, err
		}
		var dnf [][]plit
		for d1, f1 := range a.vals {
			for d2, f2 := range b.vals {
				if (op == "<=" && d1 <= d2) || (op == ">=" && d1 >= d2) {
					dnf = append(dnf, []plit{f1, f2})
				}
			}
		}
		return g.define(dnf...), nil
	case "set.subset":
		a, err := g.eval(args[0])
		if err != nil {
			return litFalse, err
		}
		b, err := g.eval(args[1])
		if err != nil {
			return litFalse, err
		}
		subs := make([]plit, len(a.chars))
		for d := range a.chars {
			subs[d] = g.define([]plit{a.chars[d].not()}, []plit{b.chars[d]})
		}
		return g.conj(subs), nil
	}
	return litFalse, fmt.Errorf("cannot ground constraint %s", t)
}

// eq grounds an equality over any sort family. A product compared to zero
// is handled without expanding the product: some factor must be zero.
// Products in any other position have no finite grounding here and are
// rejected; the colorers never emit one.
func (g *grounder) eq(lhs, rhs term.Term) (plit, error) {
	if l, ok, err := g.productEqZero(lhs, rhs); ok || err != nil {
		return l, err
	}
	if l, ok, err := g.productEqZero(rhs, lhs); ok || err != nil {
		return l, err
	}
	a, err := g.eval(lhs)
	if err != nil {
		return litFalse, err
	}
	b, err := g.eval(rhs)
	if err != nil {
		return litFalse, err
	}
	return g.valEq(a, b)
}

func (g *grounder) valEq(a, b *groundVal) (plit, error) {
	switch {
	case a.vals != nil && b.vals != nil:
		var dnf [][]plit
		for d, f1 := range a.vals {
			if f2, ok := b.vals[d]; ok {
				dnf = append(dnf, []plit{f1, f2})
			}
		}
		return g.define(dnf...), nil
	case a.cells != nil && b.cells != nil:
		subs := make([]plit, len(a.cells))
		for d := range a.cells {
			eq, err := g.valEq(a.cells[d], b.cells[d])
			if err != nil {
				return litFalse, err
			}
			subs[d] = eq
		}
		return g.conj(subs), nil
	case a.chars != nil && b.chars != nil:
		subs := make([]plit, len(a.chars))
		for d := range a.chars {
			subs[d] = g.define(
				[]plit{a.chars[d], b.chars[d]},
				[]plit{a.chars[d].not(), b.chars[d].not()},
			)
		}
		return g.conj(subs), nil
	}
	return litFalse, fmt.Errorf("equality between different sort families")
}

func (g *grounder) productEqZero(prod, zero term.Term) (plit, bool, error) {
	op, factors := term.Args(prod)
	if op != "*" {
		return litFalse, false, nil
	}
	if lit, ok := zero.(term.IntLit); !ok || lit.Val != 0 {
		return litFalse, false, fmt.Errorf("cannot ground product %s compared to %s", prod, zero)
	}
	var dnf [][]plit
	for _, f := range factors {
		v, err := g.eval(f)
		if err != nil {
			return litFalse, false, err
		}
		if isZero, ok := v.vals[0]; ok {
			dnf = append(dnf, []plit{isZero})
		}
	}
	return g.define(dnf...), true, nil
}
