// Package term implements the sorted first-order terms the coloring
// reductions are written in. Terms cover the fragments the nine theory
// encodings need: linear and nonlinear integer arithmetic, fixed-width
// bit-vectors, arrays, finite sets and uninterpreted sorts. Every term
// renders itself as an SMT-LIB v2 s-expression.
package term

import (
	"fmt"
	"strings"
)

// A Sort is the type of a term. Sorts are comparable values: two
// constructions of the same sort compare equal with ==.
type Sort interface {
	// String returns the SMT-LIB rendering of the sort.
	String() string
	sort()
}

// BoolSort is the sort of formulas.
type BoolSort struct{}

func (BoolSort) sort()          {}
func (BoolSort) String() string { return "Bool" }

// IntSort is the sort of unbounded integers.
type IntSort struct{}

func (IntSort) sort()          {}
func (IntSort) String() string { return "Int" }

// BVSort is the sort of bit-vectors of a fixed width.
type BVSort struct{ Width int }

func (BVSort) sort()            {}
func (s BVSort) String() string { return fmt.Sprintf("(_ BitVec %d)", s.Width) }

// USort is a declared uninterpreted sort.
type USort struct{ Name string }

func (USort) sort()            {}
func (s USort) String() string { return s.Name }

// ArraySort is the sort of arrays from Index to Elem.
type ArraySort struct{ Index, Elem Sort }

func (ArraySort) sort() {}
func (s ArraySort) String() string {
	return fmt.Sprintf("(Array %s %s)", s.Index, s.Elem)
}

// SetSort is the sort of finite sets of Elem values.
type SetSort struct{ Elem Sort }

func (SetSort) sort()            {}
func (s SetSort) String() string { return fmt.Sprintf("(Set %s)", s.Elem) }

// A Term is a sorted expression. Terms are immutable once built.
type Term interface {
	// Sort returns the sort of the term.
	Sort() Sort
	// String returns the SMT-LIB rendering of the term.
	String() string
	term()
}

// A Symbol is a declared constant.
type Symbol struct {
	Name string
	S    Sort
}

// Const builds a reference to the declared constant name of sort s.
func Const(name string, s Sort) Symbol { return Symbol{Name: name, S: s} }

func (Symbol) term()            {}
func (s Symbol) Sort() Sort     { return s.S }
func (s Symbol) String() string { return s.Name }

// IntLit is an integer literal.
type IntLit struct{ Val int }

// Int builds an integer literal.
func Int(v int) IntLit { return IntLit{Val: v} }

func (IntLit) term()      {}
func (IntLit) Sort() Sort { return IntSort{} }
func (l IntLit) String() string {
	if l.Val < 0 {
		return fmt.Sprintf("(- %d)", -l.Val)
	}
	return fmt.Sprintf("%d", l.Val)
}

// BVLit is a bit-vector literal of a fixed width.
type BVLit struct{ Val, Width int }

// BV builds a bit-vector literal of the given value and width.
func BV(v, width int) BVLit { return BVLit{Val: v, Width: width} }

func (BVLit) term()        {}
func (l BVLit) Sort() Sort { return BVSort{Width: l.Width} }
func (l BVLit) String() string {
	var sb strings.Builder
	sb.WriteString("#b")
	for i := l.Width - 1; i >= 0; i-- {
		if l.Val&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

type nary struct {
	op   string
	s    Sort
	args []Term
}

func (nary) term()        {}
func (t nary) Sort() Sort { return t.s }
func (t nary) String() string {
	strs := make([]string, len(t.args))
	for i, a := range t.args {
		strs[i] = a.String()
	}
	return "(" + t.op + " " + strings.Join(strs, " ") + ")"
}

// And builds the conjunction of the given formulas.
// A single argument is returned as is.
func And(args ...Term) Term {
	if len(args) == 1 {
		return args[0]
	}
	return nary{op: "and", s: BoolSort{}, args: args}
}

// Not negates the given formula.
func Not(f Term) Term { return nary{op: "not", s: BoolSort{}, args: []Term{f}} }

// Eq asserts the two terms are equal.
func Eq(a, b Term) Term { return nary{op: "=", s: BoolSort{}, args: []Term{a, b}} }

// Distinct asserts all given terms are pairwise different.
func Distinct(args ...Term) Term {
	return nary{op: "distinct", s: BoolSort{}, args: args}
}

// LE asserts a <= b over integers.
func LE(a, b Term) Term { return nary{op: "<=", s: BoolSort{}, args: []Term{a, b}} }

// GE asserts a >= b over integers.
func GE(a, b Term) Term { return nary{op: ">=", s: BoolSort{}, args: []Term{a, b}} }

// Sub builds the integer difference a - b.
func Sub(a, b Term) Term { return nary{op: "-", s: IntSort{}, args: []Term{a, b}} }

// Mul builds the integer product of the given terms.
func Mul(args ...Term) Term {
	if len(args) == 1 {
		return args[0]
	}
	return nary{op: "*", s: IntSort{}, args: args}
}

// Store builds the array equal to arr except that index maps to val.
func Store(arr, index, val Term) Term {
	return nary{op: "store", s: arr.Sort(), args: []Term{arr, index, val}}
}

// Select reads the value of arr at index.
func Select(arr, index Term) Term {
	elem := arr.Sort().(ArraySort).Elem
	return nary{op: "select", s: elem, args: []Term{arr, index}}
}

// EmptySetLit is the empty set of a given element sort.
type EmptySetLit struct{ Elem Sort }

// EmptySet builds the empty set over the given element sort.
func EmptySet(elem Sort) EmptySetLit { return EmptySetLit{Elem: elem} }

func (EmptySetLit) term()        {}
func (l EmptySetLit) Sort() Sort { return SetSort{Elem: l.Elem} }
func (l EmptySetLit) String() string {
	return fmt.Sprintf("(as set.empty %s)", l.Sort())
}

// SetInsert builds the set containing elem plus everything in set.
func SetInsert(elem, set Term) Term {
	return nary{op: "set.insert", s: set.Sort(), args: []Term{elem, set}}
}

// Subset asserts a is a subset of b.
func Subset(a, b Term) Term {
	return nary{op: "set.subset", s: BoolSort{}, args: []Term{a, b}}
}

// Args exposes the immediate subterms of a term, along with its operator
// name. Literals and symbols have no operator and no subterms.
func Args(t Term) (op string, args []Term) {
	if n, ok := t.(nary); ok {
		return n.op, n.args
	}
	return "", nil
}
