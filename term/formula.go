package term

import (
	"fmt"
	"strings"
)

// A Decl is a top-level declaration a formula depends on.
type Decl interface {
	// String returns the SMT-LIB declaration command.
	String() string
	decl()
}

// SortDecl declares an uninterpreted sort.
type SortDecl struct{ Name string }

func (SortDecl) decl()            {}
func (d SortDecl) String() string { return fmt.Sprintf("(declare-sort %s 0)", d.Name) }

// ConstDecl declares a constant of a given sort.
type ConstDecl struct {
	Name string
	S    Sort
}

func (ConstDecl) decl() {}
func (d ConstDecl) String() string {
	return fmt.Sprintf("(declare-const %s %s)", d.Name, d.S)
}

// ValueMode describes how a vertex term's value is read back from a model.
type ValueMode byte

const (
	// ModeInt reads the vertex term as an integer.
	ModeInt ValueMode = iota
	// ModeBV reads the vertex term as a bit-vector and converts it to an
	// unsigned integer.
	ModeBV
	// ModeCanonical numbers the distinct values the engine assigned, in
	// first-appearance order, since the underlying values (uninterpreted
	// elements, sets) have no integer reading of their own.
	ModeCanonical
)

// A VertexTerm pairs a graph vertex with its color representation.
type VertexTerm struct {
	Vertex string
	Term   Term
}

// A Formula is the complete satisfiability instance for one (graph, k,
// theory) triple. It is built once, never mutated, and consumed exactly
// once by a solver adapter.
type Formula struct {
	Theory string
	Logic  string
	K      int
	Mode   ValueMode

	Decls    []Decl
	Asserts  []Term
	Vertices []VertexTerm
}

// Assertions returns the SMT-LIB text of every assertion, in order.
func (f *Formula) Assertions() []string {
	strs := make([]string, len(f.Asserts))
	for i, a := range f.Asserts {
		strs[i] = a.String()
	}
	return strs
}

// VertexTermOf returns the color representation of the given vertex, or nil
// if the vertex is unknown to the formula.
func (f *Formula) VertexTermOf(v string) Term {
	for _, vt := range f.Vertices {
		if vt.Vertex == v {
			return vt.Term
		}
	}
	return nil
}

// Script renders the formula as a complete SMT-LIB v2 script: logic and
// options, declarations, assertions, check-sat and, when wantModel is set,
// a get-value command over every vertex term.
func (f *Formula) Script(wantModel bool) string {
	var sb strings.Builder
	if wantModel {
		sb.WriteString("(set-option :produce-models true)\n")
	}
	fmt.Fprintf(&sb, "(set-logic %s)\n", f.Logic)
	for _, d := range f.Decls {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	for _, a := range f.Asserts {
		fmt.Fprintf(&sb, "(assert %s)\n", a)
	}
	sb.WriteString("(check-sat)\n")
	if wantModel && len(f.Vertices) > 0 {
		terms := make([]string, len(f.Vertices))
		for i, vt := range f.Vertices {
			terms[i] = vt.Term.String()
		}
		fmt.Fprintf(&sb, "(get-value (%s))\n", strings.Join(terms, " "))
	}
	sb.WriteString("(exit)\n")
	return sb.String()
}
