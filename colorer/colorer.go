// Package colorer implements the per-theory encodings of "a vertex's color"
// and "two vertices' colors differ". Each of the nine theories gives those
// two notions a different shape; everything else about the reduction is
// theory-agnostic and lives in the reduction package.
package colorer

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/smtcolor/smtcolor/term"
)

// Theory names one of the supported background theories.
type Theory string

const (
	LIA  Theory = "LIA"  // linear integer arithmetic
	NLA  Theory = "NLA"  // nonlinear integer arithmetic
	AUF  Theory = "AUF"  // arrays over uninterpreted index/element sorts
	AINT Theory = "AINT" // arrays over integers
	ABV  Theory = "ABV"  // arrays over bit-vectors
	BV   Theory = "BV"   // fixed-width bit-vectors
	SUF  Theory = "SUF"  // sets of uninterpreted elements
	SINT Theory = "SINT" // sets of integers
	SBV  Theory = "SBV"  // sets of bit-vectors
)

// Theories lists every supported theory, in a fixed order.
func Theories() []Theory {
	return []Theory{LIA, NLA, AUF, AINT, ABV, BV, SUF, SINT, SBV}
}

// Logic returns the SMT-LIB logic name formulas of this theory declare.
// The set theories are a cvc5 extension with no standard logic name, so
// they declare ALL.
func (t Theory) Logic() string {
	switch t {
	case LIA:
		return "QF_LIA"
	case NLA:
		return "QF_NIA"
	case AUF:
		return "QF_AX"
	case AINT:
		return "QF_ALIA"
	case ABV:
		return "QF_ABV"
	case BV:
		return "QF_BV"
	default:
		return "ALL"
	}
}

// requiresPowerOfTwo reports whether the theory's color domain is only
// exactly representable when k is a power of two. The policy for those
// theories is strict failure on any other k; there is no silent widening.
func (t Theory) requiresPowerOfTwo() bool {
	switch t {
	case BV, SUF, SINT, SBV:
		return true
	}
	return false
}

var (
	// ErrUnknownTheory reports a theory name outside the supported set.
	ErrUnknownTheory = errors.New("unknown theory")
	// ErrTooFewColors reports k < 2; a graph with an edge is never
	// 1-colorable, so smaller k is rejected outright.
	ErrTooFewColors = errors.New("number of colors must be at least 2")
	// ErrNotPowerOfTwo reports a non-power-of-two k under a theory whose
	// encoding needs the color domain to fill its representation exactly.
	ErrNotPowerOfTwo = errors.New("number of colors must be a power of two")
)

// A Descriptor identifies one theory together with the structural
// parameters its encoding derives from k.
type Descriptor struct {
	Theory Theory
	K      int
	// Width is the bit-vector width, ceil(log2 k), for the theories that
	// use bit-vector values. Zero elsewhere.
	Width int
}

// NewDescriptor validates the (theory, k) pair and derives the structural
// parameters. All failures here are configuration errors: nothing has been
// built yet and nothing will be.
func NewDescriptor(t Theory, k int) (Descriptor, error) {
	found := false
	for _, known := range Theories() {
		if t == known {
			found = true
			break
		}
	}
	if !found {
		return Descriptor{}, errors.Wrapf(ErrUnknownTheory, "%q", t)
	}
	if k < 2 {
		return Descriptor{}, errors.Wrapf(ErrTooFewColors, "got %d", k)
	}
	if t.requiresPowerOfTwo() && bits.OnesCount(uint(k)) != 1 {
		return Descriptor{}, errors.Wrapf(ErrNotPowerOfTwo, "theory %s, k=%d", t, k)
	}
	d := Descriptor{Theory: t, K: k}
	switch t {
	case ABV, BV, SBV:
		d.Width = int(math.Ceil(math.Log2(float64(k))))
	}
	return d, nil
}

// A Colorer builds one theory's color representation per vertex and the
// constraints over it. Vertex terms are cached: asking twice for the same
// vertex returns the identical term, so every edge constraint touching a
// vertex refers to the same symbol.
type Colorer interface {
	// Descriptor returns the theory descriptor the colorer was built from.
	Descriptor() Descriptor
	// VertexTerm returns the color representation of a vertex, creating
	// and caching it on first use.
	VertexTerm(v string) term.Term
	// DomainConstraints returns the well-formedness constraints confining
	// the vertex's color representation to the k-color domain. Idempotent.
	DomainConstraints(v string) []term.Term
	// Distinct returns the constraint that two vertices' colors differ.
	Distinct(u, v string) term.Term
	// GlobalConstraints returns the vertex-independent constraints of the
	// encoding, such as pairwise distinctness of uninterpreted colors.
	GlobalConstraints() []term.Term
	// Declarations returns every sort and constant the constraints built
	// so far refer to, in creation order.
	Declarations() []term.Decl
	// Mode tells a solver adapter how to read vertex values back from a
	// model of the formula.
	Mode() term.ValueMode
}

// New builds the colorer variant for the descriptor's theory.
func New(d Descriptor) Colorer {
	switch d.Theory {
	case LIA:
		return &liaColorer{base: newBase(d)}
	case NLA:
		return &nlaColorer{base: newBase(d)}
	case AUF:
		return newAUFColorer(d)
	case AINT:
		return &aintColorer{base: newBase(d)}
	case ABV:
		return &abvColorer{base: newBase(d)}
	case BV:
		return &bvColorer{base: newBase(d)}
	case SUF:
		return newSUFColorer(d)
	case SINT:
		return newSINTColorer(d)
	case SBV:
		return newSBVColorer(d)
	default:
		panic("colorer: descriptor with unknown theory")
	}
}

// base carries the state every variant shares: the descriptor, the vertex
// term cache, the declaration list and the per-vertex constraint cache.
type base struct {
	desc    Descriptor
	terms   map[string]term.Term
	domains map[string][]term.Term
	decls   []term.Decl
	global  []term.Term
}

func newBase(d Descriptor) base {
	return base{
		desc:    d,
		terms:   make(map[string]term.Term),
		domains: make(map[string][]term.Term),
	}
}

func (b *base) Descriptor() Descriptor         { return b.desc }
func (b *base) GlobalConstraints() []term.Term { return b.global }
func (b *base) Declarations() []term.Decl      { return b.decls }

// sym declares a fresh constant and returns the term referring to it.
func (b *base) sym(name string, s term.Sort) term.Term {
	b.decls = append(b.decls, term.ConstDecl{Name: name, S: s})
	return term.Const(name, s)
}

// vertex returns the cached color representation of v, declaring it on
// first use with the given sort.
func (b *base) vertex(v string, s term.Sort) term.Term {
	if t, ok := b.terms[v]; ok {
		return t
	}
	t := b.sym("v_"+v, s)
	b.terms[v] = t
	return t
}

// domain caches per-vertex well-formedness constraints so that building a
// vertex's domain twice neither duplicates declarations nor constraints.
func (b *base) domain(v string, build func() []term.Term) []term.Term {
	if cs, ok := b.domains[v]; ok {
		return cs
	}
	cs := build()
	b.domains[v] = cs
	return cs
}
