package colorer

import (
	"fmt"
	"math/bits"

	"github.com/smtcolor/smtcolor/term"
)

// The set colorers represent a color as a subset of a fixed base set S of
// m = log2(k) elements: with k a power of two, the 2^m = k subsets of S are
// exactly the k colors. Each vertex is a set variable constrained to
// v ⊆ S, and two adjacent vertices must be different subsets, which pushes
// the work into the solver's set-disequality reasoning instead of any
// scalar comparison.

// setBase holds the shared subset construction over a given element sort.
type setBase struct {
	base
	elemSort term.Sort
	baseSet  term.Term
}

// initBaseSet builds S by inserting the element terms into the empty set.
func (c *setBase) initBaseSet(elems []term.Term) {
	set := term.Term(term.EmptySet(c.elemSort))
	for _, e := range elems {
		set = term.SetInsert(e, set)
	}
	c.baseSet = set
}

func (c *setBase) VertexTerm(v string) term.Term {
	return c.vertex(v, term.SetSort{Elem: c.elemSort})
}

func (c *setBase) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		return []term.Term{term.Subset(c.VertexTerm(v), c.baseSet)}
	})
}

func (c *setBase) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *setBase) Mode() term.ValueMode { return term.ModeCanonical }

func setPower(k int) int { return bits.Len(uint(k)) - 1 }

// sufColorer draws the base set from an uninterpreted element sort; the m
// base elements are constants asserted pairwise distinct.
type sufColorer struct {
	setBase
}

func newSUFColorer(d Descriptor) *sufColorer {
	c := &sufColorer{setBase: setBase{base: newBase(d)}}
	c.decls = append(c.decls, term.SortDecl{Name: "ColorType"})
	c.elemSort = term.USort{Name: "ColorType"}
	m := setPower(d.K)
	elems := make([]term.Term, m)
	for i := 0; i < m; i++ {
		elems[i] = c.sym(fmt.Sprintf("c_%d", i), c.elemSort)
	}
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			c.global = append(c.global, term.Distinct(elems[i], elems[j]))
		}
	}
	c.initBaseSet(elems)
	return c
}

// sintColorer draws the base set from the integer literals 0..m-1.
type sintColorer struct {
	setBase
}

func newSINTColorer(d Descriptor) *sintColorer {
	c := &sintColorer{setBase: setBase{base: newBase(d)}}
	c.elemSort = term.IntSort{}
	m := setPower(d.K)
	elems := make([]term.Term, m)
	for i := 0; i < m; i++ {
		elems[i] = term.Int(i)
	}
	c.initBaseSet(elems)
	return c
}

// sbvColorer draws the base set from bit-vector literals of width log2 k.
type sbvColorer struct {
	setBase
}

func newSBVColorer(d Descriptor) *sbvColorer {
	c := &sbvColorer{setBase: setBase{base: newBase(d)}}
	c.elemSort = term.BVSort{Width: d.Width}
	m := setPower(d.K)
	elems := make([]term.Term, m)
	for i := 0; i < m; i++ {
		elems[i] = term.BV(i, d.Width)
	}
	c.initBaseSet(elems)
	return c
}
