package colorer

import (
	"fmt"

	"github.com/smtcolor/smtcolor/term"
)

// The array colorers all use the same store-chain shape, taken over
// different index/element sorts. For each vertex v:
//
//	A_1 = store(A_0, i_1, color_1)
//	...
//	A_k = store(A_{k-1}, i_k, color_k)
//	v   = select(A_k, i_1)
//
// The vertex's color is whatever ended up at cell i_1, so the solver has to
// reason through the chain of stores (which later index terms alias i_1) to
// decide which colors a vertex can take.

// storeChain builds the per-vertex store chain. colorVal yields the value
// stored at step i, for i in [1, k].
func (b *base) storeChain(v string, idxSort, arrSort term.Sort, vertex term.Term, colorVal func(i int) term.Term) []term.Term {
	k := b.desc.K
	cs := make([]term.Term, 0, k+1)
	arr0 := b.sym(fmt.Sprintf("arr0_v%s", v), arrSort)
	i1 := b.sym(fmt.Sprintf("i1_v%s", v), idxSort)
	prev := b.sym(fmt.Sprintf("arr1_v%s", v), arrSort)
	cs = append(cs, term.Eq(prev, term.Store(arr0, i1, colorVal(1))))
	for i := 2; i <= k; i++ {
		idx := b.sym(fmt.Sprintf("i%d_v%s", i, v), idxSort)
		cur := b.sym(fmt.Sprintf("arr%d_v%s", i, v), arrSort)
		cs = append(cs, term.Eq(cur, term.Store(prev, idx, colorVal(i))))
		prev = cur
	}
	cs = append(cs, term.Eq(vertex, term.Select(prev, i1)))
	return cs
}

// aufColorer stores k pairwise-distinct uninterpreted color constants into
// arrays over uninterpreted index and element sorts. Distinctness of two
// vertices forces the solver's congruence and extensionality reasoning:
// there is no value vocabulary to compare, only symbols.
type aufColorer struct {
	base
	colors []term.Term
}

func newAUFColorer(d Descriptor) *aufColorer {
	c := &aufColorer{base: newBase(d)}
	c.decls = append(c.decls, term.SortDecl{Name: "IndexType"}, term.SortDecl{Name: "ColorType"})
	colorSort := term.USort{Name: "ColorType"}
	c.colors = make([]term.Term, d.K)
	for i := 0; i < d.K; i++ {
		c.colors[i] = c.sym(fmt.Sprintf("c_%d", i+1), colorSort)
	}
	for i := 0; i < d.K; i++ {
		for j := i + 1; j < d.K; j++ {
			c.global = append(c.global, term.Distinct(c.colors[i], c.colors[j]))
		}
	}
	return c
}

func (c *aufColorer) VertexTerm(v string) term.Term {
	return c.vertex(v, term.USort{Name: "ColorType"})
}

func (c *aufColorer) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		idxSort := term.USort{Name: "IndexType"}
		elemSort := term.USort{Name: "ColorType"}
		arrSort := term.ArraySort{Index: idxSort, Elem: elemSort}
		return c.storeChain(v, idxSort, arrSort, c.VertexTerm(v), func(i int) term.Term {
			return c.colors[i-1]
		})
	})
}

func (c *aufColorer) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *aufColorer) Mode() term.ValueMode { return term.ModeCanonical }

// aintColorer is the store chain over integer arrays, storing the literal
// colors 0..k-1.
type aintColorer struct {
	base
}

func (c *aintColorer) VertexTerm(v string) term.Term {
	return c.vertex(v, term.IntSort{})
}

func (c *aintColorer) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		intSort := term.IntSort{}
		arrSort := term.ArraySort{Index: intSort, Elem: intSort}
		return c.storeChain(v, intSort, arrSort, c.VertexTerm(v), func(i int) term.Term {
			return term.Int(i - 1)
		})
	})
}

func (c *aintColorer) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *aintColorer) Mode() term.ValueMode { return term.ModeInt }

// abvColorer is the store chain over bit-vector arrays of width
// ceil(log2 k). Any k >= 2 is accepted: only the literals 0..k-1 are ever
// stored, and the first store targets the selected cell, so no slack codes
// can reach a vertex.
type abvColorer struct {
	base
}

func (c *abvColorer) VertexTerm(v string) term.Term {
	return c.vertex(v, term.BVSort{Width: c.desc.Width})
}

func (c *abvColorer) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		bvSort := term.BVSort{Width: c.desc.Width}
		arrSort := term.ArraySort{Index: bvSort, Elem: bvSort}
		return c.storeChain(v, bvSort, arrSort, c.VertexTerm(v), func(i int) term.Term {
			return term.BV(i-1, c.desc.Width)
		})
	})
}

func (c *abvColorer) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *abvColorer) Mode() term.ValueMode { return term.ModeBV }
