package colorer

import "github.com/smtcolor/smtcolor/term"

// liaColorer encodes colors as integers confined by two inequalities:
// 0 <= v_i <= k-1. Distinctness is a direct arithmetic disequality.
type liaColorer struct {
	base
}

func (c *liaColorer) VertexTerm(v string) term.Term {
	return c.vertex(v, term.IntSort{})
}

func (c *liaColorer) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		x := c.VertexTerm(v)
		return []term.Term{term.And(
			term.GE(x, term.Int(0)),
			term.LE(x, term.Int(c.desc.K-1)),
		)}
	})
}

func (c *liaColorer) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *liaColorer) Mode() term.ValueMode { return term.ModeInt }

// nlaColorer encodes the same integer domain through a polynomial root
// constraint: v_i (v_i - 1) ... (v_i - (k-1)) = 0. The domain is identical
// to LIA's but the decision procedure has to reason about a degree-k
// product instead of two inequalities.
type nlaColorer struct {
	base
}

func (c *nlaColorer) VertexTerm(v string) term.Term {
	return c.vertex(v, term.IntSort{})
}

func (c *nlaColorer) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		x := c.VertexTerm(v)
		// v(v-1)...(v-(k-1)): the degree-zero factor is the bare vertex.
		factors := make([]term.Term, c.desc.K)
		factors[0] = x
		for i := 1; i < c.desc.K; i++ {
			factors[i] = term.Sub(x, term.Int(i))
		}
		return []term.Term{term.Eq(term.Mul(factors...), term.Int(0))}
	})
}

func (c *nlaColorer) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *nlaColorer) Mode() term.ValueMode { return term.ModeInt }
