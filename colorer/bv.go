package colorer

import "github.com/smtcolor/smtcolor/term"

// bvColorer encodes a color as a bare bit-vector of width log2 k. The
// domain is tight: every representable word is a color, which is exactly
// why this theory demands a power-of-two k (NewDescriptor enforces it).
// There are no domain constraints at all; the whole problem is carried by
// the edge disequalities.
type bvColorer struct {
	base
}

func (c *bvColorer) VertexTerm(v string) term.Term {
	return c.vertex(v, term.BVSort{Width: c.desc.Width})
}

func (c *bvColorer) DomainConstraints(v string) []term.Term {
	return c.domain(v, func() []term.Term {
		c.VertexTerm(v) // declare the symbol even though no clause confines it
		return nil
	})
}

func (c *bvColorer) Distinct(u, v string) term.Term {
	return term.Distinct(c.VertexTerm(u), c.VertexTerm(v))
}

func (c *bvColorer) Mode() term.ValueMode { return term.ModeBV }
