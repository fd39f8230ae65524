package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSExpr(t *testing.T) {
	sx, err := parseSExpr("((v_1 0) (v_2 (- 1)))")
	require.NoError(t, err)
	require.Len(t, sx.list, 2)
	assert.Equal(t, "v_1", sx.list[0].list[0].atom)
	assert.Equal(t, "0", sx.list[0].list[1].atom)
	assert.Equal(t, "(- 1)", sx.list[1].list[1].String())
}

func TestParseSExprAtom(t *testing.T) {
	sx, err := parseSExpr("sat")
	require.NoError(t, err)
	assert.Equal(t, "sat", sx.atom)
}

func TestParseSExprQuotedSymbol(t *testing.T) {
	sx, err := parseSExpr("((|v one| 3))")
	require.NoError(t, err)
	assert.Equal(t, "|v one|", sx.list[0].list[0].atom)
}

func TestParseSExprErrors(t *testing.T) {
	_, err := parseSExpr("")
	assert.Error(t, err)
	_, err = parseSExpr("((a 1)")
	assert.Error(t, err)
	_, err = parseSExpr(")")
	assert.Error(t, err)
}

func TestParseSExprIgnoresTrailingOutput(t *testing.T) {
	sx, err := parseSExpr("((v_1 0))\nleftover chatter")
	require.NoError(t, err)
	require.Len(t, sx.list, 1)
}

func TestSexprInt(t *testing.T) {
	n, err := sexprInt(sexpr{atom: "17"})
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	neg, err := parseSExpr("(- 4)")
	require.NoError(t, err)
	n, err = sexprInt(neg)
	require.NoError(t, err)
	assert.Equal(t, -4, n)

	_, err = sexprInt(sexpr{atom: "c_1"})
	assert.Error(t, err)
}

func TestSexprBV(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"#b101", 5},
		{"#b00", 0},
		{"#x1f", 31},
		{"(_ bv5 3)", 5},
	}
	for _, c := range cases {
		sx, err := parseSExpr(c.src)
		require.NoError(t, err, c.src)
		n, err := sexprBV(sx)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, n, c.src)
	}

	_, err := sexprBV(sexpr{atom: "3"})
	assert.Error(t, err)
}
