package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// A minimal s-expression reader for engine responses. An sexpr is either an
// atom (atom != "") or a list.
type sexpr struct {
	atom string
	list []sexpr
}

func (s sexpr) String() string {
	if s.atom != "" {
		return s.atom
	}
	parts := make([]string, len(s.list))
	for i, sub := range s.list {
		parts[i] = sub.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func parseSExpr(src string) (sexpr, error) {
	toks := tokenizeSExpr(src)
	sx, rest, err := readSExpr(toks)
	if err != nil {
		return sexpr{}, err
	}
	_ = rest // trailing output (e.g. engine chatter) is ignored
	return sx, nil
}

func tokenizeSExpr(src string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	inQuote := false
	for _, r := range src {
		switch {
		case r == '|':
			inQuote = !inQuote
			cur.WriteRune(r)
		case inQuote:
			cur.WriteRune(r)
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func readSExpr(toks []string) (sexpr, []string, error) {
	if len(toks) == 0 {
		return sexpr{}, nil, fmt.Errorf("unexpected end of s-expression")
	}
	tok := toks[0]
	if tok == "(" {
		rest := toks[1:]
		var list []sexpr
		for {
			if len(rest) == 0 {
				return sexpr{}, nil, fmt.Errorf("unbalanced s-expression")
			}
			if rest[0] == ")" {
				return sexpr{list: list}, rest[1:], nil
			}
			sub, tail, err := readSExpr(rest)
			if err != nil {
				return sexpr{}, nil, err
			}
			list = append(list, sub)
			rest = tail
		}
	}
	if tok == ")" {
		return sexpr{}, nil, fmt.Errorf("unexpected closing parenthesis")
	}
	return sexpr{atom: tok}, toks[1:], nil
}

// sexprInt reads an integer value, including the (- n) negative form.
func sexprInt(sx sexpr) (int, error) {
	if sx.atom != "" {
		n, err := strconv.Atoi(sx.atom)
		if err != nil {
			return 0, fmt.Errorf("not an integer value: %q", sx.atom)
		}
		return n, nil
	}
	if len(sx.list) == 2 && sx.list[0].atom == "-" {
		n, err := sexprInt(sx.list[1])
		return -n, err
	}
	return 0, fmt.Errorf("not an integer value: %q", sx)
}

// sexprBV reads a bit-vector value in any of the common engine spellings:
// #b0101, #x1f, or (_ bv5 3).
func sexprBV(sx sexpr) (int, error) {
	if sx.atom != "" {
		switch {
		case strings.HasPrefix(sx.atom, "#b"):
			n, err := strconv.ParseInt(sx.atom[2:], 2, 64)
			return int(n), err
		case strings.HasPrefix(sx.atom, "#x"):
			n, err := strconv.ParseInt(sx.atom[2:], 16, 64)
			return int(n), err
		}
		return 0, fmt.Errorf("not a bit-vector value: %q", sx.atom)
	}
	if len(sx.list) == 3 && sx.list[0].atom == "_" && strings.HasPrefix(sx.list[1].atom, "bv") {
		n, err := strconv.Atoi(sx.list[1].atom[2:])
		if err != nil {
			return 0, fmt.Errorf("not a bit-vector value: %q", sx)
		}
		return n, nil
	}
	return 0, fmt.Errorf("not a bit-vector value: %q", sx)
}
