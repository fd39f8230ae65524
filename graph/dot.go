package graph

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The DOT subset accepted here: an undirected "graph" block containing node
// statements and "--" edge chains. Attribute blocks are parsed and dropped;
// labels, positions and styling have no bearing on colorability.

var dotLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `//[^\n]*|#[^\n]*`},
	{Name: "Edgeop", Pattern: `--|->`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "String", Pattern: `"(\\.|[^"])*"`},
	{Name: "Punct", Pattern: `[{}\[\];,=]`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

type dotGraph struct {
	Strict string    `parser:"@'strict'?"`
	Kind   string    `parser:"@('graph' | 'digraph')"`
	Name   string    `parser:"(@Ident | @Number | @String)?"`
	Stmts  []dotStmt `parser:"'{' @@* '}'"`
}

type dotStmt struct {
	Head  string    `parser:"(@Ident | @Number | @String)"`
	Tail  []dotHop  `parser:"@@*"`
	Attrs []dotAttr `parser:"('[' @@ (','? @@)* ']')? ';'?"`
}

type dotHop struct {
	Op string `parser:"@Edgeop"`
	To string `parser:"(@Ident | @Number | @String)"`
}

type dotAttr struct {
	Key   string `parser:"(@Ident | @String)"`
	Value string `parser:"'=' (@Ident | @Number | @String)"`
}

var dotParser = participle.MustBuild[dotGraph](
	participle.Lexer(dotLexer),
	participle.UseLookahead(2),
)

// ParseDOT reads the DOT description of an undirected graph.
// Directed graphs and directed edges are rejected.
func ParseDOT(name string, r io.Reader) (*Graph, error) {
	ast, err := dotParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("could not parse DOT input: %v", err)
	}
	if ast.Kind == "digraph" {
		return nil, fmt.Errorf("directed graphs are not colorable input: %q is a digraph", name)
	}
	g := New()
	for _, stmt := range ast.Stmts {
		head := unquoteID(stmt.Head)
		if len(stmt.Tail) == 0 && isDotKeyword(stmt.Head) {
			continue // graph/node/edge default-attribute statement
		}
		g.AddVertex(VertexID(head))
		prev := head
		for _, hop := range stmt.Tail {
			if hop.Op != "--" {
				return nil, fmt.Errorf("directed edge %s -> %s in undirected graph", prev, hop.To)
			}
			to := unquoteID(hop.To)
			g.AddEdge(VertexID(prev), VertexID(to))
			prev = to
		}
	}
	return g, nil
}

// ParseDOTFile reads and parses the DOT file at path.
func ParseDOTFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %v", path, err)
	}
	defer f.Close()
	return ParseDOT(path, f)
}

func isDotKeyword(s string) bool {
	switch s {
	case "graph", "node", "edge":
		return true
	}
	return false
}

func unquoteID(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
	}
	return s
}
