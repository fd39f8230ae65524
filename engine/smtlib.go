package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/smtcolor/smtcolor/term"
)

// engineConfig describes how to invoke one external SMT engine binary.
// Every engine here consumes an SMT-LIB v2 script on stdin.
type engineConfig struct {
	bin  string
	args []string
}

var processEngines = map[string]engineConfig{
	"z3":        {bin: "z3", args: []string{"-in", "-smt2"}},
	"mathsat":   {bin: "mathsat"},
	"yices":     {bin: "yices-smt2"},
	"boolector": {bin: "boolector", args: []string{"--smt2"}},
}

// processSolver drives an external engine through a child process. The
// process is killed when the context expires, so a timeout hard-stops the
// engine's computation rather than abandoning it.
type processSolver struct {
	name string
	cfg  engineConfig
}

func (s *processSolver) Name() string { return s.name }

func (s *processSolver) Solve(ctx context.Context, f *term.Formula, opts Options) (Outcome, error) {
	script := f.Script(opts.WantModel)
	cmd := exec.CommandContext(ctx, s.cfg.bin, s.cfg.args...)
	cmd.Stdin = strings.NewReader(script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Outcome{Status: Timeout}, nil
	}
	out := stdout.String()
	if runErr != nil && strings.TrimSpace(out) == "" {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = runErr.Error()
		}
		return Outcome{Status: Failed, Reason: msg},
			errors.Wrapf(runErr, "could not run %s", s.cfg.bin)
	}
	return parseEngineOutput(f, opts, out)
}

// parseEngineOutput reads the engine's answer: a status token followed, on
// sat with models requested, by a get-value response.
func parseEngineOutput(f *term.Formula, opts Options, out string) (Outcome, error) {
	rest := out
	var status string
	for status == "" {
		line, tail, _ := strings.Cut(rest, "\n")
		line = strings.TrimSpace(line)
		switch {
		case line == "sat" || line == "unsat" || line == "unknown":
			status = line
		case strings.HasPrefix(line, "(error"):
			return Outcome{Status: Failed, Reason: line},
				errors.Errorf("engine error: %s", line)
		case tail == "" && line == "":
			return Outcome{Status: Failed, Reason: "no answer from engine"},
				errors.New("engine produced no answer")
		}
		rest = tail
	}

	switch status {
	case "unsat":
		return Outcome{Status: Unsat}, nil
	case "unknown":
		// Distinct from unsat: the engine gave up without deciding.
		return Outcome{Status: Failed, Reason: "engine returned unknown"},
			errors.New("engine returned unknown")
	}

	o := Outcome{Status: Sat}
	if !opts.WantModel {
		return o, nil
	}
	model, err := parseGetValue(f, rest)
	if err != nil {
		return Outcome{Status: Failed, Reason: err.Error()}, err
	}
	o.Model = model
	return o, nil
}

// parseGetValue decodes the ((term value) ...) response into per-vertex
// colors according to the formula's value mode.
func parseGetValue(f *term.Formula, resp string) (map[string]int, error) {
	sx, err := parseSExpr(resp)
	if err != nil {
		return nil, fmt.Errorf("could not parse model response: %v", err)
	}
	if sx.atom != "" || len(sx.list) != len(f.Vertices) {
		return nil, fmt.Errorf("model response has %d bindings, want %d", len(sx.list), len(f.Vertices))
	}
	model := make(map[string]int, len(f.Vertices))
	canon := newCanonicalizer()
	for i, pair := range sx.list {
		if len(pair.list) != 2 {
			return nil, fmt.Errorf("malformed model binding %q", pair)
		}
		val := pair.list[1]
		v := f.Vertices[i].Vertex
		switch f.Mode {
		case term.ModeInt:
			n, err := sexprInt(val)
			if err != nil {
				return nil, fmt.Errorf("vertex %s: %v", v, err)
			}
			model[v] = n
		case term.ModeBV:
			n, err := sexprBV(val)
			if err != nil {
				return nil, fmt.Errorf("vertex %s: %v", v, err)
			}
			model[v] = n
		case term.ModeCanonical:
			model[v] = canon.id(val.String())
		}
	}
	return model, nil
}

// canonicalizer numbers distinct opaque values in first-appearance order.
// Uninterpreted elements, arrays and sets have no integer reading; what
// matters for a coloring is only which vertices got the same value.
type canonicalizer struct {
	ids map[string]int
}

func newCanonicalizer() *canonicalizer {
	return &canonicalizer{ids: make(map[string]int)}
}

func (c *canonicalizer) id(val string) int {
	if id, ok := c.ids[val]; ok {
		return id
	}
	id := len(c.ids)
	c.ids[val] = id
	return id
}
