package bench

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smtcolor/smtcolor/colorer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const triangleDOT = `graph triangle {
	1 -- 2;
	2 -- 3;
	3 -- 1;
}`

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	require.NoError(t, yaml.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	assert.Error(t, yaml.Unmarshal([]byte(`"soon"`), &d))
}

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.yaml", `
timeout: 30s
jobs: 4
graphs:
  - graphs/triangle.dot
colors: [2, 3]
runs:
  - solver: gopher
    theories: [LIA, BV]
  - solver: z3
    theories: [NLA]
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, time.Duration(s.Timeout))
	assert.Equal(t, 4, s.Jobs)
	assert.Equal(t, []string{"graphs/triangle.dot"}, s.Graphs)
	assert.Equal(t, []int{2, 3}, s.Colors)
	require.Len(t, s.Runs, 2)
	assert.Equal(t, "gopher", s.Runs[0].Solver)
	assert.Equal(t, []colorer.Theory{colorer.LIA, colorer.BV}, s.Runs[0].Theories)
}

func TestLoadSuiteDefaultsJobs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.yaml", `
graphs: [g.dot]
colors: [3]
runs:
  - solver: gopher
    theories: [LIA]
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Jobs)
	assert.Equal(t, 1, s.Repeat)
	assert.Zero(t, time.Duration(s.Timeout))
}

func TestLoadSuiteRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"nographs.yaml": "colors: [3]\nruns: [{solver: gopher, theories: [LIA]}]\n",
		"nocolors.yaml": "graphs: [g.dot]\nruns: [{solver: gopher, theories: [LIA]}]\n",
		"noruns.yaml":   "graphs: [g.dot]\ncolors: [3]\n",
		"bad.yaml":      "colors: [\n",
	} {
		path := writeFile(t, dir, name, content)
		_, err := Load(path)
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRunSuite(t *testing.T) {
	dir := t.TempDir()
	dot := writeFile(t, dir, "triangle.dot", triangleDOT)

	s := &Suite{
		Jobs:   2,
		Graphs: []string{dot},
		Colors: []int{2, 3},
		Runs: []RunSpec{
			{Solver: "gopher", Theories: []colorer.Theory{colorer.LIA, colorer.BV}},
		},
	}
	results, err := NewRunner(nil).Run(context.Background(), s)
	require.NoError(t, err)

	// LIA runs at k=2 and k=3; BV only at k=2, since 3 is not a power of
	// two and the cell is skipped.
	require.Len(t, results, 3)

	byKey := map[string]Result{}
	for _, r := range results {
		assert.NotEmpty(t, r.RunID)
		assert.Equal(t, dot, r.Graph)
		assert.Equal(t, 3, r.Vertices)
		assert.Equal(t, 3, r.Edges)
		assert.Empty(t, r.Err)
		byKey[string(r.Theory)+"/"+strconv.Itoa(r.K)] = r
	}
	assert.Equal(t, "UNSAT", byKey["LIA/2"].Status)
	assert.Equal(t, "SAT", byKey["LIA/3"].Status)
	assert.Equal(t, "UNSAT", byKey["BV/2"].Status)
}

func TestRunSuiteRepeats(t *testing.T) {
	dir := t.TempDir()
	dot := writeFile(t, dir, "triangle.dot", triangleDOT)

	s := &Suite{
		Jobs:   1,
		Repeat: 3,
		Graphs: []string{dot},
		Colors: []int{3},
		Runs:   []RunSpec{{Solver: "gopher", Theories: []colorer.Theory{colorer.LIA}}},
	}
	results, err := NewRunner(nil).Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := map[string]bool{}
	for _, r := range results {
		assert.Equal(t, "SAT", r.Status)
		ids[r.RunID] = true
	}
	assert.Len(t, ids, 3, "every repetition gets its own run id")
}

func TestRunSuiteSkipsImpossibleCells(t *testing.T) {
	dir := t.TempDir()
	dot := writeFile(t, dir, "triangle.dot", triangleDOT)

	s := &Suite{
		Jobs:   1,
		Graphs: []string{dot},
		Colors: []int{3},
		Runs: []RunSpec{
			{Solver: "nosuch", Theories: []colorer.Theory{colorer.LIA}},
			{Solver: "yices", Theories: []colorer.Theory{colorer.SUF}},
			{Solver: "gopher", Theories: []colorer.Theory{colorer.LIA}},
		},
	}
	results, err := NewRunner(nil).Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SAT", results[0].Status)
}

func TestRunSuiteFailsOnMissingGraph(t *testing.T) {
	s := &Suite{
		Jobs:   1,
		Graphs: []string{filepath.Join(t.TempDir(), "missing.dot")},
		Colors: []int{3},
		Runs:   []RunSpec{{Solver: "gopher", Theories: []colorer.Theory{colorer.LIA}}},
	}
	_, err := NewRunner(nil).Run(context.Background(), s)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	results := []Result{{
		RunID: "id-1", Graph: "g.dot", Solver: "gopher", Theory: colorer.LIA, K: 3,
		Status: "SAT", Vertices: 3, Edges: 3,
		Read: 1500 * time.Microsecond, Reduction: time.Millisecond,
		Solve: 2 * time.Millisecond, Total: 3 * time.Millisecond,
	}}
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, results))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"run_id,graph,solver,theory,k,status,vertices,edges,read_s,reduction_s,solve_s,total_s,error",
		lines[0])
	assert.Equal(t,
		"id-1,g.dot,gopher,LIA,3,SAT,3,3,0.001500,0.001000,0.002000,0.003000,",
		lines[1])
}

func TestWriteTable(t *testing.T) {
	results := []Result{{
		Graph: "g.dot", Solver: "gopher", Theory: colorer.BV, K: 4,
		Status: "UNSAT", Solve: time.Millisecond,
	}}
	var sb strings.Builder
	require.NoError(t, WriteTable(&sb, results))

	out := sb.String()
	assert.Contains(t, out, "GRAPH")
	assert.Contains(t, out, "g.dot")
	assert.Contains(t, out, "UNSAT")
	assert.Contains(t, out, "0.001000")
}
