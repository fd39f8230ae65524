// Package bench runs whole suites of reductions and collects their
// timings. A suite is the cross product of graphs, color counts and
// (solver, theory) pairs declared in a YAML file; every cell is an
// independent reduction, so the suite runs them concurrently with a
// bounded worker count.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/graph"
	"github.com/smtcolor/smtcolor/reduction"
)

// Duration wraps time.Duration with YAML decoding from strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	dur, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("could not parse duration %q: %v", raw, err)
	}
	*d = Duration(dur)
	return nil
}

// A RunSpec names one solver and the theories to exercise it with.
type RunSpec struct {
	Solver   string           `yaml:"solver"`
	Theories []colorer.Theory `yaml:"theories"`
}

// A Suite is the declarative description of a benchmark campaign.
type Suite struct {
	// Timeout bounds each solve phase; zero means no limit.
	Timeout Duration `yaml:"timeout"`
	// Jobs bounds concurrent reductions; zero means one.
	Jobs int `yaml:"jobs"`
	// Repeat runs every cell this many times; zero means once.
	Repeat int `yaml:"repeat"`
	// Graphs are DOT file paths, relative to the suite file's caller.
	Graphs []string `yaml:"graphs"`
	// Colors are the k values to try.
	Colors []int     `yaml:"colors"`
	Runs   []RunSpec `yaml:"runs"`
}

// Load reads a suite from a YAML file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read suite %q: %v", path, err)
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not parse suite %q: %v", path, err)
	}
	if len(s.Graphs) == 0 || len(s.Colors) == 0 || len(s.Runs) == 0 {
		return nil, fmt.Errorf("suite %q needs graphs, colors and runs", path)
	}
	if s.Jobs < 1 {
		s.Jobs = 1
	}
	if s.Repeat < 1 {
		s.Repeat = 1
	}
	return &s, nil
}

// A Result is one row of the benchmark table.
type Result struct {
	RunID  string
	Graph  string
	Solver string
	Theory colorer.Theory
	K      int

	Status          string
	Vertices, Edges int

	Read, Reduction, Solve, Total time.Duration
	Err                           string
}

// A Runner executes suites.
type Runner struct {
	log  *slog.Logger
	orch *reduction.Orchestrator
}

// NewRunner returns a runner logging to the given logger (nil for the
// default).
func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log, orch: reduction.NewOrchestrator(log)}
}

type task struct {
	graphPath string
	g         *graph.Graph
	readTime  time.Duration
	solver    string
	theory    colorer.Theory
	k         int
}

// Run executes every cell of the suite. Pairs outside the capability
// matrix, and k values a theory rejects, are skipped with a logged reason
// rather than failing the campaign. Engine failures and timeouts become
// rows; only I/O problems abort the run.
func (r *Runner) Run(ctx context.Context, s *Suite) ([]Result, error) {
	graphs := make(map[string]*graph.Graph, len(s.Graphs))
	readTimes := make(map[string]time.Duration, len(s.Graphs))
	for _, path := range s.Graphs {
		start := time.Now()
		g, err := graph.ParseDOTFile(path)
		if err != nil {
			return nil, err
		}
		graphs[path] = g
		readTimes[path] = time.Since(start)
	}

	var tasks []task
	for _, path := range s.Graphs {
		for _, spec := range s.Runs {
			for _, th := range spec.Theories {
				for _, k := range s.Colors {
					if !reduction.KnownSolver(spec.Solver) {
						r.log.Warn("skipping unknown solver", "solver", spec.Solver)
						continue
					}
					if !reduction.Supports(spec.Solver, th) {
						r.log.Warn("skipping unsupported pair", "solver", spec.Solver, "theory", th)
						continue
					}
					if _, err := colorer.NewDescriptor(th, k); err != nil {
						r.log.Warn("skipping invalid configuration", "theory", th, "k", k, "reason", err)
						continue
					}
					repeats := s.Repeat
					if repeats < 1 {
						repeats = 1
					}
					for rep := 0; rep < repeats; rep++ {
						tasks = append(tasks, task{
							graphPath: path,
							g:         graphs[path],
							readTime:  readTimes[path],
							solver:    spec.Solver,
							theory:    th,
							k:         k,
						})
					}
				}
			}
		}
	}

	results := make([]Result, len(tasks))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(s.Jobs)
	for i, t := range tasks {
		i, t := i, t
		grp.Go(func() error {
			results[i] = r.runOne(grpCtx, t, time.Duration(s.Timeout))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, t task, timeout time.Duration) Result {
	res := Result{
		RunID:  uuid.NewString(),
		Graph:  t.graphPath,
		Solver: t.solver,
		Theory: t.theory,
		K:      t.k,
	}
	report, err := r.orch.Run(ctx, reduction.Request{
		Graph:    t.g,
		K:        t.k,
		Solver:   t.solver,
		Theory:   t.theory,
		Timeout:  timeout,
		ReadTime: t.readTime,
	})
	if report != nil {
		res.Status = report.Outcome.Status.String()
		res.Vertices = report.Order
		res.Edges = report.Size
		res.Read = report.Timings.Read
		res.Reduction = report.Timings.Reduction
		res.Solve = report.Timings.Solve
		res.Total = report.Timings.Total
	}
	if err != nil {
		if res.Status == "" {
			res.Status = "ERROR"
		}
		res.Err = err.Error()
	}
	return res
}
