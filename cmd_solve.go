package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/engine"
	"github.com/smtcolor/smtcolor/graph"
	"github.com/smtcolor/smtcolor/reduction"
)

func solveCmd() *cobra.Command {
	var (
		k         int
		solver    string
		theory    string
		timeout   time.Duration
		noModel   bool
		noFormula bool
	)
	cmd := &cobra.Command{
		Use:   "solve <file.dot>",
		Short: "decide whether one graph is k-colorable under one theory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			readStart := time.Now()
			g, err := graph.ParseDOTFile(args[0])
			if err != nil {
				return err
			}
			readTime := time.Since(readStart)

			orch := reduction.NewOrchestrator(slog.Default())
			report, err := orch.Run(cmd.Context(), reduction.Request{
				Graph:       g,
				K:           k,
				Solver:      solver,
				Theory:      colorer.Theory(theory),
				Timeout:     timeout,
				WantModel:   !noModel,
				WantFormula: !noFormula,
				ReadTime:    readTime,
			})
			if err != nil {
				return err
			}
			if report.Outcome.Status == engine.Timeout {
				fmt.Println(sty().bad.Render("Timeout."))
				os.Exit(1)
			}
			printReport(report, !noModel)
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "colors", "k", 3, "number of colors")
	cmd.Flags().StringVarP(&solver, "solver", "s", "gopher", "solver backend")
	cmd.Flags().StringVarP(&theory, "theory", "t", "LIA", "background theory")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "solve-phase timeout (0 = none)")
	cmd.Flags().BoolVar(&noModel, "no-model", false, "only decide; do not extract a coloring")
	cmd.Flags().BoolVar(&noFormula, "no-formula", false, "do not print the formula")
	return cmd
}

func printReport(report *reduction.Report, wantModel bool) {
	st := sty()
	if len(report.Formula) > 0 {
		fmt.Println(st.section.Render("\n== Formula =="))
		for _, a := range report.Formula {
			fmt.Println(a)
		}
	}

	fmt.Println(st.section.Render("\n== Output =="))
	switch report.Outcome.Status {
	case engine.Sat:
		if wantModel {
			for _, v := range sortedVertices(report.Outcome.Model) {
				fmt.Printf("%s: %d\n", v, report.Outcome.Model[v])
			}
		}
		fmt.Printf("Result: %s\n", st.good.Render("Colorable"))
	case engine.Unsat:
		fmt.Printf("Result: %s\n", st.good.Render("Not Colorable"))
	}

	fmt.Println(st.section.Render("\n== Graph Details =="))
	fmt.Printf("Number of nodes: %s\n", st.detail.Render(strconv.Itoa(report.Order)))
	fmt.Printf("Number of edges: %s\n", st.detail.Render(strconv.Itoa(report.Size)))

	fmt.Println(st.section.Render("\n== Performance Timings =="))
	fmt.Printf("Read file time          : %s\n", st.timing.Render(renderSeconds(report.Timings.Read)))
	fmt.Printf("Reduction creation time : %s\n", st.timing.Render(renderSeconds(report.Timings.Reduction)))
	fmt.Printf("Solving time            : %s\n", st.timing.Render(renderSeconds(report.Timings.Solve)))
	fmt.Printf("Total time              : %s\n", st.timing.Render(renderSeconds(report.Timings.Total)))
}

// sortedVertices orders vertex names numerically when every name is a
// number, lexicographically otherwise.
func sortedVertices(model map[string]int) []string {
	names := make([]string, 0, len(model))
	for v := range model {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool {
		ni, erri := strconv.Atoi(names[i])
		nj, errj := strconv.Atoi(names[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return names[i] < names[j]
	})
	return names
}

func renderSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f seconds", d.Seconds())
}
