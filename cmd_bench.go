package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/smtcolor/smtcolor/bench"
)

func benchCmd() *cobra.Command {
	var (
		out  string
		jobs int
	)
	cmd := &cobra.Command{
		Use:   "bench <suite.yaml>",
		Short: "run a benchmark suite of reductions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := bench.Load(args[0])
			if err != nil {
				return err
			}
			if jobs > 0 {
				suite.Jobs = jobs
			}
			runner := bench.NewRunner(slog.Default())
			results, err := runner.Run(cmd.Context(), suite)
			if err != nil {
				return err
			}
			if err := bench.WriteTable(os.Stdout, results); err != nil {
				return err
			}
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("could not create %q: %v", out, err)
				}
				defer f.Close()
				if err := bench.WriteCSV(f, results); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write results as CSV to this file")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "override the suite's worker count")
	return cmd
}
