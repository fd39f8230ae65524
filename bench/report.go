package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"
)

var csvHeader = []string{
	"run_id", "graph", "solver", "theory", "k",
	"status", "vertices", "edges",
	"read_s", "reduction_s", "solve_s", "total_s", "error",
}

// WriteCSV writes the results as a CSV table, one row per reduction.
// Durations are seconds with microsecond precision.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("could not write CSV header: %v", err)
	}
	for _, r := range results {
		row := []string{
			r.RunID, r.Graph, r.Solver, string(r.Theory), strconv.Itoa(r.K),
			r.Status, strconv.Itoa(r.Vertices), strconv.Itoa(r.Edges),
			seconds(r.Read), seconds(r.Reduction), seconds(r.Solve), seconds(r.Total),
			r.Err,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write CSV row: %v", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned text table of the results.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GRAPH\tSOLVER\tTHEORY\tK\tSTATUS\tREDUCTION\tSOLVE\tTOTAL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.Graph, r.Solver, r.Theory, r.K, r.Status,
			seconds(r.Reduction), seconds(r.Solve), seconds(r.Total))
	}
	return tw.Flush()
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}
