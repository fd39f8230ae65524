// Command smtcolor decides graph k-colorability by reduction to
// satisfiability over a chosen SMT theory, delegating the decision to an
// external engine or the embedded gophersat backend. The reductions exist
// to stress theory solvers, not to color graphs fast.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/smtcolor/smtcolor/colorer"
	"github.com/smtcolor/smtcolor/reduction"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, sty().bad.Render(err.Error()))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "smtcolor",
		Short: "graph k-colorability reductions over SMT theories",
		Long: "smtcolor reduces graph k-colorability to satisfiability over one of nine\n" +
			"SMT theories (" + theoryList() + ")\n" +
			"and hands the formula to a solver backend (" + strings.Join(reduction.Solvers(), ", ") + ").",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log phase progress")
	root.AddCommand(solveCmd(), benchCmd())
	return root
}

func theoryList() string {
	names := make([]string, 0, 9)
	for _, t := range colorer.Theories() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// styles carries the terminal styling of the report sections. All styles
// are blank when stdout is not a terminal, so redirected output stays
// plain text.
type styles struct {
	section lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	detail  lipgloss.Style
	timing  lipgloss.Style
}

func sty() styles {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		plain := lipgloss.NewStyle()
		return styles{section: plain, good: plain, bad: plain, detail: plain, timing: plain}
	}
	return styles{
		section: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		timing:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
}
