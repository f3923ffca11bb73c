package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"perfbench/internal/bound"
	"perfbench/internal/printer"
	"perfbench/internal/runner"
	"perfbench/internal/timing"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		runs   int
		out    string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "run <program> <bound>",
		Short: "Time a benchmark program in-process",
		Long: fmt.Sprintf(`Runs a benchmark program repeatedly with output discarded and appends
the timings to a data file (stdout by default) in the format "parse" reads.

Programs: %s

Example:
  perfstat run pascal 22 --runs 10 --out c.dat`, strings.Join(printer.Names(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := bound.Parse(args[1])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("runs") {
				runs = a.cfg.Run.Runs
			}
			if !cmd.Flags().Changed("out") {
				out = a.cfg.Run.Out
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
			defer cancel()

			res, err := runner.Run(ctx, args[0], n, runs)
			if err != nil {
				return err
			}

			if err := writeSamples(cmd.OutOrStdout(), out, res); err != nil {
				return err
			}

			if !record {
				return nil
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = s.Record(ctx, "run", []timing.Summary{timing.Summarize(res.Header(), res.Samples)})
			return err
		},
	}

	cmd.Flags().IntVarP(&runs, "runs", "n", 5, "Number of timed runs (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Data file to append to (default stdout)")
	cmd.Flags().BoolVar(&record, "record", false, "Store the summary in the result database")

	return cmd
}

func writeSamples(stdout io.Writer, path string, res *runner.Result) error {
	if path == "" {
		return timing.AppendSamples(stdout, res.Header(), res.Samples)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	if err := timing.AppendSamples(f, res.Header(), res.Samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
