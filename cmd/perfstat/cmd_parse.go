package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"perfbench/internal/timing"
)

func (a *app) newParseCmd() *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "parse <data_file>...",
		Short: "Aggregate timing data files",
		Long: `Reads one or more timing data files and prints, for every program with
at least one sample:

  <program>:
  <runs>, <total seconds>, <mean seconds>

Files are read concurrently and merged in argument order.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.PrintErrln(cmd.UsageString())
				return fmt.Errorf("parse requires at least one data file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
			defer cancel()

			sums, err := timing.ParseFiles(ctx, args)
			if err != nil {
				return err
			}
			if err := timing.WriteReport(cmd.OutOrStdout(), sums); err != nil {
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

			stored, err := s.Record(ctx, strings.Join(args, ","), sums)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "recorded %d programs in %s\n", len(stored), s.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Store the summaries in the result database")

	return cmd
}
