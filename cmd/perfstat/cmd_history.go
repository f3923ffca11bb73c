package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [program]",
		Short: "Show recorded results, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var program string
			if len(args) == 1 {
				program = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
			defer cancel()

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.History(ctx, program, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded results")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RECORDED\tPROGRAM\tRUNS\tTOTAL\tMEAN\tSOURCE")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.6f\t%.6f\t%s\n",
					r.RecordedAt.Format("2006-01-02 15:04:05"), r.Program, r.Runs, r.Total, r.Mean, r.Source)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum rows to show (0 = all)")

	return cmd
}
