package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/commedia/internal/annotate"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <csv>",
		Short: "Print summary statistics of an annotation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := annotate.LoadRecords(a.fs, args[0])
			if err != nil {
				return err
			}
			sum, err := annotate.Summarize(recs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d records\n", args[0], len(recs))
			if len(recs) == 0 {
				return nil
			}
			annotate.PrintSummary(w, sum)
			return nil
		},
	}
}
