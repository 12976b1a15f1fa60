package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samdwyer/roguelike/internal/records"
)

func newRecordsCmd(f *flags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List past runs, most kills first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			if cfg.RecordsPath == "" {
				return fmt.Errorf("run history is disabled (records path is empty)")
			}

			store, err := records.Open(cmd.Context(), cfg.RecordsPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Top(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printRuns(cmd, runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

func printRuns(cmd *cobra.Command, runs []records.Run) error {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded yet.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KILLS\tTURNS\tOUTCOME\tSEED\tPLAYED\tRUN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\t%s\n",
			r.Kills, r.Turns, r.Outcome, r.Seed, r.UpdatedAt.Format("2006-01-02 15:04"), r.ID)
	}
	return tw.Flush()
}
