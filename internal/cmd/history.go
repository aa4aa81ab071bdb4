package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/history"
)

// newHistoryCommand creates the history subcommand: list journaled runs.
func newHistoryCommand(application *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent tool runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewStore(application.settings.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs journaled yet")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "DATE\tCOMMAND\tSOURCE\tORGANISM\tSAMPLES\tOUTPUT")
			for _, run := range runs {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%d\t%s\n",
					run.CreatedAt.Format("2006-01-02 15:04"),
					run.Command, run.Source, run.Organism, run.SampleCount, run.OutputPath)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")

	return cmd
}
