package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/treeview"
)

// newTreeCommand creates the tree subcommand: print an annotated view of
// a pipeline working directory.
func newTreeCommand(application *app) *cobra.Command {
	var (
		directory  string
		skipHidden bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Produce an annotated tree of the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return treeview.Render(cmd.OutOrStdout(), directory, treeview.Options{SkipHidden: skipHidden})
		},
	}

	workdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&directory, "directory", "d", workdir, "directory to display")
	cmd.Flags().BoolVarP(&skipHidden, "skip-hidden", "s", false, "ignore hidden files and directories")

	return cmd
}
