package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/history"
	"github.com/tdayris/bigr-utils/internal/pipeline"
)

// newDeployCommand creates the deploy subcommand: install a tagged
// pipeline into the working directory.
func newDeployCommand(application *app) *cobra.Command {
	var (
		tag     string
		workdir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <pipeline>",
		Short: "Deploy a tagged pipeline into the working directory",
		Long: `Clone the requested pipeline at the given tag and install its
config/ and workflow/ directories. Available pipelines:

  ` + strings.Join(pipeline.Known, "\n  "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := pipeline.Deploy(cmd.Context(), name, tag, workdir, force, application.console); err != nil {
				return err
			}

			recordRun(cmd.Context(), application, history.Run{
				Command:    "deploy",
				Source:     name + "@" + tag,
				OutputPath: workdir,
			})
			return nil
		},
	}

	defaultWorkdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&tag, "tag", "t", "latest", "pipeline version tag")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", defaultWorkdir, "directory receiving the pipeline")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force over-writing an existing deployment")

	return cmd
}
