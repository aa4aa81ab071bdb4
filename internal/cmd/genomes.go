package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/genomes"
	"github.com/tdayris/bigr-utils/internal/history"
)

// newGenomesCommand creates the genomes subcommand: write the genomes.csv
// reference table.
func newGenomesCommand(application *app) *cobra.Command {
	var (
		output string
		empty  bool
		check  bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "genomes",
		Short: "Write the genome reference table",
		Long: `Write the genomes.csv table listing the organisms available on
the cluster, with the pre-built reference resources of each one. With
--empty only the identity columns are written, so the pipeline resolves
resources itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				if err := genomes.ValidatePaths(application.console); err != nil {
					return err
				}
			}

			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := genomes.Write(output, empty, force, application.console); err != nil {
				return err
			}

			recordRun(cmd.Context(), application, history.Run{
				Command:    "genomes",
				Source:     "builtin",
				OutputPath: output,
			})
			return nil
		},
	}

	workdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join(workdir, "config", "genomes.csv"), "path to the output genome table")
	cmd.Flags().BoolVarP(&empty, "empty", "e", false, "only write the identity columns")
	cmd.Flags().BoolVarP(&check, "check", "c", false, "verify reference resources exist before writing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force over-writing")

	return cmd
}
