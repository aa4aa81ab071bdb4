package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/benchmark"
	"github.com/tdayris/bigr-utils/internal/history"
)

// newBenchmarkCommand creates the benchmark subcommand: summarize the
// Snakemake benchmark tables of a finished run.
func newBenchmarkCommand(application *app) *cobra.Command {
	var (
		directory  string
		output     string
		html       string
		table      string
		reservedMB float64
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Summarize Snakemake benchmarks into a resource usage report",
		Long: `Search for all benchmark tables under the benchmark directory and
produce a usage report more reliable than seff, as markdown, HTML and a
TSV summary table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := benchmark.Report(directory, output, html, table, reservedMB, force, application.console)
			if err != nil {
				return err
			}

			recordRun(cmd.Context(), application, history.Run{
				Command:    "benchmark",
				Source:     directory,
				OutputPath: output,
			})
			return nil
		},
	}

	workdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&directory, "benchmark", "b", filepath.Join(workdir, "benchmark"), "path to the benchmark directory")
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join(workdir, "resources.md"), "path to the markdown report")
	cmd.Flags().StringVar(&html, "html", filepath.Join(workdir, "resources.html"), "path to the HTML report")
	cmd.Flags().StringVarP(&table, "table", "t", filepath.Join(workdir, "resources.tsv"), "path to the TSV summary")
	cmd.Flags().Float64VarP(&reservedMB, "reserved-mb", "r", 0, "memory reservation in Mb used for efficiency")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force over-writing")

	return cmd
}
