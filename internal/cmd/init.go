package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/genomes"
	"github.com/tdayris/bigr-utils/internal/history"
	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/pipeline"
	"github.com/tdayris/bigr-utils/internal/sbatch"
	"github.com/tdayris/bigr-utils/internal/treeview"
)

// newInitCommand creates the init subcommand: deploy a pipeline and
// prepare everything it needs to run in one go.
func newInitCommand(application *app) *cobra.Command {
	var (
		tag      string
		workdir  string
		memory   string
		walltime string
		params   []string
		showTree bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init <pipeline>",
		Short: "Deploy a pipeline and prepare its whole run directory",
		Long: `Chain deploy, genomes, configure and sbatch for the given
pipeline. The sample table is not built here: run 'bigr-utils samples'
against your sequencing delivery first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			console := application.console

			genomesCSV := filepath.Join(workdir, "config", "genomes.csv")
			samplesCSV := filepath.Join(workdir, "config", "samples.csv")
			configYAML := filepath.Join(workdir, "config", "config.yaml")
			snakefile := filepath.Join(workdir, "workflow", "Snakefile")
			launcher := filepath.Join(workdir, "scripts", "sbatch.sh")

			if err := pipeline.Deploy(cmd.Context(), name, tag, workdir, force, console); err != nil {
				return err
			}

			if err := genomes.Write(genomesCSV, false, force, console); err != nil {
				return err
			}

			if _, err := os.Stat(samplesCSV); err != nil {
				console.Report(logger.LevelWarn, "no sample table at %s yet, run 'bigr-utils samples' before launching", samplesCSV)
			}

			identity, err := pipeline.IdentityFromSnakefile(snakefile)
			if err != nil {
				return err
			}
			cfg := pipeline.Config{
				Genomes:  genomesCSV,
				Samples:  samplesCSV,
				Pipeline: identity,
				Params: map[string]interface{}{
					"fair_fastqc_multiqc_fastq_screen_config": fastqScreenConfig,
				},
			}
			for key, value := range pipeline.ParseParams(params) {
				cfg.Params[key] = value
			}
			if err := pipeline.WriteConfig(configYAML, cfg, force, console); err != nil {
				return err
			}

			opts := sbatch.Options{
				Workdir:        workdir,
				Profile:        application.settings.Profile,
				SnakemakeCache: application.settings.SnakemakeCache,
				CondaCache:     application.settings.CondaCache,
				CondaEnv:       application.settings.CondaEnv,
				Memory:         memory,
				Time:           walltime,
			}
			if err := sbatch.Write(launcher, opts, identity.Name, identity.Tag, force, console); err != nil {
				return err
			}

			if showTree {
				if err := treeview.Render(cmd.OutOrStdout(), workdir, treeview.Options{}); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Launch the pipeline with: sbatch %s\n", launcher)

			recordRun(cmd.Context(), application, history.Run{
				Command:    "init",
				Source:     name + "@" + tag,
				OutputPath: workdir,
			})
			return nil
		},
	}

	defaultWorkdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&tag, "tag", "t", "latest", "pipeline version tag")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", defaultWorkdir, "directory receiving the pipeline")
	cmd.Flags().StringVarP(&memory, "mem", "m", "1G", "amount of memory for snakemake")
	cmd.Flags().StringVar(&walltime, "time", "0-05:59:59", "maximum walltime as D-H:M:S")
	cmd.Flags().StringArrayVarP(&params, "params", "p", nil, "a 'key=value' pipeline parameter, repeatable")
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the run directory tree when done")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force over-writing an existing deployment")

	return cmd
}
