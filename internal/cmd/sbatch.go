package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/history"
	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/pipeline"
	"github.com/tdayris/bigr-utils/internal/sbatch"
)

// newSbatchCommand creates the sbatch subcommand: write the SLURM
// launcher script of a deployed pipeline.
func newSbatchCommand(application *app) *cobra.Command {
	var (
		workdir    string
		output     string
		configPath string
		memory     string
		walltime   string
		jobName    string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "sbatch",
		Short: "Write the SLURM launcher script for a deployed pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The pipeline identity only names the job, a missing
			// configuration is not fatal.
			identity := pipeline.Identity{}
			if cfg, err := pipeline.LoadConfig(configPath); err == nil {
				identity = cfg.Pipeline
			} else {
				application.console.Report(logger.LevelWarn, "no pipeline configuration at %s, using a generic job name", configPath)
			}

			opts := sbatch.Options{
				Workdir:        workdir,
				Profile:        application.settings.Profile,
				SnakemakeCache: application.settings.SnakemakeCache,
				CondaCache:     application.settings.CondaCache,
				CondaEnv:       application.settings.CondaEnv,
				Memory:         memory,
				Time:           walltime,
				JobName:        jobName,
			}
			if err := sbatch.Write(output, opts, identity.Name, identity.Tag, force, application.console); err != nil {
				return err
			}

			recordRun(cmd.Context(), application, history.Run{
				Command:    "sbatch",
				Source:     workdir,
				OutputPath: output,
			})
			return nil
		},
	}

	defaultWorkdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&workdir, "workdir", "w", defaultWorkdir, "pipeline working directory")
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join(defaultWorkdir, "scripts", "sbatch.sh"), "path to the output launcher script")
	cmd.Flags().StringVarP(&configPath, "configuration", "c", filepath.Join(defaultWorkdir, "config", "config.yaml"), "path to the pipeline configuration")
	cmd.Flags().StringVarP(&memory, "mem", "m", "1G", "amount of memory for snakemake")
	cmd.Flags().StringVarP(&walltime, "time", "t", "0-05:59:59", "maximum walltime as D-H:M:S")
	cmd.Flags().StringVarP(&jobName, "job-name", "j", "", "override the generated job name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force script over-writing")

	return cmd
}
