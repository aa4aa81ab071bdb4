package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/history"
	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/pipeline"
)

// fastqScreenConfig is the shared FastqScreen database on the cluster,
// always forwarded to pipelines embedding fair_fastqc_multiqc.
const fastqScreenConfig = "/mnt/beegfs/database/bioinfo/Index_DB/Fastq_Screen/0.14.0/fastq_screen.conf"

// newConfigureCommand creates the configure subcommand: assemble the
// config.yaml consumed by a deployed pipeline.
func newConfigureCommand(application *app) *cobra.Command {
	var (
		samplesPath string
		genomesPath string
		workflow    string
		output      string
		params      []string
		force       bool
	)

	cmd := &cobra.Command{
		Use:     "configure",
		Aliases: []string{"config"},
		Short:   "Create a configuration file suitable for the pipelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range []string{samplesPath, genomesPath, workflow} {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("could not find %s: %w", path, err)
				}
			}

			identity, err := pipeline.IdentityFromSnakefile(workflow)
			if err != nil {
				return err
			}
			if identity.Name == "" {
				application.console.Report(logger.LevelWarn, "could not find pipeline version in %s", workflow)
			}

			cfg := pipeline.Config{
				Genomes:  genomesPath,
				Samples:  samplesPath,
				Pipeline: identity,
				Params: map[string]interface{}{
					"fair_fastqc_multiqc_fastq_screen_config": fastqScreenConfig,
				},
			}
			for key, value := range pipeline.ParseParams(params) {
				cfg.Params[key] = value
			}

			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := pipeline.WriteConfig(output, cfg, force, application.console); err != nil {
				return err
			}

			recordRun(cmd.Context(), application, history.Run{
				Command:    "configure",
				Source:     workflow,
				OutputPath: output,
			})
			return nil
		},
	}

	workdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&samplesPath, "samples", "s", filepath.Join(workdir, "config", "samples.csv"), "path to the sample table")
	cmd.Flags().StringVarP(&genomesPath, "genomes", "g", filepath.Join(workdir, "config", "genomes.csv"), "path to the genome table")
	cmd.Flags().StringVarP(&workflow, "workflow", "w", filepath.Join(workdir, "workflow", "Snakefile"), "path to the deployed Snakefile")
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join(workdir, "config", "config.yaml"), "path to the output configuration")
	cmd.Flags().StringArrayVarP(&params, "params", "p", nil, "a 'key=value' pipeline parameter, repeatable")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force over-writing")

	return cmd
}
