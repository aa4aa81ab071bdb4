// Package cmd wires the bigr-utils subcommands together.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tdayris/bigr-utils/internal/config"
	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/samples"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// app carries the state shared by every subcommand: the merged tool
// settings and the console reporter. It is populated by the root
// PersistentPreRunE so subcommands never load configuration themselves.
type app struct {
	settings *config.Settings
	console  logger.Reporter

	configPath string
	logLevel   string
}

// NewRootCommand creates and returns the root cobra command for bigr-utils
func NewRootCommand() *cobra.Command {
	application := &app{}

	cmd := &cobra.Command{
		Use:   "bigr-utils",
		Short: "Sequencing project utilities for the BiGR compute cluster",
		Long: `bigr-utils prepares Snakemake pipeline runs on the cluster:

It builds sample sheets from raw sequencing deliveries, writes the
genome reference table, assembles pipeline configuration, deploys
tagged pipelines and generates the SLURM launcher script.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(application.configPath)
			if err != nil {
				return err
			}
			application.settings = settings

			level := settings.LogLevel
			if application.logLevel != "" {
				level = application.logLevel
			}
			application.console = logger.NewConsole(cmd.ErrOrStderr(), logger.ParseLevel(level))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&application.configPath, "config", "", "path to the tool configuration file")
	cmd.PersistentFlags().StringVar(&application.logLevel, "log-level", "", "console verbosity (debug, info, warn, error)")

	cmd.AddCommand(newInitCommand(application))
	cmd.AddCommand(newSamplesCommand(application))
	cmd.AddCommand(newGenomesCommand(application))
	cmd.AddCommand(newConfigureCommand(application))
	cmd.AddCommand(newDeployCommand(application))
	cmd.AddCommand(newSbatchCommand(application))
	cmd.AddCommand(newTreeCommand(application))
	cmd.AddCommand(newBenchmarkCommand(application))
	cmd.AddCommand(newHistoryCommand(application))

	return cmd
}

// ExitCode maps a command failure to a process exit status, one per
// fatal sample sheet condition so wrapping scripts can react.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, samples.ErrNoFastqFound):
		return 2
	case errors.Is(err, samples.ErrNoUpstreamFile):
		return 3
	case errors.Is(err, samples.ErrEmptySampleID):
		return 4
	case errors.Is(err, samples.ErrDuplicateSampleID):
		return 5
	case errors.Is(err, samples.ErrInvalidOrganism):
		return 6
	default:
		return 1
	}
}
