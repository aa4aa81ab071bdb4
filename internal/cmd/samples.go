package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tdayris/bigr-utils/internal/discover"
	"github.com/tdayris/bigr-utils/internal/history"
	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/samples"
	"github.com/tdayris/bigr-utils/internal/sheet"
)

// newSamplesCommand creates the samples subcommand: discover sequencing
// files and write the samples.csv table.
func newSamplesCommand(application *app) *cobra.Command {
	var (
		directory     string
		project       string
		catalogConfig string
		organism      string
		output        string
		skipHidden    bool
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Build a sample sheet from sequencing files",
		Long: `Scan a directory (or a remote catalog project) for sequencing
reads, pair them by strand, resolve sample identifiers and write the
samples.csv table expected by the pipelines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if organism == "" {
				organism = application.settings.DefaultOrganism
			}

			discovered, source, err := discoverFiles(cmd.Context(), directory, project, catalogConfig, skipHidden, application.console)
			if err != nil {
				return err
			}

			records, bag, err := samples.Build(discovered, organism, application.console)
			if err != nil {
				return err
			}
			for _, entry := range bag.NonFastq {
				application.console.Report(logger.LevelDebug, "not a sequencing file: %s", entry.Path)
			}

			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := sheet.Write(output, records, force, application.console); err != nil {
				return err
			}

			recordRun(cmd.Context(), application, history.Run{
				Command:     "samples",
				Source:      source,
				Organism:    organism,
				SampleCount: len(records),
				PairCount:   bag.Pairs(),
				OutputPath:  output,
			})
			return nil
		},
	}

	workdir, _ := os.Getwd()
	cmd.Flags().StringVarP(&directory, "directory", "d", workdir, "directory holding the sequencing files")
	cmd.Flags().StringVarP(&project, "project", "p", "", "remote catalog project identifier, overrides --directory")
	cmd.Flags().StringVar(&catalogConfig, "catalog-config", filepath.Join(os.Getenv("HOME"), ".bigr-utils", "catalog.yaml"), "path to the remote catalog configuration")
	cmd.Flags().StringVarP(&organism, "organism", "g", "", "organism descriptor as species.build.release")
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join(workdir, "config", "samples.csv"), "path to the output sample table")
	cmd.Flags().BoolVarP(&skipHidden, "skip-hidden", "s", false, "ignore hidden files and directories")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force over-writing")

	return cmd
}

// discoverFiles resolves the input file list, either from a local walk or
// from the remote catalog when a project identifier is given.
func discoverFiles(ctx context.Context, directory, project, catalogConfig string, skipHidden bool, rep logger.Reporter) ([]string, string, error) {
	if project == "" {
		found, walkErrs, err := discover.Local(directory, discover.LocalOptions{SkipHidden: skipHidden})
		if err != nil {
			return nil, "", err
		}
		for _, walkErr := range walkErrs {
			rep.Report(logger.LevelWarn, "%v", walkErr)
		}
		rep.Report(logger.LevelInfo, "found %d file(s) under %s", len(found), directory)
		return found, directory, nil
	}

	data, err := os.ReadFile(catalogConfig)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog configuration: %w", err)
	}
	var cfg discover.CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse catalog configuration: %w", err)
	}

	catalog, err := discover.NewCatalog(cfg)
	if err != nil {
		return nil, "", err
	}
	found, err := catalog.Project(ctx, project)
	if err != nil {
		return nil, "", err
	}
	rep.Report(logger.LevelInfo, "found %d file(s) in catalog project %s", len(found), project)
	return found, project, nil
}

// recordRun journals a completed run. The journal is best effort: a
// failure is reported but never fails the command.
func recordRun(ctx context.Context, application *app, run history.Run) {
	store, err := history.NewStore(application.settings.HistoryDB)
	if err != nil {
		application.console.Report(logger.LevelWarn, "could not open run journal: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, run); err != nil {
		application.console.Report(logger.LevelWarn, "could not journal this run: %v", err)
	}
}
