package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tdayris/bigr-utils/internal/logger"
)

// Known lists the deployable pipelines. Deployment sources are resolved as
// https://github.com/tdayris/<name>.
var Known = []string{
	"fair_genome_indexer",
	"fair_fastqc_multiqc",
	"fair_rnaseq_salmon_quant",
	"fair_bowtie2_mapping",
	"fair_star_mapping",
}

// IsKnownPipeline reports whether name is deployable.
func IsKnownPipeline(name string) bool {
	for _, known := range Known {
		if known == name {
			return true
		}
	}
	return false
}

// repositoryURL builds the git address of a pipeline.
func repositoryURL(name string) string {
	return "https://github.com/tdayris/" + name
}

// LatestTag resolves the newest version tag of a pipeline through
// git ls-remote, ordered by descending version refname.
func LatestTag(ctx context.Context, name string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--tags", "--sort=-v:refname", repositoryURL(name))
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", name, err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		ref := fields[1]
		if strings.HasSuffix(ref, "^{}") {
			continue
		}
		return ref[strings.LastIndex(ref, "/")+1:], nil
	}
	return "", fmt.Errorf("no version tag found for %s", name)
}

// Deploy clones the tagged pipeline sources into workdir. An existing
// config/ or workflow/ directory blocks deployment unless forced, so a
// running project is never clobbered by accident.
func Deploy(ctx context.Context, name, tag, workdir string, force bool, rep logger.Reporter) error {
	if !IsKnownPipeline(name) {
		return fmt.Errorf("unknown pipeline %q, expected one of %s", name, strings.Join(Known, ", "))
	}

	if tag == "latest" || tag == "" {
		resolved, err := LatestTag(ctx, name)
		if err != nil {
			return err
		}
		tag = resolved
		rep.Report(logger.LevelInfo, "pipeline version is %s", tag)
	}

	configDir := filepath.Join(workdir, "config")
	workflowDir := filepath.Join(workdir, "workflow")
	if !force {
		for _, dir := range []string{configDir, workflowDir} {
			if _, err := os.Stat(dir); err == nil {
				rep.Report(logger.LevelWarn, "a pipeline has already been deployed at %s", workdir)
				return nil
			}
		}
	}

	checkout, err := os.MkdirTemp("", "bigr-deploy-*")
	if err != nil {
		return fmt.Errorf("failed to create checkout directory: %w", err)
	}
	defer os.RemoveAll(checkout)

	clone := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--branch", tag, repositoryURL(name), checkout)
	if output, err := clone.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to clone %s at %s: %w: %s", name, tag, err, strings.TrimSpace(string(output)))
	}

	for _, dir := range []string{"config", "workflow"} {
		source := filepath.Join(checkout, dir)
		destination := filepath.Join(workdir, dir)
		if err := copyTree(source, destination); err != nil {
			return fmt.Errorf("failed to install %s: %w", dir, err)
		}
	}

	rep.Report(logger.LevelInfo, "pipeline %s %s deployed at %s", name, tag, workdir)
	return nil
}

// copyTree recursively copies a directory, preserving layout.
func copyTree(source, destination string) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
