// Package sbatch generates the SLURM launcher script that runs a deployed
// pipeline, including queue selection from the requested walltime.
package sbatch

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tdayris/bigr-utils/internal/filelock"
	"github.com/tdayris/bigr-utils/internal/logger"
)

// ErrTooMuchTime is returned when no queue accepts the requested walltime.
var ErrTooMuchTime = errors.New("too much time requested")

// TimeToMinutes converts D-H:M:S, H:M:S or plain minutes into minutes.
func TimeToMinutes(value string) (int, error) {
	if days, rest, found := strings.Cut(value, "-"); found {
		d, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count in %q: %w", value, err)
		}
		minutes, err := TimeToMinutes(rest)
		if err != nil {
			return 0, err
		}
		return d*1440 + minutes, nil
	}

	if strings.Contains(value, ":") {
		parts := strings.Split(value, ":")
		if len(parts) != 3 {
			return 0, fmt.Errorf("invalid time %q, expected H:M:S", value)
		}
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %q: %w", value, err)
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q: %w", value, err)
		}
		seconds, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q: %w", value, err)
		}
		return int(math.Round(float64(hours*60+minutes) + float64(seconds)/60)), nil
	}

	minutes, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return minutes, nil
}

// MinutesToTime renders minutes in the D-H:M:00 form SLURM accepts.
func MinutesToTime(minutes int) string {
	days := minutes / 1440
	minutes %= 1440
	hours := minutes / 60
	minutes %= 60
	return fmt.Sprintf("%d-%d:%d:00", days, hours, minutes)
}

// SelectQueue picks the tightest cluster queue covering the walltime.
func SelectQueue(minutes int) (string, error) {
	switch {
	case minutes <= 360:
		return "shortq", nil
	case minutes <= 1440:
		return "mediumq", nil
	case minutes <= 10080:
		return "longq", nil
	case minutes <= 86400:
		return "verylongq", nil
	default:
		return "", fmt.Errorf("%s: %w", MinutesToTime(minutes), ErrTooMuchTime)
	}
}

// Options gathers everything the launcher script embeds.
type Options struct {
	Workdir        string
	Profile        string
	SnakemakeCache string
	CondaCache     string
	CondaEnv       string
	Memory         string
	Time           string
	JobName        string
}

// jobName sanitizes the pipeline identity into a SLURM job name.
func jobName(pipelineName, tag string) string {
	name := strings.NewReplacer(" ", "", "-", "_").Replace(pipelineName)
	if name == "" {
		name = "Snakemake_Pipeline"
	}
	name = strings.ToUpper(name[:1]) + name[1:]
	if tag == "" {
		return name
	}
	return name + "_version_" + strings.ReplaceAll(tag, ".", "_")
}

// Render builds the launcher script content. It creates the logs, tmp and
// scripts directories under the workdir since SLURM will not.
func Render(opts Options, pipelineName, pipelineTag string) ([]byte, error) {
	minutes, err := TimeToMinutes(opts.Time)
	if err != nil {
		return nil, err
	}
	queue, err := SelectQueue(minutes)
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(opts.Workdir, "logs")
	tmpDir := filepath.Join(opts.Workdir, "tmp")
	for _, dir := range []string{logDir, tmpDir, filepath.Join(opts.Workdir, "scripts")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	name := opts.JobName
	if name == "" {
		name = jobName(pipelineName, pipelineTag)
	}
	condaSh := filepath.Join(opts.CondaEnv, "etc/profile.d/conda.sh")
	mambaSh := filepath.Join(opts.CondaEnv, "etc/profile.d/mamba.sh")

	lines := []string{
		"#!/usr/bin/bash",
		"",
		"# Launch this pipeline with:",
		"# sbatch " + filepath.Join(opts.Workdir, "scripts", "sbatch.sh"),
		"",
		"# Slurm parameters",
		fmt.Sprintf("#SBATCH --job-name='%s'", name),
		fmt.Sprintf("#SBATCH --output='%s/%%x_%%j_%%u.out'", logDir),
		fmt.Sprintf("#SBATCH --error='%s/%%x_%%j_%%u.err'", logDir),
		fmt.Sprintf("#SBATCH --mem='%s'", opts.Memory),
		"#SBATCH --cpus-per-task='1'",
		fmt.Sprintf("#SBATCH --time='%s'", MinutesToTime(minutes)),
		fmt.Sprintf("#SBATCH --chdir='%s'", opts.Workdir),
		fmt.Sprintf("#SBATCH --partition='%s'", queue),
		"",
		"# Ensure bash works properly or stops",
		"set -eiop 'pipefail'",
		"shopt -s nullglob",
		"",
		fmt.Sprintf("BIGR_DEFAULT_TMP='%s'", tmpDir),
		"export BIGR_DEFAULT_TMP",
		"",
	}

	// Many downstream bash, R, perl and java tools each honor their own
	// temp variable.
	for _, variable := range []string{"TMP", "TEMP", "TMPDIR", "TEMPDIR"} {
		lines = append(lines,
			fmt.Sprintf("if [ -z ${%s} ]; then", variable),
			fmt.Sprintf("  declare -x %s", variable),
			fmt.Sprintf("  %s='%s'", variable, tmpDir),
			fmt.Sprintf("  export %s", variable),
			"fi",
			"",
		)
	}

	lines = append(lines,
		`if [ -z "${_JAVA_OPTIONS}" ]; then`,
		"  declare -x _JAVA_OPTIONS",
		fmt.Sprintf(`  _JAVA_OPTIONS='-Djava.io.tmpdir="%s"'`, tmpDir),
		"  export _JAVA_OPTIONS",
		"fi",
		"",
		"# Caches avoid redundant indexation and conda reinstallations",
		fmt.Sprintf("declare -x SNAKEMAKE_OUTPUT_CACHE='%s'", opts.SnakemakeCache),
		fmt.Sprintf("declare -x CONDA_CACHE_PATH='%s'", opts.CondaCache),
		"export SNAKEMAKE_OUTPUT_CACHE",
		"",
		"# Logging details",
		"date",
		"hostname",
		"",
		"# Conda environment",
		fmt.Sprintf("source '%s'", condaSh),
		fmt.Sprintf("source '%s'", mambaSh),
		fmt.Sprintf("conda activate '%s'", opts.CondaEnv),
		"",
		"# Run pipeline",
		fmt.Sprintf("snakemake --profile '%s'", opts.Profile),
		"",
	)

	return []byte(strings.Join(lines, "\n")), nil
}

// Write renders and stores the launcher script under the overwrite guard.
func Write(path string, opts Options, pipelineName, pipelineTag string, force bool, rep logger.Reporter) error {
	data, err := Render(opts, pipelineName, pipelineTag)
	if err != nil {
		return err
	}

	err = filelock.GuardedWriteExecutable(path, data, force)
	if errors.Is(err, filelock.ErrExists) {
		rep.Report(logger.LevelWarn, "a launcher script already exists at %s, not overwriting", path)
		return nil
	}
	if err != nil {
		return err
	}

	rep.Report(logger.LevelInfo, "launcher script written to %s", path)
	return nil
}
