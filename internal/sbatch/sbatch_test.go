package sbatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdayris/bigr-utils/internal/logger"
)

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		value   string
		minutes int
	}{
		{"45", 45},
		{"0:30:00", 30},
		{"2:15:00", 135},
		{"0:0:30", 1},
		{"1-0:0:0", 1440},
		{"2-3:30:0", 3090},
	}
	for _, c := range cases {
		minutes, err := TimeToMinutes(c.value)
		require.NoError(t, err, c.value)
		assert.Equal(t, c.minutes, minutes, c.value)
	}
}

func TestTimeToMinutesRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "abc", "1:2", "x-1:0:0", "1:b:0"} {
		_, err := TimeToMinutes(value)
		assert.Error(t, err, value)
	}
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "0-0:45:00", MinutesToTime(45))
	assert.Equal(t, "1-2:5:00", MinutesToTime(1565))
}

func TestSelectQueue(t *testing.T) {
	cases := []struct {
		minutes int
		queue   string
	}{
		{10, "shortq"},
		{360, "shortq"},
		{361, "mediumq"},
		{1440, "mediumq"},
		{1441, "longq"},
		{10080, "longq"},
		{10081, "verylongq"},
		{86400, "verylongq"},
	}
	for _, c := range cases {
		queue, err := SelectQueue(c.minutes)
		require.NoError(t, err)
		assert.Equal(t, c.queue, queue)
	}

	_, err := SelectQueue(86401)
	assert.ErrorIs(t, err, ErrTooMuchTime)
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "Fair_fastqc_multiqc_version_2_0_5", jobName("fair_fastqc_multiqc", "2.0.5"))
	assert.Equal(t, "Fair_genome_indexer", jobName("fair-genome-indexer", ""))
	assert.Equal(t, "Snakemake_Pipeline", jobName("", ""))
}

func TestRender(t *testing.T) {
	workdir := t.TempDir()
	opts := Options{
		Workdir:        workdir,
		Profile:        "/mnt/profiles/slurm-web",
		SnakemakeCache: "/mnt/cache/snakemake",
		CondaCache:     "/mnt/cache/conda",
		CondaEnv:       "/mnt/envs/snakemake",
		Memory:         "1G",
		Time:           "1-0:0:0",
	}

	data, err := Render(opts, "fair_fastqc_multiqc", "2.0.5")
	require.NoError(t, err)
	script := string(data)

	assert.True(t, strings.HasPrefix(script, "#!/usr/bin/bash"))
	assert.Contains(t, script, "#SBATCH --job-name='Fair_fastqc_multiqc_version_2_0_5'")
	assert.Contains(t, script, "#SBATCH --partition='mediumq'")
	assert.Contains(t, script, "#SBATCH --time='1-0:0:00'")
	assert.Contains(t, script, "SNAKEMAKE_OUTPUT_CACHE='/mnt/cache/snakemake'")
	assert.Contains(t, script, "conda activate '/mnt/envs/snakemake'")
	assert.Contains(t, script, "snakemake --profile '/mnt/profiles/slurm-web'")

	for _, dir := range []string{"logs", "tmp", "scripts"} {
		info, err := os.Stat(filepath.Join(workdir, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestRenderRejectsExcessiveTime(t *testing.T) {
	_, err := Render(Options{Workdir: t.TempDir(), Time: "90-0:0:0"}, "p", "1")
	assert.ErrorIs(t, err, ErrTooMuchTime)
}

func TestWriteIsExecutableAndGuarded(t *testing.T) {
	workdir := t.TempDir()
	path := filepath.Join(workdir, "scripts", "sbatch.sh")
	opts := Options{Workdir: workdir, Time: "60", Memory: "512M"}

	require.NoError(t, Write(path, opts, "fair_genome_indexer", "3.9.8", false, logger.Nop{}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "launcher must be executable")

	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o755))
	require.NoError(t, Write(path, opts, "fair_genome_indexer", "3.9.8", false, logger.Nop{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data), "existing launcher must be kept without force")
}
