package treeview

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDescribe(t *testing.T) {
	cases := map[string]string{
		"Snakefile":           "Snakemake script",
		"common.smk":          "Snakemake script",
		"sample_R1.fastq.gz":  "Sequenced reads",
		"capture.bed.gz":      "Genomic intervals",
		"genome.fa":           "Genomic sequences",
		"calls.vcf.gz.tbi":    "Variants description",
		"config.yaml":         "Configuration file",
		"multiqc_report.html": "HTML report",
		"design.csv":          "Table",
		"launcher.sbatch":     "Shell script",
		"notes.unknownsuffix": "",
		"archive.gz":          "",
	}
	for name, want := range cases {
		if got := Describe(name); got != want {
			t.Errorf("Describe(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		0:          "0 bytes",
		999:        "999 bytes",
		1000:       "1.0 kB",
		1536:       "1.5 kB",
		2500000:    "2.5 MB",
		3200000000: "3.2 GB",
	}
	for size, want := range cases {
		if got := HumanSize(size); got != want {
			t.Errorf("HumanSize(%d) = %q, want %q", size, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	color.NoColor = true

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "workflow"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"workflow/Snakefile": "rule all:\n",
		"sample_R1.fastq.gz": strings.Repeat("N", 1200),
		".hidden":            "secret",
		"README.md":          "# project",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := Render(&out, dir, Options{SkipHidden: true}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	text := out.String()

	for _, want := range []string{
		"workflow",
		"Snakefile",
		"Snakemake script",
		"sample_R1.fastq.gz (1.2 kB)",
		"Sequenced reads",
		"README.md",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("tree output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, ".hidden") {
		t.Errorf("hidden file should be skipped:\n%s", text)
	}

	// Directories come before files at the same level.
	if strings.Index(text, "workflow") > strings.Index(text, "README.md") {
		t.Errorf("directories should be listed first:\n%s", text)
	}
}

func TestRenderMissingDirectory(t *testing.T) {
	var out bytes.Buffer
	if err := Render(&out, filepath.Join(t.TempDir(), "absent"), Options{}); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
