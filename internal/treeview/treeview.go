// Package treeview renders an annotated directory tree so that pipeline
// working directories can be reviewed at a glance.
package treeview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// descriptions maps known file suffixes to a short annotation. Longer
// suffixes are matched first so .fq.gz wins over .gz.
var descriptions = []struct {
	suffixes []string
	label    string
}{
	{[]string{".smk"}, "Snakemake script"},
	{[]string{".py"}, "Python script"},
	{[]string{".pyc"}, "Python binary file"},
	{[]string{".log"}, "Logging file"},
	{[]string{".png", ".svg", ".pdf"}, "Chart image"},
	{[]string{".md", ".rst", ".txt"}, "Text resource"},
	{[]string{".R", ".Rmd", ".r", ".rmd"}, "R script"},
	{[]string{".sh", ".bash", ".sbatch", ".zsh"}, "Shell script"},
	{[]string{".csv", ".tsv", ".xlsx"}, "Table"},
	{[]string{".bam", ".sam", ".cram", ".bai"}, "Alignment file"},
	{[]string{".json", ".yaml", ".yml"}, "Configuration file"},
	{[]string{".fq", ".fastq", ".fq.gz", ".fastq.gz"}, "Sequenced reads"},
	{[]string{".bed", ".bed.gz", ".gtf", ".gff", ".gff3"}, "Genomic intervals"},
	{[]string{".fasta", ".fa", ".fna", ".fai", ".dict", ".bt2"}, "Genomic sequences"},
	{[]string{".html"}, "HTML report"},
	{[]string{".bcf", ".vcf", ".vcf.gz", ".gvcf", ".gvcf.gz", ".maf", ".vcf.gz.tbi", ".vcf.gz.csi", ".ubcf"}, "Variants description"},
	{[]string{".bin"}, "Binary file"},
}

// Describe returns the annotation for a file name, or an empty string
// when the name is not a recognized pipeline artifact.
func Describe(name string) string {
	if name == "Snakefile" {
		return "Snakemake script"
	}
	best := ""
	bestLen := 0
	for _, entry := range descriptions {
		for _, suffix := range entry.suffixes {
			if strings.HasSuffix(name, suffix) && len(suffix) > bestLen {
				best = entry.label
				bestLen = len(suffix)
			}
		}
	}
	return best
}

// HumanSize formats a byte count with decimal units, one digit of
// precision above the kilobyte.
func HumanSize(size int64) string {
	const unit = 1000
	if size < unit {
		return fmt.Sprintf("%d bytes", size)
	}
	value := float64(size)
	for _, suffix := range []string{"kB", "MB", "GB", "TB", "PB"} {
		value /= unit
		if value < unit {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%.1f EB", value/unit)
}

// Options controls tree rendering.
type Options struct {
	SkipHidden bool
}

// Render writes the annotated tree of dir to out.
func Render(out io.Writer, dir string, opts Options) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("could not find %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	header := color.New(color.FgGreen, color.Bold)
	header.Fprintln(out, "📂 "+dir)
	return renderDir(out, dir, "", opts)
}

func renderDir(out io.Writer, dir, prefix string, opts Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not list %s: %w", dir, err)
	}

	if opts.SkipHidden {
		kept := entries[:0]
		for _, entry := range entries {
			if !strings.HasPrefix(entry.Name(), ".") {
				kept = append(kept, entry)
			}
		}
		entries = kept
	}

	// Directories first, then case-insensitive name order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	guide := color.New(color.FgCyan)
	dirStyle := color.New(color.FgGreen)
	noteStyle := color.New(color.Faint)

	for index, entry := range entries {
		connector := "├── "
		childPrefix := prefix + "│   "
		if index == len(entries)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		fmt.Fprint(out, prefix)
		guide.Fprint(out, connector)

		if entry.IsDir() {
			dirStyle.Fprintln(out, "📂 "+entry.Name())
			if err := renderDir(out, filepath.Join(dir, entry.Name()), childPrefix, opts); err != nil {
				return err
			}
			continue
		}

		line := entry.Name()
		if info, err := entry.Info(); err == nil {
			line += " (" + HumanSize(info.Size()) + ")"
		}
		fmt.Fprint(out, line)
		if note := Describe(entry.Name()); note != "" {
			noteStyle.Fprint(out, "  "+note)
		}
		fmt.Fprintln(out)
	}
	return nil
}
