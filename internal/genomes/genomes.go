// Package genomes carries the fixed catalog of reference genome resources
// known to the cluster, and renders the genomes.csv table the pipelines
// read. The catalog doubles as the enumeration of accepted organism
// descriptors for sample-sheet building.
package genomes

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/tdayris/bigr-utils/internal/filelock"
	"github.com/tdayris/bigr-utils/internal/logger"
)

// Genome describes one reference genome and the resource files indexed for
// it. Resource paths may be empty when a resource has not been deployed.
type Genome struct {
	Species   string
	Build     string
	Release   string
	Origin    string
	Resources map[string]string
}

// Descriptor returns the species.build.release form used on the command line.
func (g Genome) Descriptor() string {
	return g.Species + "." + g.Build + "." + g.Release
}

// resourceColumns fixes the CSV column order after the four identity fields.
var resourceColumns = []string{
	"dna_fasta",
	"dna_fai",
	"dna_dict",
	"cdna_fasta",
	"cdna_fai",
	"cdna_dict",
	"transcripts_fasta",
	"gtf",
	"gff3",
	"id_to_gene",
	"t2g",
	"dbsnp",
	"dbsnp_tbi",
	"af_only",
	"af_only_tbi",
	"blacklist",
	"bowtie2_dna_index",
	"salmon_index",
	"capture_kit_bed",
}

const indexDB = "/mnt/beegfs/database/bioinfo/Index_DB"

// known is the deployed catalog. Only the current human reference carries
// its full resource set; older builds are listed for descriptor validation
// and filled in as resources get indexed.
var known = []Genome{
	{
		Species: "homo_sapiens", Build: "GRCh38", Release: "109", Origin: "Ensembl",
		Resources: map[string]string{
			"dna_fasta":         indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.dna.fasta",
			"dna_fai":           indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.dna.fasta.fai",
			"dna_dict":          indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.dna.dict",
			"cdna_fasta":        indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.cdna.fasta",
			"cdna_fai":          indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.cdna.fasta.fai",
			"cdna_dict":         indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.cdna.dict",
			"transcripts_fasta": indexDB + "/Fasta/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.transcripts.fasta",
			"gtf":               indexDB + "/GTF/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.gtf",
			"gff3":              indexDB + "/GTF/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.gff3",
			"id_to_gene":        indexDB + "/GTF/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.id_to_gene.tsv",
			"t2g":               indexDB + "/GTF/Ensembl/GRCh38.109/homo_sapiens.GRCh38.109.t2g.tsv",
			"dbsnp":             indexDB + "/dbSNP/homo_sapiens_GRCh38.109/homo_sapiens.GRCh38.109.all.vcf.gz",
			"dbsnp_tbi":         indexDB + "/dbSNP/homo_sapiens_GRCh38.109/homo_sapiens.GRCh38.109.all.vcf.gz.tbi",
			"af_only":           indexDB + "/GATK/mutect2_gnomad_af_only/hg38/somatic-hg38_af-only-gnomad.hg38.nochr.vcf.gz",
			"af_only_tbi":       indexDB + "/GATK/mutect2_gnomad_af_only/hg38/somatic-hg38_af-only-gnomad.hg38.nochr.vcf.gz.tbi",
			"bowtie2_dna_index": indexDB + "/Bowtie/2.5.4/homo_sapiens.GRCh38.105",
		},
	},
	{Species: "mus_musculus", Build: "GRCm39", Release: "109", Origin: "Ensembl"},
	{
		Species: "mus_musculus", Build: "GRCm38", Release: "99", Origin: "Ensembl",
		Resources: map[string]string{
			"dna_fasta": indexDB + "/Fasta/Ensembl/GRCm38.99/GRCm38.99.mus_musculus.dna.fasta",
			"dna_fai":   indexDB + "/Fasta/Ensembl/GRCm38.99/GRCm38.99.mus_musculus.dna.fasta.fai",
			"dna_dict":  indexDB + "/Fasta/Ensembl/GRCm38.99/GRCm38.99.mus_musculus.dna.dict",
			"gtf":       indexDB + "/GTF/Ensembl/GRCm38.99/mus_musculus.GRCm38.99.gtf",
			"gff3":      indexDB + "/GTF/Ensembl/GRCm38.99/mus_musculus.GRCm38.99.gff3",
			"dbsnp":     indexDB + "/VCF/Ensembl/GRCm38.99/mus_musculus.GRCm38.99.all.vcf.gz",
			"dbsnp_tbi": indexDB + "/VCF/Ensembl/GRCm38.99/mus_musculus.GRCm38.99.all.vcf.gz.tbi",
		},
	},
	{Species: "homo_sapiens", Build: "GRCh37", Release: "75", Origin: "Ensembl"},
	{Species: "homo_sapiens", Build: "GRCh38", Release: "105", Origin: "Ensembl"},
}

// Known returns the full catalog.
func Known() []Genome {
	return known
}

// Descriptors lists the accepted organism descriptors.
func Descriptors() []string {
	out := make([]string, len(known))
	for i, genome := range known {
		out[i] = genome.Descriptor()
	}
	return out
}

// IsKnown reports whether descriptor names a cataloged genome.
func IsKnown(descriptor string) bool {
	for _, genome := range known {
		if genome.Descriptor() == descriptor {
			return true
		}
	}
	return false
}

// ValidatePaths checks that every non-empty resource path in the catalog
// exists on the filesystem. Identity fields and undeployed resources are
// skipped.
func ValidatePaths(rep logger.Reporter) error {
	var missing []string
	for _, genome := range known {
		for _, column := range resourceColumns {
			path := genome.Resources[column]
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				missing = append(missing, path)
				rep.Report(logger.LevelError, "missing %s for %s: %s", column, genome.Descriptor(), path)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d genome resource file(s) not found", len(missing))
	}
	return nil
}

// Render produces the genomes.csv content. With empty set, only the
// species, build and release columns are kept so users can fill their own
// resource paths.
func Render(empty bool) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"species", "build", "release"}
	if !empty {
		header = append(header, "origin")
		header = append(header, resourceColumns...)
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, genome := range known {
		row := []string{genome.Species, genome.Build, genome.Release}
		if !empty {
			row = append(row, genome.Origin)
			for _, column := range resourceColumns {
				row = append(row, genome.Resources[column])
			}
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row for %s: %w", genome.Descriptor(), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush genome table: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores the genome table at path under the overwrite guard.
func Write(path string, empty, force bool, rep logger.Reporter) error {
	data, err := Render(empty)
	if err != nil {
		return err
	}

	err = filelock.GuardedWrite(path, data, force)
	if errors.Is(err, filelock.ErrExists) {
		rep.Report(logger.LevelWarn, "a genome table already exists at %s, not overwriting", path)
		return nil
	}
	if err != nil {
		return err
	}

	rep.Report(logger.LevelInfo, "genome table written to %s", path)
	return nil
}
