// Package benchmark summarizes Snakemake benchmark tables into a resource
// usage report, a replacement for seff on clusters where it lies.
package benchmark

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/tdayris/bigr-utils/internal/filelock"
	"github.com/tdayris/bigr-utils/internal/logger"
)

// ErrNoBenchmarkFound is returned when a directory holds no benchmark table.
var ErrNoBenchmarkFound = errors.New("no benchmark file found")

// Record is one line of a Snakemake benchmark table. Memory columns are in
// megabytes, times in seconds; missing values are NaN.
type Record struct {
	Rule     string
	Seconds  float64
	MaxRSS   float64
	MaxVMS   float64
	MaxUSS   float64
	MaxPSS   float64
	IOIn     float64
	IOOut    float64
	MeanLoad float64
	CPUTime  float64
}

// parseValue tolerates the "-" Snakemake writes for unmeasured columns.
func parseValue(field string) float64 {
	if field == "" || field == "-" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// ruleName derives the rule from the benchmark file name. Snakemake names
// benchmark files after the rule, sometimes with wildcards appended.
func ruleName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".tsv")
	if name, _, found := strings.Cut(base, "."); found {
		return name
	}
	return base
}

// ParseFile reads one benchmark table.
func ParseFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open benchmark: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil, nil
	}
	header := strings.Split(scanner.Text(), "\t")
	index := make(map[string]int, len(header))
	for position, column := range header {
		index[column] = position
	}

	at := func(fields []string, column string) float64 {
		position, known := index[column]
		if !known || position >= len(fields) {
			return math.NaN()
		}
		return parseValue(fields[position])
	}

	rule := ruleName(path)
	var records []Record
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		records = append(records, Record{
			Rule:     rule,
			Seconds:  at(fields, "s"),
			MaxRSS:   at(fields, "max_rss"),
			MaxVMS:   at(fields, "max_vms"),
			MaxUSS:   at(fields, "max_uss"),
			MaxPSS:   at(fields, "max_pss"),
			IOIn:     at(fields, "io_in"),
			IOOut:    at(fields, "io_out"),
			MeanLoad: at(fields, "mean_load"),
			CPUTime:  at(fields, "cpu_time"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read benchmark: %w", err)
	}
	return records, nil
}

// Collect walks dir and parses every benchmark table found. Target-rule
// aggregates named *_target.tsv are skipped, they duplicate their inputs.
func Collect(dir string) ([]Record, error) {
	var records []Record
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tsv") || strings.HasSuffix(path, "_target.tsv") {
			return nil
		}
		parsed, err := ParseFile(path)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoBenchmarkFound, dir)
	}
	return records, nil
}

// Stat holds the spread of one measured column over a set of jobs.
type Stat struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

func describe(values []float64) Stat {
	kept := values[:0:0]
	for _, value := range values {
		if !math.IsNaN(value) {
			kept = append(kept, value)
		}
	}
	if len(kept) == 0 {
		return Stat{Mean: math.NaN(), Std: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	}

	sum := 0.0
	minimum, maximum := kept[0], kept[0]
	for _, value := range kept {
		sum += value
		minimum = math.Min(minimum, value)
		maximum = math.Max(maximum, value)
	}
	mean := sum / float64(len(kept))

	std := math.NaN()
	if len(kept) > 1 {
		variance := 0.0
		for _, value := range kept {
			variance += (value - mean) * (value - mean)
		}
		std = math.Sqrt(variance / float64(len(kept)-1))
	}
	return Stat{Mean: mean, Std: std, Min: minimum, Max: maximum}
}

// Summary aggregates the jobs of one rule.
type Summary struct {
	Rule    string
	Jobs    int
	Seconds Stat
	MaxVMS  Stat
	MaxRSS  Stat
	Load    Stat
	CPUTime Stat
	IOIn    Stat
	IOOut   Stat
}

func summarize(rule string, records []Record) Summary {
	column := func(pick func(Record) float64) Stat {
		values := make([]float64, len(records))
		for index, record := range records {
			values[index] = pick(record)
		}
		return describe(values)
	}
	return Summary{
		Rule:    rule,
		Jobs:    len(records),
		Seconds: column(func(r Record) float64 { return r.Seconds }),
		MaxVMS:  column(func(r Record) float64 { return r.MaxVMS }),
		MaxRSS:  column(func(r Record) float64 { return r.MaxRSS }),
		Load:    column(func(r Record) float64 { return r.MeanLoad }),
		CPUTime: column(func(r Record) float64 { return r.CPUTime }),
		IOIn:    column(func(r Record) float64 { return r.IOIn }),
		IOOut:   column(func(r Record) float64 { return r.IOOut }),
	}
}

// Summarize groups records by rule. The first summary covers the whole
// pipeline, the rest follows in rule name order.
func Summarize(records []Record) []Summary {
	byRule := make(map[string][]Record)
	for _, record := range records {
		byRule[record.Rule] = append(byRule[record.Rule], record)
	}
	rules := make([]string, 0, len(byRule))
	for rule := range byRule {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	summaries := make([]Summary, 0, len(rules)+1)
	summaries = append(summaries, summarize("General Pipeline", records))
	for _, rule := range rules {
		summaries = append(summaries, summarize(rule, byRule[rule]))
	}
	return summaries
}

// HHMMSS renders seconds the way a walltime reads.
func HHMMSS(seconds float64) string {
	if math.IsNaN(seconds) {
		return ""
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func megabytes(value float64) string {
	if math.IsNaN(value) {
		return ""
	}
	return fmt.Sprintf("%.2f Mb", value)
}

func plusMinus(stat Stat, format func(float64) string) string {
	text := format(stat.Mean)
	if text == "" {
		return ""
	}
	if deviation := format(stat.Std); deviation != "" {
		text += " ± " + deviation
	}
	return text
}

// MemoryEfficiency is the share of the reservation the largest job used.
// It returns NaN unless a reservation is known.
func MemoryEfficiency(summary Summary, reservedMB float64) float64 {
	if reservedMB <= 0 || math.IsNaN(summary.MaxVMS.Max) {
		return math.NaN()
	}
	return 100 * summary.MaxVMS.Max / reservedMB
}

// RenderMarkdown writes the per-rule report. A positive reservedMB adds
// the efficiency and waste lines against that reservation.
func RenderMarkdown(summaries []Summary, reservedMB float64) []byte {
	var report strings.Builder
	for _, summary := range summaries {
		fmt.Fprintf(&report, "\n# %s\n\n", summary.Rule)
		fmt.Fprintf(&report, "%d job(s) measured.\n\n", summary.Jobs)

		report.WriteString("## Memory\n\n")
		fmt.Fprintf(&report, "Requires a job with at most %s, on average %s.\n\n",
			megabytes(summary.MaxVMS.Max), plusMinus(summary.MaxVMS, megabytes))

		report.WriteString("## Time\n\n")
		fmt.Fprintf(&report, "The longest job took %s, on average %s.\n\n",
			HHMMSS(summary.Seconds.Max), plusMinus(summary.Seconds, HHMMSS))

		if efficiency := MemoryEfficiency(summary, reservedMB); !math.IsNaN(efficiency) {
			report.WriteString("## Efficiency\n\n")
			fmt.Fprintf(&report, "%s was reserved, leading to a waste of %s.\n\n",
				megabytes(reservedMB), megabytes(reservedMB-summary.MaxVMS.Max))
			fmt.Fprintf(&report, "The reservation efficiency was of %.2f %%.\n\n", efficiency)
		}
	}
	return []byte(report.String())
}

// RenderTable writes the summaries as a TSV for spreadsheet review.
func RenderTable(summaries []Summary) []byte {
	var table strings.Builder
	table.WriteString("rule\tjobs\tmean_s\tstd_s\tmax_s\tmean_vms_mb\tmax_vms_mb\tmean_load\tmean_cpu_time\n")
	cell := func(value float64) string {
		if math.IsNaN(value) {
			return ""
		}
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
	for _, summary := range summaries {
		fmt.Fprintf(&table, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			summary.Rule, summary.Jobs,
			cell(summary.Seconds.Mean), cell(summary.Seconds.Std), cell(summary.Seconds.Max),
			cell(summary.MaxVMS.Mean), cell(summary.MaxVMS.Max),
			cell(summary.Load.Mean), cell(summary.CPUTime.Mean))
	}
	return []byte(table.String())
}

// RenderHTML converts the markdown report to a standalone HTML page.
func RenderHTML(markdown []byte) ([]byte, error) {
	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Resource usage report</title></head>\n<body>\n")
	if err := goldmark.New().Convert(markdown, &page); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	page.WriteString("</body>\n</html>\n")
	return []byte(page.String()), nil
}

// Report collects, summarizes and writes the markdown, HTML and TSV
// outputs under the overwrite guard.
func Report(dir, markdownPath, htmlPath, tablePath string, reservedMB float64, force bool, rep logger.Reporter) error {
	records, err := Collect(dir)
	if err != nil {
		return err
	}
	rep.Report(logger.LevelInfo, "loaded %d benchmark record(s) from %s", len(records), dir)

	summaries := Summarize(records)
	markdown := RenderMarkdown(summaries, reservedMB)
	html, err := RenderHTML(markdown)
	if err != nil {
		return err
	}

	outputs := []struct {
		path string
		data []byte
	}{
		{markdownPath, markdown},
		{htmlPath, html},
		{tablePath, RenderTable(summaries)},
	}
	for _, output := range outputs {
		if output.path == "" {
			continue
		}
		err := filelock.GuardedWrite(output.path, output.data, force)
		if errors.Is(err, filelock.ErrExists) {
			rep.Report(logger.LevelWarn, "a report already exists at %s, not overwriting", output.path)
			continue
		}
		if err != nil {
			return err
		}
		rep.Report(logger.LevelInfo, "report written to %s", output.path)
	}
	return nil
}
