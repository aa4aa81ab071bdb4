// Package pattern holds the fixed filename regular-expression families used
// to classify sequencing files, and the partition primitive built on them.
//
// The families are compiled once at package initialization and never change
// at runtime, so every call sees identical matching behavior. All families
// use substring search (unanchored matching) against the file base name,
// never against the full path.
package pattern

import "regexp"

// Family names a fixed filename convention.
type Family int

const (
	// Fastq recognizes a terminal fastq suffix: .fastq, .fq, .fastq.gz,
	// .fq.gz, _fastq and the like.
	Fastq Family = iota
	// CaptureKit recognizes _bed or .bed anywhere in the name, optionally
	// gzipped.
	CaptureKit
	// Index recognizes the Illumina index-read convention _I<digits>
	// followed by an underscore or a dot.
	Index
	// R1Strand recognizes the first-read marker _R1 (R optional).
	R1Strand
	// R2Strand recognizes the second-read marker _R2 (R optional).
	R2Strand
)

// String returns the family name used in diagnostics.
func (f Family) String() string {
	switch f {
	case Fastq:
		return "fastq"
	case CaptureKit:
		return "capture_kit"
	case Index:
		return "index"
	case R1Strand:
		return "r1_strand"
	case R2Strand:
		return "r2_strand"
	default:
		return "unknown"
	}
}

// registry maps each family to its compiled expression. Expressions are
// case-sensitive and deliberately unanchored except where the convention is
// a terminal suffix.
var registry = map[Family]*regexp.Regexp{
	Fastq:      regexp.MustCompile(`(_|\.)?f(ast)?q(\.gz)?$`),
	CaptureKit: regexp.MustCompile(`(_|\.)bed(\.gz)?`),
	Index:      regexp.MustCompile(`_I\d+(_|\.)`),
	R1Strand:   regexp.MustCompile(`_R?1(_|\.)?`),
	R2Strand:   regexp.MustCompile(`_R?2(_|\.)?`),
}

// Expression returns the compiled regular expression for a family.
func Expression(family Family) *regexp.Regexp {
	return registry[family]
}

// Matches reports whether the base name answers the family's expression.
func Matches(family Family, base string) bool {
	return registry[family].MatchString(base)
}
