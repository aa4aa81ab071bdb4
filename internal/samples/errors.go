package samples

import "errors"

// Fatal classification errors. None are recovered internally; they propagate
// to the command boundary which maps each kind to a distinct exit status.
var (
	// ErrNoFastqFound means the input set contained zero fastq-like names.
	ErrNoFastqFound = errors.New("no fastq file found in input paths")

	// ErrNoUpstreamFile means classification completed without producing a
	// single upstream read file.
	ErrNoUpstreamFile = errors.New("no upstream read file identified")

	// ErrEmptySampleID means suffix stripping reduced a derived sample name
	// to the empty string.
	ErrEmptySampleID = errors.New("sample identifier is empty after suffix stripping")

	// ErrDuplicateSampleID means two distinct pairs resolved to the same
	// sample identifier. The collision is reported, never silently merged.
	ErrDuplicateSampleID = errors.New("duplicate sample identifier")

	// ErrInvalidOrganism means the organism descriptor does not split into
	// exactly three dot-separated tokens.
	ErrInvalidOrganism = errors.New("organism descriptor must be species.build.release")
)
