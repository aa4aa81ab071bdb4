package samples

import (
	"fmt"

	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/pattern"
)

// Pair fills the bag's Index, Upstream and Downstream lists from the fastq
// candidate set.
//
// Index separation runs first. When the index-file count matches the read
// count exactly, the library is taken as single-ended with one index per
// read and pairing stops there. When it matches exactly half of an even
// read count, the library is taken as paired-end sharing one index per
// pair: the sorted reads are chunked into consecutive pairs. An odd read
// count can never satisfy the half-ratio rule and always falls through to
// the ambiguous branch; this mirrors the historical behavior and must not
// be "fixed".
//
// Any other ratio is reported as a low-confidence warning, the index files
// are merged back and strand pairing proceeds as if no index existed.
func Pair(candidates []PathEntry, bag *AnnotationBag, rep logger.Reporter) error {
	reads := candidates

	idx, rest := partition(pattern.Index, candidates)
	if len(idx) > 0 {
		switch {
		case len(idx) == len(rest):
			rep.Report(logger.LevelInfo,
				"as many index files as read files, library looks single-ended")
			bag.Upstream = sorted(rest)
			bag.Index = sorted(idx)
			return nil

		case len(rest)%2 == 0 && len(idx)*2 == len(rest):
			rep.Report(logger.LevelInfo,
				"half as many index files as read files, library looks paired-end")
			bag.Index = sorted(idx)
			pairs := sorted(rest)
			for i := 0; i+1 < len(pairs); i += 2 {
				bag.Upstream = append(bag.Upstream, pairs[i])
				bag.Downstream = append(bag.Downstream, pairs[i+1])
			}
			return nil

		default:
			rep.Report(logger.LevelWarn,
				"could not link %d index files to %d read files, falling back to strand pairing",
				len(idx), len(rest))
			reads = sorted(append(rest, idx...))
		}
	} else {
		rep.Report(logger.LevelDebug, "no index file identified")
	}

	upstream, others := partition(pattern.R1Strand, reads)
	downstream, leftover := partition(pattern.R2Strand, others)

	if len(upstream) == len(downstream) {
		rep.Report(logger.LevelInfo, "found %d pair(s) of read files", len(downstream))
		// Leftover singles go after the paired block so upstream and
		// downstream stay aligned by position.
		bag.Upstream = append(sorted(upstream), sorted(leftover)...)
		bag.Downstream = sorted(downstream)
	} else {
		rep.Report(logger.LevelWarn, "could not pair read files with confidence, keeping all single-ended")
		bag.Upstream = sorted(reads)
	}

	if len(bag.Upstream) == 0 {
		return fmt.Errorf("paired %d candidates: %w", len(candidates), ErrNoUpstreamFile)
	}
	return nil
}
