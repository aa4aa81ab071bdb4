package samples

import (
	"fmt"

	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/pattern"
)

// Classify strips non-sequencing files from entries and records them in the
// returned bag. The surviving fastq candidates are returned in input order.
//
// The capture-kit rule is deliberately strict: a single bed-like file among
// the non-fastq residue is flagged as the suspected capture kit; zero or
// several bed-like files are all filed as plain non-fastq files, since no
// one of them can be distinguished as "the" kit.
func Classify(entries []PathEntry, rep logger.Reporter) ([]PathEntry, *AnnotationBag, error) {
	bag := &AnnotationBag{}

	candidates, rest := partition(pattern.Fastq, entries)
	rep.Report(logger.LevelDebug, "out of %d paths, %d answered the fastq family, %d did not",
		len(entries), len(candidates), len(rest))

	if len(rest) > 0 {
		beds, others := partition(pattern.CaptureKit, rest)
		switch {
		case len(beds) == 1:
			rep.Report(logger.LevelInfo, "file flagged as suspected capture kit: %s", beds[0].Path)
			bag.CaptureKitBed = beds
			bag.NonFastq = sorted(others)
		case len(beds) == 0:
			rep.Report(logger.LevelDebug, "no bed file flagged as suspected capture kit")
			bag.NonFastq = sorted(others)
		default:
			rep.Report(logger.LevelWarn, "%d bed-like files found, none kept as capture kit", len(beds))
			bag.NonFastq = append(sorted(beds), sorted(others)...)
		}
	}

	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("classified %d paths: %w", len(entries), ErrNoFastqFound)
	}

	return candidates, bag, nil
}
