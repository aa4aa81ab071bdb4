package samples

import "github.com/tdayris/bigr-utils/internal/logger"

// Annotate runs the full classification pipeline on raw discovered paths:
// dedupe, non-fastq filtering, index separation and strand pairing. The
// returned bag holds every input file in exactly one category.
func Annotate(paths []string, rep logger.Reporter) (*AnnotationBag, error) {
	entries := Dedupe(paths)

	candidates, bag, err := Classify(entries, rep)
	if err != nil {
		return nil, err
	}

	if err := Pair(candidates, bag, rep); err != nil {
		return nil, err
	}

	return bag, nil
}

// Build runs Annotate and assembles the final sample table for the given
// organism descriptor. One invocation is fully independent of any other:
// no state survives between calls.
func Build(discovered []string, organismDescriptor string, rep logger.Reporter) ([]SampleRecord, *AnnotationBag, error) {
	organism, err := ParseOrganism(organismDescriptor)
	if err != nil {
		return nil, nil, err
	}

	bag, err := Annotate(discovered, rep)
	if err != nil {
		return nil, nil, err
	}

	records, err := BuildTable(bag, organism)
	if err != nil {
		return nil, nil, err
	}

	rep.Report(logger.LevelInfo, "described %d sample(s): %d paired, %d single-ended",
		len(records), bag.Pairs(), bag.Singles())
	return records, bag, nil
}
