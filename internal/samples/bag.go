package samples

// AnnotationBag records every file the classifier and pairer set aside, one
// explicit field per recognized category. Stages only ever add entries; a
// file excluded by an early stage never reappears in a later one.
type AnnotationBag struct {
	// NonFastq holds files that answered neither the fastq family nor the
	// single-capture-kit rule (reports, checksums, stray beds, ...).
	NonFastq []PathEntry

	// CaptureKitBed holds the single file flagged as the suspected capture
	// kit. Populated only when exactly one bed-like file was found.
	CaptureKitBed []PathEntry

	// Index holds barcode/index read files separated from biological reads.
	Index []PathEntry

	// Upstream holds first-read files plus unpaired singles, pair-aligned
	// by position with Downstream for the first len(Downstream) entries.
	Upstream []PathEntry

	// Downstream holds second-read files of confirmed pairs.
	Downstream []PathEntry
}

// Pairs returns the number of upstream entries that have a downstream mate.
func (b *AnnotationBag) Pairs() int {
	return len(b.Downstream)
}

// Singles returns the number of upstream entries without a downstream mate.
func (b *AnnotationBag) Singles() int {
	return len(b.Upstream) - len(b.Downstream)
}
