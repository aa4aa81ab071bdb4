package samples

import (
	"fmt"
	"strings"
)

// Organism identifies the reference genome metadata copied onto every
// sample row, parsed from a species.build.release descriptor.
type Organism struct {
	Species string
	Build   string
	Release string
}

// ParseOrganism splits a descriptor such as homo_sapiens.GRCh38.105 into
// its three tokens. Anything else is rejected.
func ParseOrganism(descriptor string) (Organism, error) {
	tokens := strings.Split(descriptor, ".")
	if len(tokens) != 3 || tokens[0] == "" || tokens[1] == "" || tokens[2] == "" {
		return Organism{}, fmt.Errorf("descriptor %q: %w", descriptor, ErrInvalidOrganism)
	}
	return Organism{Species: tokens[0], Build: tokens[1], Release: tokens[2]}, nil
}

// String reassembles the descriptor form.
func (o Organism) String() string {
	return o.Species + "." + o.Build + "." + o.Release
}

// SampleRecord is one row of the final sample table.
type SampleRecord struct {
	SampleID   string
	Upstream   string
	Downstream string // empty for single-ended samples
	Species    string
	Build      string
	Release    string
}

// BuildTable assembles one SampleRecord per upstream entry, in pairing
// order, with the organism metadata copied onto every row. Identifier
// uniqueness is enforced by ResolveSampleIDs.
func BuildTable(bag *AnnotationBag, organism Organism) ([]SampleRecord, error) {
	ids, err := ResolveSampleIDs(bag)
	if err != nil {
		return nil, err
	}

	records := make([]SampleRecord, 0, len(bag.Upstream))
	for i, upstream := range bag.Upstream {
		record := SampleRecord{
			SampleID: ids[i],
			Upstream: upstream.Path,
			Species:  organism.Species,
			Build:    organism.Build,
			Release:  organism.Release,
		}
		if i < len(bag.Downstream) {
			record.Downstream = bag.Downstream[i].Path
		}
		records = append(records, record)
	}
	return records, nil
}
