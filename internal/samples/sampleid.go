package samples

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tdayris/bigr-utils/internal/pattern"
)

// Suffix families removed from derived sample names, applied in this order:
// terminal fastq suffix, terminal strand marker, terminal lane marker, then
// embedded vendor batch markers.
var (
	stripStrand = regexp.MustCompile(`_R?[12]?(_|\.)?$`)
	stripLane   = regexp.MustCompile(`_L\d+$`)
	stripVendor = regexp.MustCompile(`_E[KR]DN\d+`)
)

// StripSuffixes reduces a file base name (or a common prefix of two paired
// names) to a short sample name. The strip sequence is repeated until the
// name stops changing, so the operation is idempotent regardless of how the
// markers are stacked in the original name.
func StripSuffixes(name string) string {
	for {
		stripped := pattern.Expression(pattern.Fastq).ReplaceAllString(name, "")
		stripped = stripStrand.ReplaceAllString(stripped, "")
		stripped = stripLane.ReplaceAllString(stripped, "")
		stripped = stripVendor.ReplaceAllString(stripped, "")
		stripped = strings.Trim(stripped, "_.")
		if stripped == name {
			return stripped
		}
		name = stripped
	}
}

// commonPrefix returns the longest shared leading substring of a and b.
func commonPrefix(a, b string) string {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	i := 0
	for i < limit && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// ResolveSampleIDs derives one identifier per upstream entry. Paired files
// share the common prefix of their base names; singles use their base name
// directly. Identifiers must be non-empty and unique across the run.
func ResolveSampleIDs(bag *AnnotationBag) ([]string, error) {
	ids := make([]string, 0, len(bag.Upstream))
	seen := make(map[string]string, len(bag.Upstream))

	for i, upstream := range bag.Upstream {
		derived := upstream.Base
		if i < len(bag.Downstream) {
			derived = commonPrefix(upstream.Base, bag.Downstream[i].Base)
		}

		id := StripSuffixes(derived)
		if id == "" {
			return nil, fmt.Errorf("deriving name for %s: %w", upstream.Path, ErrEmptySampleID)
		}
		if previous, exists := seen[id]; exists {
			return nil, fmt.Errorf("%s and %s both reduce to %q: %w",
				previous, upstream.Path, id, ErrDuplicateSampleID)
		}
		seen[id] = upstream.Path
		ids = append(ids, id)
	}

	return ids, nil
}
