// Package samples turns an unordered set of discovered file paths into a
// normalized sample table: it classifies non-sequencing files, separates
// index reads, pairs upstream/downstream fastq files and derives one sample
// identifier per pair. Classification relies on filename conventions only;
// file contents are never read.
package samples

import (
	"path/filepath"
	"sort"

	"github.com/tdayris/bigr-utils/internal/pattern"
)

// PathEntry is one discovered file: its identity path and the base name all
// pattern matching runs against. Entries are immutable once created.
type PathEntry struct {
	Path string
	Base string
}

// NewEntry builds a PathEntry from a path string. Relative paths are made
// absolute against the working directory; remote catalog keys are kept
// verbatim since they are already rooted.
func NewEntry(path string) PathEntry {
	resolved := path
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			resolved = abs
		}
	}
	resolved = filepath.Clean(resolved)
	return PathEntry{Path: resolved, Base: filepath.Base(resolved)}
}

// Dedupe converts raw path strings into entries, collapsing duplicates by
// resolved path. First-seen order is preserved.
func Dedupe(paths []string) []PathEntry {
	seen := make(map[string]bool, len(paths))
	entries := make([]PathEntry, 0, len(paths))
	for _, path := range paths {
		entry := NewEntry(path)
		if seen[entry.Path] {
			continue
		}
		seen[entry.Path] = true
		entries = append(entries, entry)
	}
	return entries
}

// partition splits entries into those whose base name answers the family and
// those that do not, preserving input order on both sides.
func partition(family pattern.Family, entries []PathEntry) (matched, unmatched []PathEntry) {
	matched = make([]PathEntry, 0, len(entries))
	unmatched = make([]PathEntry, 0, len(entries))
	for _, entry := range entries {
		if pattern.Matches(family, entry.Base) {
			matched = append(matched, entry)
		} else {
			unmatched = append(unmatched, entry)
		}
	}
	return matched, unmatched
}

// sorted returns a copy of entries ordered by path.
func sorted(entries []PathEntry) []PathEntry {
	out := make([]PathEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// paths extracts the path strings of entries, in order.
func paths(entries []PathEntry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Path
	}
	return out
}
