// Package discover produces the flat list of file paths handed to the
// sample classification engine, either from a local directory walk or from
// a remote data catalog. Discovery is plain iteration: it makes no decision
// about what a file is.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directories never descended into during a local walk: version control
// and pipeline caches hold nothing a sample sheet should describe.
var excludedDirs = map[string]bool{
	".git":            true,
	".svn":            true,
	".snakemake":      true,
	".conda":          true,
	"snakemake_cache": true,
	"conda_cache":     true,
	"__pycache__":     true,
}

// LocalOptions configures a local directory walk.
type LocalOptions struct {
	// SkipHidden excludes dot-files in addition to the fixed directory
	// exclusion list.
	SkipHidden bool
}

// Local recursively walks dir and returns the absolute path of every
// regular file found. The walk keeps going on per-entry errors; those are
// returned alongside the paths so the caller can report them.
func Local(dir string, opts LocalOptions) ([]string, []error, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var found []string
	var walkErrs []error

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			walkErrs = append(walkErrs, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if opts.SkipHidden && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.SkipHidden && d.Name()[0] == '.' {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			walkErrs = append(walkErrs, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}
		found = append(found, absPath)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return found, walkErrs, nil
}
