package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalWalksRecursively(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a_R1.fastq.gz"))
	touch(t, filepath.Join(dir, "run1", "a_R2.fastq.gz"))
	touch(t, filepath.Join(dir, "run1", "deep", "capture.bed"))

	found, walkErrs, err := Local(dir, LocalOptions{})
	if err != nil {
		t.Fatalf("Local failed: %v", err)
	}
	if len(walkErrs) != 0 {
		t.Fatalf("unexpected walk errors: %v", walkErrs)
	}
	if len(found) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(found), found)
	}
	for _, path := range found {
		if !filepath.IsAbs(path) {
			t.Errorf("discovered path is not absolute: %s", path)
		}
	}
}

func TestLocalSkipsExcludedDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "keep.fastq.gz"))
	touch(t, filepath.Join(dir, ".git", "objects", "blob"))
	touch(t, filepath.Join(dir, ".snakemake", "lock"))
	touch(t, filepath.Join(dir, "conda_cache", "pkg.tar.bz2"))

	found, _, err := Local(dir, LocalOptions{})
	if err != nil {
		t.Fatalf("Local failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected only the kept file, got %v", found)
	}
}

func TestLocalSkipHidden(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "visible.fq"))
	touch(t, filepath.Join(dir, ".hidden.fq"))
	touch(t, filepath.Join(dir, ".hiddendir", "inner.fq"))

	found, _, err := Local(dir, LocalOptions{SkipHidden: true})
	if err != nil {
		t.Fatalf("Local failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 file with hidden entries skipped, got %v", found)
	}
}

func TestLocalRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	touch(t, file)

	if _, _, err := Local(file, LocalOptions{}); err == nil {
		t.Fatal("expected an error when target is not a directory")
	}
}

func TestLocalMissingDirectory(t *testing.T) {
	if _, _, err := Local("/does/not/exist", LocalOptions{}); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
