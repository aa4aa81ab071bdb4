package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestAtomicWriteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "samples.csv")

	if err := AtomicWrite(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestAtomicWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.csv")

	if err := AtomicWrite(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the destination file, found %d entries", len(entries))
	}
}

func TestGuardedWriteRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := GuardedWrite(path, []byte("new"), false)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "old" {
		t.Error("refused write must leave the destination untouched")
	}
}

func TestGuardedWriteForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := GuardedWrite(path, []byte("new"), true); err != nil {
		t.Fatalf("forced write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected forced overwrite, got %q", data)
	}
}

func TestGuardedWriteExecutablePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbatch.sh")

	if err := GuardedWriteExecutable(path, []byte("#!/usr/bin/bash\n"), false); err != nil {
		t.Fatalf("GuardedWriteExecutable failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("expected owner-executable script, mode was %v", info.Mode())
	}
}

func TestGuardedWriteConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = GuardedWrite(path, []byte("row\n"), true)
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("destination missing after concurrent writes: %v", err)
	}
	if string(data) != "row\n" {
		t.Errorf("unexpected final content: %q", data)
	}
}
