// Package sheet serializes sample records to the samples.csv table consumed
// by downstream pipeline configuration.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/tdayris/bigr-utils/internal/filelock"
	"github.com/tdayris/bigr-utils/internal/logger"
	"github.com/tdayris/bigr-utils/internal/samples"
)

// Header is the fixed column order of the sample table.
var Header = []string{"sample_id", "upstream_file", "downstream_file", "species", "build", "release"}

// Render produces the CSV representation of records, header row included.
func Render(records []samples.SampleRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.SampleID,
			record.Upstream,
			record.Downstream,
			record.Species,
			record.Build,
			record.Release,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row for %s: %w", record.SampleID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush sample table: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders records and stores them at path under the overwrite guard.
// An existing destination without force is reported as a warning and the
// run carries on; any other failure is returned.
func Write(path string, records []samples.SampleRecord, force bool, rep logger.Reporter) error {
	data, err := Render(records)
	if err != nil {
		return err
	}

	err = filelock.GuardedWrite(path, data, force)
	if errors.Is(err, filelock.ErrExists) {
		rep.Report(logger.LevelWarn, "a sample table already exists at %s, not overwriting", path)
		return nil
	}
	if err != nil {
		return err
	}

	rep.Report(logger.LevelInfo, "sample table with %d row(s) written to %s", len(records), path)
	return nil
}
