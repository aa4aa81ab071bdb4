package samples

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdayris/bigr-utils/internal/logger"
)

func TestClassifySingleCaptureKit(t *testing.T) {
	entries := Dedupe([]string{
		"/data/a.fastq.gz",
		"/data/capture_kit.bed",
		"/data/report.html",
		"/data/checksums.md5",
	})

	candidates, bag, err := Classify(entries, logger.Nop{})
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "/data/a.fastq.gz", candidates[0].Path)

	require.Len(t, bag.CaptureKitBed, 1)
	assert.Equal(t, "/data/capture_kit.bed", bag.CaptureKitBed[0].Path)
	assert.Len(t, bag.NonFastq, 2)
}

func TestClassifyNoCaptureKit(t *testing.T) {
	entries := Dedupe([]string{
		"/data/a.fastq.gz",
		"/data/report.html",
	})

	_, bag, err := Classify(entries, logger.Nop{})
	require.NoError(t, err)
	assert.Empty(t, bag.CaptureKitBed)
	assert.Len(t, bag.NonFastq, 1)
}

func TestClassifyMultipleBedsNoneKept(t *testing.T) {
	entries := Dedupe([]string{
		"/data/a.fastq.gz",
		"/data/kit_v1.bed",
		"/data/kit_v2.bed.gz",
		"/data/report.html",
	})

	_, bag, err := Classify(entries, logger.Nop{})
	require.NoError(t, err)

	// With more than one bed-like file, no single file can be flagged as
	// the capture kit: everything goes to the non-fastq list.
	assert.Empty(t, bag.CaptureKitBed)
	assert.Len(t, bag.NonFastq, 3)
}

func TestClassifyOnlyFastqLeavesBagEmpty(t *testing.T) {
	entries := Dedupe([]string{"/data/a.fq", "/data/b.fq"})

	candidates, bag, err := Classify(entries, logger.Nop{})
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Empty(t, bag.NonFastq)
	assert.Empty(t, bag.CaptureKitBed)
}

func TestClassifyNoFastqFails(t *testing.T) {
	entries := Dedupe([]string{"/data/a.bam", "/data/b.vcf.gz"})

	_, _, err := Classify(entries, logger.Nop{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFastqFound))
}
