package samples

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdayris/bigr-utils/internal/logger"
)

func pairUp(t *testing.T, paths []string, rep logger.Reporter) *AnnotationBag {
	t.Helper()
	bag := &AnnotationBag{}
	require.NoError(t, Pair(Dedupe(paths), bag, rep))
	return bag
}

func TestPairHalfIndexRatioIsPairedEnd(t *testing.T) {
	bag := pairUp(t, []string{
		"/run/sample1_R1_001.fastq.gz",
		"/run/sample1_R2_001.fastq.gz",
		"/run/sample2_R1_001.fastq.gz",
		"/run/sample2_R2_001.fastq.gz",
		"/run/sample1_I1_001.fastq.gz",
		"/run/sample2_I1_001.fastq.gz",
	}, logger.Nop{})

	require.Len(t, bag.Index, 2)
	require.Len(t, bag.Upstream, 2)
	require.Len(t, bag.Downstream, 2)

	// Sorted reads are chunked into consecutive pairs.
	assert.Equal(t, "/run/sample1_R1_001.fastq.gz", bag.Upstream[0].Path)
	assert.Equal(t, "/run/sample1_R2_001.fastq.gz", bag.Downstream[0].Path)
	assert.Equal(t, "/run/sample2_R1_001.fastq.gz", bag.Upstream[1].Path)
	assert.Equal(t, "/run/sample2_R2_001.fastq.gz", bag.Downstream[1].Path)
}

func TestPairEqualIndexRatioIsSingleEnded(t *testing.T) {
	bag := pairUp(t, []string{
		"/run/a_I1_001.fastq.gz",
		"/run/b_I1_001.fastq.gz",
		"/run/c_I1_001.fastq.gz",
		"/run/a.fastq.gz",
		"/run/b.fastq.gz",
		"/run/c.fastq.gz",
	}, logger.Nop{})

	require.Len(t, bag.Index, 3)
	require.Len(t, bag.Upstream, 3)
	assert.Empty(t, bag.Downstream, "equal index ratio means single-ended library")
}

func TestPairAmbiguousIndexRatioFallsThrough(t *testing.T) {
	rep := &recordingReporter{}
	bag := pairUp(t, []string{
		"/run/a_R1.fastq.gz",
		"/run/a_R2.fastq.gz",
		"/run/b_R1.fastq.gz",
		"/run/b_R2.fastq.gz",
		"/run/c.fastq.gz",
		"/run/d_I1_001.fastq.gz",
		"/run/e_I2_001.fastq.gz",
	}, rep)

	warnings := rep.warnings()
	require.NotEmpty(t, warnings, "ambiguous index ratio must be reported")
	assert.Contains(t, strings.Join(warnings, "\n"), "could not link 2 index files to 5 read files")

	// All 7 files fall through to strand pairing; none is kept as index.
	assert.Empty(t, bag.Index)
	assert.Len(t, bag.Upstream, 5)
	assert.Len(t, bag.Downstream, 2)
}

func TestPairOddReadCountNeverMatchesHalfRatio(t *testing.T) {
	// 3 reads and 1 index file: 1 != 3 and 1 != 3/2, and an odd read count
	// can never satisfy the half-ratio rule. Everything falls through.
	rep := &recordingReporter{}
	bag := pairUp(t, []string{
		"/run/a.fastq.gz",
		"/run/b.fastq.gz",
		"/run/c.fastq.gz",
		"/run/x_I1_001.fastq.gz",
	}, rep)

	require.NotEmpty(t, rep.warnings())
	assert.Empty(t, bag.Index)
	assert.Len(t, bag.Upstream, 4)
}

func TestPairLeftoverSinglesAppendedAfterPairs(t *testing.T) {
	bag := pairUp(t, []string{
		"/run/zz_single.fq.gz",
		"/run/a_R1.fastq.gz",
		"/run/a_R2.fastq.gz",
	}, logger.Nop{})

	require.Len(t, bag.Upstream, 2)
	require.Len(t, bag.Downstream, 1)

	// The paired upstream block comes first so positions stay aligned with
	// Downstream, singles follow.
	assert.Equal(t, "/run/a_R1.fastq.gz", bag.Upstream[0].Path)
	assert.Equal(t, "/run/zz_single.fq.gz", bag.Upstream[1].Path)
	assert.Equal(t, "/run/a_R2.fastq.gz", bag.Downstream[0].Path)
}

func TestPairUnbalancedStrandsKeepsAllSingleEnded(t *testing.T) {
	bag := pairUp(t, []string{
		"/run/a_R1.fastq.gz",
		"/run/b_R1.fastq.gz",
		"/run/a_R2.fastq.gz",
	}, logger.Nop{})

	assert.Len(t, bag.Upstream, 3)
	assert.Empty(t, bag.Downstream)
}
