package samples

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrganism(t *testing.T) {
	organism, err := ParseOrganism("homo_sapiens.GRCh38.105")
	require.NoError(t, err)
	assert.Equal(t, "homo_sapiens", organism.Species)
	assert.Equal(t, "GRCh38", organism.Build)
	assert.Equal(t, "105", organism.Release)
	assert.Equal(t, "homo_sapiens.GRCh38.105", organism.String())
}

func TestParseOrganismRejectsMalformed(t *testing.T) {
	for _, descriptor := range []string{
		"",
		"homo_sapiens",
		"homo_sapiens.GRCh38",
		"homo_sapiens.GRCh38.105.extra",
		"homo_sapiens..105",
	} {
		_, err := ParseOrganism(descriptor)
		require.Error(t, err, "descriptor %q", descriptor)
		assert.True(t, errors.Is(err, ErrInvalidOrganism))
	}
}

func TestBuildTableCopiesOrganismOntoEveryRow(t *testing.T) {
	bag := &AnnotationBag{
		Upstream: []PathEntry{
			{Path: "/r/A_R1.fq.gz", Base: "A_R1.fq.gz"},
			{Path: "/r/lonely.fq.gz", Base: "lonely.fq.gz"},
		},
		Downstream: []PathEntry{
			{Path: "/r/A_R2.fq.gz", Base: "A_R2.fq.gz"},
		},
	}

	records, err := BuildTable(bag, Organism{Species: "mus_musculus", Build: "GRCm39", Release: "109"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "A", records[0].SampleID)
	assert.Equal(t, "/r/A_R2.fq.gz", records[0].Downstream)
	assert.Equal(t, "lonely", records[1].SampleID)
	assert.Empty(t, records[1].Downstream)

	for _, record := range records {
		assert.Equal(t, "mus_musculus", record.Species)
		assert.Equal(t, "GRCm39", record.Build)
		assert.Equal(t, "109", record.Release)
	}
}
