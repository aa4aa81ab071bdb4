package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "journal", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordFillsIdentity(t *testing.T) {
	store := newTestStore(t)

	run, err := store.Record(context.Background(), Run{
		Command:     "samples",
		Source:      "/mnt/data/project_1234",
		Organism:    "homo_sapiens.GRCh38.109",
		SampleCount: 12,
		PairCount:   12,
		OutputPath:  "/work/config/samples.csv",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestRecentNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for index := 0; index < 3; index++ {
		_, err := store.Record(ctx, Run{
			Command:   "samples",
			Source:    "/mnt/data/project",
			CreatedAt: base.Add(time.Duration(index) * time.Hour),
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt))
}

func TestRecentEmptyJournal(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	recorded, err := store.Record(ctx, Run{
		Command:    "genomes",
		Source:     "builtin",
		OutputPath: "/work/config/genomes.csv",
	})
	require.NoError(t, err)

	runs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, recorded.ID, runs[0].ID)
	assert.Equal(t, "genomes", runs[0].Command)
	assert.Equal(t, "/work/config/genomes.csv", runs[0].OutputPath)
}
