package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/docqa/internal/index"
)

func sampleIndex(t *testing.T) *index.Index {
	t.Helper()
	ix := index.New("test-model", 3)
	require.NoError(t, ix.Add(index.Chunk{
		ID: "c1", DocPath: "a.txt", Sentence: "alpha.", Window: "alpha. beta.",
		Embedding: []float32{1, 0, 0},
	}))
	require.NoError(t, ix.Add(index.Chunk{
		ID: "c2", DocPath: "a.txt", ChunkIndex: 1, Sentence: "beta.", Window: "alpha. beta.",
		Embedding: []float32{0, 1, 0},
	}))
	return ix
}

func TestLocalStore_PersistThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	assert.False(t, s.Exists())
	_, ok := s.LoadFingerprint()
	assert.False(t, ok)

	require.NoError(t, s.Persist(ctx, sampleIndex(t), "fp-123"))

	assert.True(t, s.Exists())
	fp, ok := s.LoadFingerprint()
	require.True(t, ok)
	assert.Equal(t, "fp-123", fp)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)

	// The reloaded index retrieves the same content.
	results, err := loaded.Search(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].Chunk.ID)
	assert.Equal(t, "alpha. beta.", results[0].Chunk.Window)
}

func TestLocalStore_PersistRewritesFingerprint(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, s.Persist(ctx, sampleIndex(t), "fp-old"))
	require.NoError(t, s.Persist(ctx, sampleIndex(t), "fp-new"))

	fp, ok := s.LoadFingerprint()
	require.True(t, ok)
	assert.Equal(t, "fp-new", fp)
}

func TestLocalStore_LoadMissing(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestLocalStore_LoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte("{not json"), 0o644))

	_, err := NewLocalStore(dir).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptIndex)
}

func TestLocalStore_LoadDimensionMismatchIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	body := `{"dimension":3,"model":"m","chunks":[{"id":"c","sentence":"s","window":"w","embedding":[1]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(body), 0o644))

	_, err := NewLocalStore(dir).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptIndex)
}

func TestLocalStore_BlankSidecarIsAbsent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FingerprintFile), []byte("  \n"), 0o644))

	_, ok := NewLocalStore(dir).LoadFingerprint()
	assert.False(t, ok)
}
