package freshness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/docqa/internal/index"
	"github.com/bull/docqa/internal/store"
)

// stubBuilder counts builds and returns a fixed one-chunk index.
type stubBuilder struct {
	builds int
}

func (b *stubBuilder) Build(context.Context) (*index.Index, error) {
	b.builds++
	ix := index.New("stub-model", 2)
	if err := ix.Add(index.Chunk{ID: "c1", Sentence: "hello.", Window: "hello. world.", Embedding: []float32{1, 0}}); err != nil {
		return nil, err
	}
	return ix, nil
}

type fixture struct {
	ctrl      *Controller
	builder   *stubBuilder
	corpusDir string
	storeDir  string
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	corpusDir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(corpusDir, name), []byte(content), 0o644))
	}
	storeDir := t.TempDir()
	builder := &stubBuilder{}
	return &fixture{
		ctrl:      NewController(corpusDir, store.NewLocalStore(storeDir), builder, nil),
		builder:   builder,
		corpusDir: corpusDir,
		storeDir:  storeDir,
	}
}

func TestEvaluate_NoStorageIsStale(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "alpha"})

	state, fp, err := f.ctrl.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, StateStale, state)
	assert.NotEmpty(t, fp)
}

func TestEvaluate_MissingSidecarIsStale(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "alpha"})

	_, err := f.ctrl.ForceRebuild(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(f.storeDir, store.FingerprintFile)))

	state, _, err := f.ctrl.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, StateStale, state)
}

func TestEvaluate_MismatchedFingerprintIsStale(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "alpha"})

	_, err := f.ctrl.ForceRebuild(context.Background())
	require.NoError(t, err)

	// Change the corpus after persisting.
	require.NoError(t, os.WriteFile(filepath.Join(f.corpusDir, "a.txt"), []byte("ALPHA"), 0o644))

	state, _, err := f.ctrl.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, StateStale, state)
}

func TestEvaluate_MatchingFingerprintIsFresh(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "alpha"})

	_, err := f.ctrl.ForceRebuild(context.Background())
	require.NoError(t, err)

	state, _, err := f.ctrl.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, StateFresh, state)
}

func TestEnsure_IdempotentAcrossRuns(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "alpha"})
	ctx := context.Background()

	// First run: nothing persisted, must rebuild.
	_, state, err := f.ctrl.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStale, state)
	assert.Equal(t, 1, f.builder.builds)

	// Second run with an unchanged corpus: load path, no rebuild.
	searcher, state, err := f.ctrl.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateFresh, state)
	assert.Equal(t, 1, f.builder.builds)

	// The loaded index serves queries.
	results, err := searcher.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].Chunk.ID)
}

func TestEnsure_RebuildsAfterCorpusEdit(t *testing.T) {
	f := newFixture(t, map[string]string{"a.txt": "alpha"})
	ctx := context.Background()

	_, _, err := f.ctrl.Ensure(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(f.corpusDir, "a.txt"), []byte("alphb"), 0o644))

	_, state, err := f.ctrl.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStale, state)
	assert.Equal(t, 2, f.builder.builds)
}

func TestEvaluate_MissingCorpusFails(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.corpusDir = filepath.Join(t.TempDir(), "absent")

	_, _, err := f.ctrl.Evaluate()
	assert.Error(t, err)
}
