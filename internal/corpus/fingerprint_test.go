package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFingerprint_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "sub/b.txt", "beta")

	first, err := Fingerprint(dir)
	require.NoError(t, err)
	second, err := Fingerprint(dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestFingerprint_SingleByteSensitivity(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.txt", "beta")

	before, err := Fingerprint(dir)
	require.NoError(t, err)

	writeFile(t, dir, "b.txt", "betA")
	after, err := Fingerprint(dir)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestFingerprint_RenameSamePositionIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "m.txt", "middle")
	writeFile(t, dir, "z.txt", "omega")

	before, err := Fingerprint(dir)
	require.NoError(t, err)

	// Rename keeps the file between a.txt and z.txt, so traversal order
	// and content are both unchanged.
	require.NoError(t, os.Rename(filepath.Join(dir, "m.txt"), filepath.Join(dir, "n.txt")))

	after, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFingerprint_IgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")

	before, err := Fingerprint(dir)
	require.NoError(t, err)

	writeFile(t, dir, ".hidden", "secret")
	writeFile(t, dir, ".git/config", "gitstuff")

	after, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFingerprint_MissingDirFails(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoad_RelativeSortedPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.txt", "last")
	writeFile(t, dir, "a.txt", "first")
	writeFile(t, dir, "sub/c.md", "nested")

	docs, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "a.txt", docs[0].Path)
	assert.Equal(t, "sub/c.md", docs[1].Path)
	assert.Equal(t, "z.txt", docs[2].Path)
	assert.Equal(t, "first", docs[0].Content)
}

func TestLoad_EmptyCorpus(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}
