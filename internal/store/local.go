package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bull/docqa/internal/index"
)

// IndexFile is the JSON snapshot of the in-memory index.
const IndexFile = "index.json"

// LocalStore keeps the index as a JSON snapshot plus fingerprint sidecar
// in a single storage directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir. The directory is created
// on first persist, not here.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Exists reports whether a persisted index snapshot is present.
func (s *LocalStore) Exists() bool {
	info, err := os.Stat(filepath.Join(s.dir, IndexFile))
	return err == nil && !info.IsDir()
}

// LoadFingerprint reads the sidecar written by the last successful persist.
func (s *LocalStore) LoadFingerprint() (string, bool) {
	return readFingerprint(s.dir)
}

// Persist writes the index snapshot, then the fingerprint sidecar.
// The snapshot goes through a temp file and rename so a crash mid-write
// leaves the previous snapshot intact.
func (s *LocalStore) Persist(_ context.Context, ix *index.Index, fingerprint string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	data, err := json.Marshal(ix)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	target := filepath.Join(s.dir, IndexFile)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write index snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit index snapshot: %w", err)
	}

	// Sidecar last: the fingerprint must never be newer than the index.
	return writeFingerprint(s.dir, fingerprint)
}

// Load reconstructs the index from the snapshot.
func (s *LocalStore) Load(_ context.Context) (index.Searcher, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, IndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoIndex, s.dir)
		}
		return nil, fmt.Errorf("read index snapshot: %w", err)
	}

	var ix index.Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	if ix.Dimension <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimension %d", ErrCorruptIndex, ix.Dimension)
	}
	for i, c := range ix.Chunks {
		if len(c.Embedding) != ix.Dimension {
			return nil, fmt.Errorf("%w: chunk %d has %d dimensions, expected %d",
				ErrCorruptIndex, i, len(c.Embedding), ix.Dimension)
		}
	}
	return &ix, nil
}
