// Package store persists the retrieval index and its fingerprint sidecar.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bull/docqa/internal/index"
)

var (
	// ErrCorruptIndex indicates a persisted index that cannot be read back.
	ErrCorruptIndex = errors.New("persisted index is corrupt")
	// ErrNoIndex indicates no persisted index is present.
	ErrNoIndex = errors.New("no persisted index")
)

// FingerprintFile is the sidecar holding the corpus digest, written only
// after a successful persist.
const FingerprintFile = "corpus.sha256"

// Store persists and reloads a retrieval index keyed by a corpus
// fingerprint. Persist must write the index durably before the
// fingerprint sidecar, so a reader never observes a fingerprint newer
// than the index it accompanies.
type Store interface {
	Exists() bool
	// LoadFingerprint reads the sidecar; ok is false when it is absent or
	// unreadable, which callers treat as "must rebuild", never as fatal.
	LoadFingerprint() (fingerprint string, ok bool)
	Persist(ctx context.Context, ix *index.Index, fingerprint string) error
	Load(ctx context.Context) (index.Searcher, error)
}

// readFingerprint reads the sidecar under dir.
func readFingerprint(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, FingerprintFile))
	if err != nil {
		return "", false
	}
	fp := strings.TrimSpace(string(data))
	return fp, fp != ""
}

func ensureSidecarDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}

// writeFingerprint rewrites the sidecar wholesale.
func writeFingerprint(dir, fingerprint string) error {
	path := filepath.Join(dir, FingerprintFile)
	if err := os.WriteFile(path, []byte(fingerprint+"\n"), 0o644); err != nil {
		return fmt.Errorf("write fingerprint sidecar: %w", err)
	}
	return nil
}
