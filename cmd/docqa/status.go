package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bull/docqa/internal/config"
	"github.com/bull/docqa/internal/corpus"
	"github.com/bull/docqa/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report index freshness without rebuilding or loading",
	RunE:  runStatus,
}

// runStatus compares fingerprints directly; it needs no API key and
// touches neither the embedding nor the LLM backend.
func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	current, err := corpus.Fingerprint(cfg.CorpusDir)
	if err != nil {
		return fmt.Errorf("fingerprint corpus: %w", err)
	}

	st := store.NewLocalStore(cfg.StorageDir)
	fmt.Printf("Corpus:      %s\n", cfg.CorpusDir)
	fmt.Printf("Storage:     %s\n", cfg.StorageDir)
	fmt.Printf("Fingerprint: %s\n", current)

	stored, ok := st.LoadFingerprint()
	fmt.Printf("State:       %s\n", describeState(cfg.Store.Type, st.Exists(), stored, ok, current))
	return nil
}

// describeState classifies the index from what is visible locally. The
// sidecar lives in the storage dir for every backend, but only the local
// backend keeps its snapshot there; for qdrant a matching sidecar is
// reported as unknown rather than a possibly wrong fresh, since the
// collection itself is not checked here.
func describeState(storeType string, snapshotExists bool, stored string, ok bool, current string) string {
	switch {
	case storeType != "qdrant" && !snapshotExists:
		return "stale (no persisted index)"
	case !ok:
		return "stale (fingerprint sidecar missing)"
	case stored != current:
		return "stale (corpus changed since last build)"
	case storeType == "qdrant":
		return "unknown (sidecar matches; qdrant collection not checked)"
	default:
		return "fresh"
	}
}
