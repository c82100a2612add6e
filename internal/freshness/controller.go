// Package freshness decides, once per process start, whether the
// persisted index still matches the corpus or must be rebuilt.
package freshness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bull/docqa/internal/corpus"
	"github.com/bull/docqa/internal/index"
	"github.com/bull/docqa/internal/store"
)

// State is the freshness of the persisted index relative to the corpus.
type State int

const (
	StateUnknown State = iota
	StateFresh
	StateStale
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Builder produces a fresh index from the corpus.
type Builder interface {
	Build(ctx context.Context) (*index.Index, error)
}

// Controller compares the corpus fingerprint against the persisted one
// and either loads the stored index or rebuilds and persists a new one.
// The decision is made once per process lifetime; the filesystem is not
// watched afterwards.
type Controller struct {
	corpusDir   string
	store       store.Store
	builder     Builder
	logger      *slog.Logger
	fingerprint func(dir string) (string, error)
}

// NewController wires the fingerprinter, store, and builder together.
func NewController(corpusDir string, st store.Store, builder Builder, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		corpusDir:   corpusDir,
		store:       st,
		builder:     builder,
		logger:      logger,
		fingerprint: corpus.Fingerprint,
	}
}

// Evaluate computes the current corpus fingerprint and classifies the
// persisted index. It never mutates anything.
func (c *Controller) Evaluate() (State, string, error) {
	current, err := c.fingerprint(c.corpusDir)
	if err != nil {
		return StateUnknown, "", fmt.Errorf("fingerprint corpus: %w", err)
	}
	if !c.store.Exists() {
		return StateStale, current, nil
	}
	stored, ok := c.store.LoadFingerprint()
	if !ok || stored != current {
		return StateStale, current, nil
	}
	return StateFresh, current, nil
}

// Ensure returns a ready index handle: the stored one when fresh, a
// freshly built and persisted one when stale. Any failure here is fatal
// to startup; a partial index is never returned.
func (c *Controller) Ensure(ctx context.Context) (index.Searcher, State, error) {
	state, current, err := c.Evaluate()
	if err != nil {
		return nil, StateUnknown, err
	}

	if state == StateStale {
		searcher, err := c.rebuild(ctx, current)
		return searcher, state, err
	}

	c.logger.Info("corpus unchanged, loading persisted index", "fingerprint", current[:12])
	searcher, err := c.store.Load(ctx)
	if err != nil {
		return nil, state, fmt.Errorf("load index: %w", err)
	}
	return searcher, state, nil
}

// ForceRebuild rebuilds and persists regardless of the stored fingerprint.
func (c *Controller) ForceRebuild(ctx context.Context) (index.Searcher, error) {
	current, err := c.fingerprint(c.corpusDir)
	if err != nil {
		return nil, fmt.Errorf("fingerprint corpus: %w", err)
	}
	return c.rebuild(ctx, current)
}

func (c *Controller) rebuild(ctx context.Context, fingerprint string) (index.Searcher, error) {
	c.logger.Info("corpus changed, rebuilding index", "fingerprint", fingerprint[:12])
	ix, err := c.builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if err := c.store.Persist(ctx, ix, fingerprint); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}
	c.logger.Info("index rebuilt", "chunks", len(ix.Chunks), "built_at", ix.BuiltAt)
	return ix, nil
}
