package main

import (
	"fmt"
	"log/slog"

	"github.com/bull/docqa/internal/chunker"
	"github.com/bull/docqa/internal/config"
	"github.com/bull/docqa/internal/embedding"
	"github.com/bull/docqa/internal/freshness"
	"github.com/bull/docqa/internal/llm"
	"github.com/bull/docqa/internal/pipeline"
	"github.com/bull/docqa/internal/store"
)

// app bundles the wired components behind every command.
type app struct {
	cfg        *config.Config
	embedder   *embedding.Embedder
	answerer   *llm.Answerer
	builder    *pipeline.Builder
	store      store.Store
	controller *freshness.Controller
	close      func() error
}

// newApp assembles the pipeline from config. A missing API key fails
// here, before any index work begins.
func newApp(cfg *config.Config) (*app, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	client, err := embedding.NewClient(apiKey, cfg.ProxyURL())
	if err != nil {
		return nil, fmt.Errorf("create OpenAI client: %w", err)
	}

	embedder := embedding.NewEmbedder(client, cfg.Embedding.Model, cfg.Embedding.BatchSize)
	answerer := llm.NewAnswerer(client.Client(), cfg.LLM.Model)
	builder := pipeline.NewBuilder(cfg.CorpusDir, chunker.New(cfg.Chunking.WindowSize), embedder, slog.Default())

	st, closeStore, err := newStore(cfg, embedder.Dimension())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		embedder:   embedder,
		answerer:   answerer,
		builder:    builder,
		store:      st,
		controller: freshness.NewController(cfg.CorpusDir, st, builder, slog.Default()),
		close:      closeStore,
	}, nil
}

// newStore selects the index store backend from config.
func newStore(cfg *config.Config, dimension int) (store.Store, func() error, error) {
	switch cfg.Store.Type {
	case "local", "":
		return store.NewLocalStore(cfg.StorageDir), func() error { return nil }, nil
	case "qdrant":
		q := cfg.Store.Qdrant
		qs, err := store.NewQdrantStore(q.Host, q.Port, q.Collection, dimension, cfg.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		return qs, qs.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

func loadApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}
