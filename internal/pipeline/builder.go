// Package pipeline contains the index build pipeline and the query
// engine that runs against the built index.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bull/docqa/internal/chunker"
	"github.com/bull/docqa/internal/corpus"
	"github.com/bull/docqa/internal/index"
)

// BatchEmbedder is the embedding capability the builder needs.
type BatchEmbedder interface {
	EmbedAll(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
	Dimension() int
}

// BuildResult reports what a build produced.
type BuildResult struct {
	TotalDocs   int
	TotalChunks int
	Duration    time.Duration
}

// Builder turns the corpus directory into a retrieval index:
// load documents, chunk them with the sentence-window policy, embed
// every primary sentence, assemble the searchable structure.
type Builder struct {
	corpusDir string
	chunker   *chunker.Chunker
	embedder  BatchEmbedder
	logger    *slog.Logger

	lastResult BuildResult
}

// NewBuilder creates a builder over corpusDir.
func NewBuilder(corpusDir string, ch *chunker.Chunker, embedder BatchEmbedder, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		corpusDir: corpusDir,
		chunker:   ch,
		embedder:  embedder,
		logger:    logger,
	}
}

// Build produces a fresh index. An empty corpus or any embedding failure
// aborts the build; a partial index is never returned.
func (b *Builder) Build(ctx context.Context) (*index.Index, error) {
	start := time.Now()

	docs, err := corpus.Load(b.corpusDir)
	if err != nil {
		return nil, err
	}
	b.logger.Info("loaded corpus", "dir", b.corpusDir, "documents", len(docs))

	var chunks []index.Chunk
	for _, doc := range docs {
		docChunks, err := b.chunker.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.Path, err)
		}
		b.logger.Debug("chunked document", "path", doc.Path, "chunks", len(docChunks))
		chunks = append(chunks, docChunks...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: documents contain no text", corpus.ErrEmptyCorpus)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Sentence
	}
	vectors, err := b.embedder.EmbedAll(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}

	ix := index.New(b.embedder.Model(), b.embedder.Dimension())
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
		if err := ix.Add(chunks[i]); err != nil {
			return nil, err
		}
	}

	b.lastResult = BuildResult{
		TotalDocs:   len(docs),
		TotalChunks: len(chunks),
		Duration:    time.Since(start),
	}
	b.logger.Info("index built",
		"documents", b.lastResult.TotalDocs,
		"chunks", b.lastResult.TotalChunks,
		"duration", b.lastResult.Duration,
	)
	return ix, nil
}

// LastResult returns statistics from the most recent successful build.
func (b *Builder) LastResult() BuildResult {
	return b.lastResult
}
