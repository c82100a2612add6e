package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/bull/docqa/internal/index"
)

// QueryEmbedder embeds a single question.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Answerer synthesizes an answer from context passages.
type Answerer interface {
	Answer(ctx context.Context, question string, contexts []string) (string, error)
}

// Engine answers questions against a ready index: embed the question,
// retrieve the top-K chunks, swap each chunk's primary sentence for its
// stored window, and hand the expanded context to the answer backend.
// It holds no per-query state; the index handle is shared and read-only.
type Engine struct {
	searcher index.Searcher
	embedder QueryEmbedder
	answerer Answerer
	topK     int
}

// NewEngine creates a query engine with the given top-K (values < 1
// fall back to 3).
func NewEngine(searcher index.Searcher, embedder QueryEmbedder, answerer Answerer, topK int) *Engine {
	if topK < 1 {
		topK = 3
	}
	return &Engine{
		searcher: searcher,
		embedder: embedder,
		answerer: answerer,
		topK:     topK,
	}
}

// Query runs the full retrieval and synthesis pipeline for one question.
// Backend failures propagate unretried; the session loop decides what to
// tell the user.
func (e *Engine) Query(ctx context.Context, question string) (string, error) {
	vector, err := e.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	results, err := e.searcher.Search(ctx, vector, e.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve chunks: %w", err)
	}

	// Window replacement: the LLM sees each match's surrounding sentences,
	// not just the sentence the similarity search landed on.
	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Chunk.ContextText()
	}

	answer, err := e.answerer.Answer(ctx, question, contexts)
	if err != nil {
		return "", fmt.Errorf("synthesize answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Retrieve exposes the raw top-K retrieval step without answer synthesis.
// Used by the MCP search tool.
func (e *Engine) Retrieve(ctx context.Context, question string, topK int) ([]index.ScoredChunk, error) {
	if topK < 1 {
		topK = e.topK
	}
	vector, err := e.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return e.searcher.Search(ctx, vector, topK)
}
