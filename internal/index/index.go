// Package index defines the retrieval index: the chunk records produced
// by the build pipeline and the similarity search over their embeddings.
package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrDimensionMismatch indicates a vector of the wrong length was offered
// to the index.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Chunk is one retrievable unit: a primary sentence with its surrounding
// sentence window attached as metadata.
type Chunk struct {
	ID         string    `json:"id"`
	DocPath    string    `json:"doc_path"`
	ChunkIndex int       `json:"chunk_index"`
	// Section is the markdown header path for the chunk, empty for plain text.
	Section  string    `json:"section,omitempty"`
	Sentence string    `json:"sentence"`
	// Window is the sentence joined with its neighbors. Swapped in for the
	// primary sentence after retrieval so the LLM sees more context.
	Window    string    `json:"window"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// ContextText returns the text a retrieved chunk contributes to the LLM
// prompt: the window when present, otherwise the primary sentence.
func (c Chunk) ContextText() string {
	if c.Window != "" {
		return c.Window
	}
	return c.Sentence
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Searcher is the capability the query pipeline needs from any index
// backend, in-memory or remote.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int) ([]ScoredChunk, error)
}

// Index is the in-memory retrieval index: brute-force cosine similarity
// over all chunk embeddings. Immutable after build and safe for
// concurrent readers.
type Index struct {
	Dimension int       `json:"dimension"`
	Model     string    `json:"model"`
	BuiltAt   time.Time `json:"built_at"`
	Chunks    []Chunk   `json:"chunks"`
}

// New creates an empty index for the given embedding model and dimension.
func New(model string, dimension int) *Index {
	return &Index{
		Dimension: dimension,
		Model:     model,
		BuiltAt:   time.Now().UTC(),
	}
}

// Add appends a chunk, validating its embedding dimension.
func (ix *Index) Add(chunk Chunk) error {
	if len(chunk.Embedding) != ix.Dimension {
		return fmt.Errorf("%w: chunk %s has %d dimensions, expected %d",
			ErrDimensionMismatch, chunk.ID, len(chunk.Embedding), ix.Dimension)
	}
	ix.Chunks = append(ix.Chunks, chunk)
	return nil
}

// Search returns the topK chunks most similar to the query vector,
// highest score first.
func (ix *Index) Search(_ context.Context, vector []float32, topK int) ([]ScoredChunk, error) {
	if len(vector) != ix.Dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(vector), ix.Dimension)
	}
	if topK <= 0 {
		topK = 3
	}

	results := make([]ScoredChunk, 0, len(ix.Chunks))
	for _, chunk := range ix.Chunks {
		results = append(results, ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(vector, chunk.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// cosineSimilarity returns the cosine of the angle between a and b,
// in [-1, 1]. Zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
