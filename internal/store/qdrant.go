package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"

	"github.com/bull/docqa/internal/index"
)

// QdrantStore keeps chunk vectors in a qdrant collection while the
// fingerprint sidecar stays in the local storage directory, so the
// freshness contract is identical to the local store.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	dimension  int
	sidecarDir string
}

// NewQdrantStore connects to qdrant and validates health with retry,
// failing fast when the server is unreachable.
func NewQdrantStore(host string, port int, collection string, dimension int, sidecarDir string) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	s := &QdrantStore{
		client:     client,
		collection: collection,
		dimension:  dimension,
		sidecarDir: sidecarDir,
	}

	if err := s.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("qdrant unreachable: %w", err)
	}
	return s, nil
}

func (s *QdrantStore) healthCheckWithRetry(ctx context.Context) error {
	b := newBackoff()
	return backoff.Retry(func() error {
		result, err := s.client.HealthCheck(ctx)
		if err != nil {
			return err
		}
		if result == nil || result.Title == "" {
			return fmt.Errorf("invalid health check response")
		}
		return nil
	}, backoff.WithContext(b, ctx))
}

// Close releases the gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Exists reports whether the collection is present on the server.
func (s *QdrantStore) Exists() bool {
	collections, err := s.client.ListCollections(context.Background())
	if err != nil {
		return false
	}
	for _, name := range collections {
		if name == s.collection {
			return true
		}
	}
	return false
}

// LoadFingerprint reads the local sidecar.
func (s *QdrantStore) LoadFingerprint() (string, bool) {
	return readFingerprint(s.sidecarDir)
}

// Persist recreates the collection, upserts every chunk, then writes the
// fingerprint sidecar. As with the local store, the sidecar goes last.
func (s *QdrantStore) Persist(ctx context.Context, ix *index.Index, fingerprint string) error {
	if err := s.recreateCollection(ctx); err != nil {
		return err
	}

	batchSize := 100
	for i := 0; i < len(ix.Chunks); i += batchSize {
		end := min(i+batchSize, len(ix.Chunks))
		points := make([]*qdrant.PointStruct, 0, end-i)
		for _, chunk := range ix.Chunks[i:end] {
			if len(chunk.Embedding) != s.dimension {
				return fmt.Errorf("%w: chunk %s has %d dimensions, expected %d",
					index.ErrDimensionMismatch, chunk.ID, len(chunk.Embedding), s.dimension)
			}
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(chunk.ID),
				Vectors: qdrant.NewVectors(chunk.Embedding...),
				Payload: qdrant.NewValueMap(map[string]any{
					"doc_path":    chunk.DocPath,
					"chunk_index": chunk.ChunkIndex,
					"section":     chunk.Section,
					"sentence":    chunk.Sentence,
					"window":      chunk.Window,
				}),
			})
		}
		if err := s.upsertWithRetry(ctx, points); err != nil {
			return fmt.Errorf("upsert batch %d-%d: %w", i, end, err)
		}
	}

	if err := ensureSidecarDir(s.sidecarDir); err != nil {
		return err
	}
	return writeFingerprint(s.sidecarDir, fingerprint)
}

// Load verifies the collection exists and returns a searcher over it.
func (s *QdrantStore) Load(ctx context.Context) (index.Searcher, error) {
	if !s.Exists() {
		return nil, fmt.Errorf("%w: collection %s", ErrNoIndex, s.collection)
	}
	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	if info.GetPointsCount() == 0 {
		return nil, fmt.Errorf("%w: collection %s is empty", ErrCorruptIndex, s.collection)
	}
	return &qdrantSearcher{store: s}, nil
}

func (s *QdrantStore) recreateCollection(ctx context.Context) error {
	if s.Exists() {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
	}
	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

func (s *QdrantStore) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	b := newBackoff()
	return backoff.Retry(func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         points,
		})
		return err
	}, backoff.WithContext(b, ctx))
}

// qdrantSearcher implements index.Searcher over the remote collection.
type qdrantSearcher struct {
	store *QdrantStore
}

func (q *qdrantSearcher) Search(ctx context.Context, vector []float32, topK int) ([]index.ScoredChunk, error) {
	if len(vector) != q.store.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			index.ErrDimensionMismatch, len(vector), q.store.dimension)
	}
	if topK <= 0 {
		topK = 3
	}

	results, err := q.store.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.store.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	scored := make([]index.ScoredChunk, 0, len(results))
	for _, r := range results {
		payload := r.Payload
		scored = append(scored, index.ScoredChunk{
			Chunk: index.Chunk{
				ID:         r.Id.GetUuid(),
				DocPath:    payload["doc_path"].GetStringValue(),
				ChunkIndex: int(payload["chunk_index"].GetIntegerValue()),
				Section:    payload["section"].GetStringValue(),
				Sentence:   payload["sentence"].GetStringValue(),
				Window:     payload["window"].GetStringValue(),
			},
			Score: float64(r.Score),
		})
	}
	return scored, nil
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return b
}
