// ABOUTME: Qdrant-backed vector store as an alternative to the local SQLite index
// ABOUTME: Uses the official gRPC client with cosine distance and payload documents
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/rohitadv/creator-counsel/internal/models"
)

// QdrantConfig configures the remote vector store backend.
type QdrantConfig struct {
	Host       string
	Port       int
	Collection string
	Dimension  int
}

// QdrantStore implements Store and Writer against a remote Qdrant collection.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	embedder   Embedder
	dimension  int
}

// OpenQdrant connects to Qdrant and ensures the collection exists with the
// configured dimension and cosine distance. Connection or collection
// failures surface as *LoadError so startup handling matches the local
// index path.
func OpenQdrant(ctx context.Context, cfg QdrantConfig, embedder Embedder) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	})
	if err != nil {
		return nil, &LoadError{Path: fmt.Sprintf("qdrant://%s:%d", cfg.Host, cfg.Port), Err: err}
	}

	exists, err := client.CollectionExists(ctx, cfg.Collection)
	if err != nil {
		return nil, &LoadError{Path: fmt.Sprintf("qdrant://%s:%d/%s", cfg.Host, cfg.Port, cfg.Collection), Err: err}
	}
	if !exists {
		if err := client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: cfg.Collection,
			VectorsConfig: &qdrant.VectorsConfig{
				Config: &qdrant.VectorsConfig_Params{
					Params: &qdrant.VectorParams{
						Size:     uint64(cfg.Dimension),
						Distance: qdrant.Distance_Cosine,
					},
				},
			},
		}); err != nil {
			return nil, &LoadError{Path: fmt.Sprintf("qdrant://%s:%d/%s", cfg.Host, cfg.Port, cfg.Collection), Err: err}
		}
	}

	return &QdrantStore{
		client:     client,
		collection: cfg.Collection,
		embedder:   embedder,
		dimension:  cfg.Dimension,
	}, nil
}

// SimilaritySearch embeds the query and runs a cosine query against the
// collection, most-similar first.
func (s *QdrantStore) SimilaritySearch(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query embedding dimension %d does not match collection dimension %d", len(vector), s.dimension)
	}

	limit := uint64(k)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		Query:          qdrant.NewQuery(vector...),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying qdrant: %w", err)
	}

	results := make([]models.SearchResult, 0, len(points))
	for _, p := range points {
		doc := models.Document{}
		if v, ok := p.Payload["content"]; ok {
			doc.Content = v.GetStringValue()
		}
		if v, ok := p.Payload["source"]; ok {
			doc.Source = v.GetStringValue()
		}
		if v, ok := p.Payload["offset"]; ok {
			doc.Offset = int(v.GetIntegerValue())
		}
		results = append(results, models.SearchResult{
			Document: doc,
			Score:    float64(p.Score),
		})
	}

	return results, nil
}

// Add upserts documents with their vectors into the collection.
func (s *QdrantStore) Add(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents and vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(uuid.New().String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content": doc.Content,
				"source":  doc.Source,
				"offset":  int64(doc.Offset),
			}),
		}
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Count returns the number of points in the collection.
func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}
	return int(n), nil
}

func (s *QdrantStore) Close() error {
	return s.client.Close()
}
