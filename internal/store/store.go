// ABOUTME: Vector store abstraction over the persisted similarity index
// ABOUTME: Defines the Store/Writer interfaces, load errors, and cosine math
package store

import (
	"context"
	"fmt"
	"math"

	"github.com/rohitadv/creator-counsel/internal/models"
)

// Embedder maps text to a fixed-dimension vector. The store pairs an
// embedder with its index so callers search by raw query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store is a read-only similarity index. Results are ordered most-similar
// first. Implementations must be safe for concurrent readers.
type Store interface {
	// SimilaritySearch embeds the query and returns the top-k closest
	// documents by cosine similarity.
	SimilaritySearch(ctx context.Context, query string, k int) ([]models.SearchResult, error)

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (int, error)

	Close() error
}

// Writer receives documents and their vectors during an index build.
type Writer interface {
	Add(ctx context.Context, docs []models.Document, vectors [][]float32) error
	Close() error
}

// LoadError reports a missing, corrupted, or dimension-mismatched index.
// In degraded startup mode the server keeps running without RAG routes
// when Open returns one of these.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading vector index %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
