// ABOUTME: SQLite-backed persisted vector index using modernc.org/sqlite
// ABOUTME: Loads the whole index into memory at startup; vectors stored as BLOBs
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rohitadv/creator-counsel/internal/models"
)

// Schema contains all SQL statements for index initialization
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    source TEXT,
    start_offset INTEGER DEFAULT 0,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

type indexEntry struct {
	doc    models.Document
	vector []float64
}

// SQLiteStore holds the entire index in memory for the process lifetime.
// Read-only after Open; concurrent searches need no locking.
type SQLiteStore struct {
	embedder  Embedder
	entries   []indexEntry
	dimension int
}

// Open loads a persisted index from path and pairs it with an embedder.
// Every stored vector must match the configured dimension; otherwise a
// *LoadError is returned and the store is unusable.
func Open(path string, embedder Embedder, dimension int) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(`SELECT content, source, start_offset, vector FROM documents ORDER BY rowid`)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer rows.Close()

	var entries []indexEntry
	for rows.Next() {
		var (
			content string
			source  sql.NullString
			offset  int
			blob    []byte
		)
		if err := rows.Scan(&content, &source, &offset, &blob); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}

		vector := blobToVector(blob)
		if len(vector) != dimension {
			return nil, &LoadError{
				Path: path,
				Err:  fmt.Errorf("invalid embedding dimension: expected %d, got %d", dimension, len(vector)),
			}
		}

		entries = append(entries, indexEntry{
			doc:    models.Document{Content: content, Source: source.String, Offset: offset},
			vector: vector,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return &SQLiteStore{embedder: embedder, entries: entries, dimension: dimension}, nil
}

// SimilaritySearch embeds the query and scans the in-memory index with
// cosine similarity, returning the top-k results most-similar first.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	// A wrong-size query vector would score 0 against every document and
	// silently return arbitrary results, so it has to be an error here.
	if len(queryVec) != s.dimension {
		return nil, fmt.Errorf("query embedding dimension %d does not match index dimension %d", len(queryVec), s.dimension)
	}
	qv := toFloat64(queryVec)

	results := make([]models.SearchResult, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, models.SearchResult{
			Document: e.doc,
			Score:    cosineSimilarity(qv, e.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of indexed documents
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	return len(s.entries), nil
}

func (s *SQLiteStore) Close() error {
	return nil
}

// SQLiteWriter appends documents to an on-disk index during a build.
type SQLiteWriter struct {
	db *sql.DB
	mu sync.Mutex
}

// CreateSQLite opens (or creates) an index file for writing, creating
// parent directories and the schema as needed.
func CreateSQLite(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteWriter{db: db}, nil
}

// Add stores documents with their vectors. docs and vectors must align.
func (w *SQLiteWriter) Add(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents and vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	for i, doc := range docs {
		blob := vectorToBlob(toFloat64(vectors[i]))
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, content, source, start_offset, vector)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), doc.Content, doc.Source, doc.Offset, blob); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting document: %w", err)
		}
	}

	return tx.Commit()
}

func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
