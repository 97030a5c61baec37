// ABOUTME: Core data types for the retrieval pipeline
// ABOUTME: Documents are immutable once indexed; results are per-query values
package models

// Document is one indexed unit of text. The application never mutates
// documents after indexing, only reads them back from similarity search.
type Document struct {
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// SearchResult is a single similarity-search hit. Score is cosine
// similarity, higher means more similar.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}
