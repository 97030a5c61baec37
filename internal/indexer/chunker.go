// ABOUTME: Splits source documents into overlapping chunks for embedding
// ABOUTME: Prefers paragraph breaks, then sentence breaks, then a hard cut
package indexer

import (
	"strings"
)

// Default chunking geometry, in runes.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk is one slice of a source document. Offset is the rune offset of
// the chunk start within the document.
type Chunk struct {
	Content string
	Offset  int
}

// Chunker splits text into overlapping chunks of at most Size runes.
type Chunker struct {
	Size    int
	Overlap int
}

// NewChunker returns a chunker with the default geometry
func NewChunker() Chunker {
	return Chunker{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// Split breaks text into chunks. Cut points prefer a paragraph break
// (blank line), then a sentence end, inside the second half of the window;
// otherwise the chunk is cut hard at the size limit. Consecutive chunks
// share Overlap runes of context.
func (c Chunker) Split(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	size := c.Size
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := c.Overlap
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}

	runes := []rune(text)
	var chunks []Chunk

	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = cutPoint(runes, start, end)
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			chunks = append(chunks, Chunk{Content: content, Offset: start})
		}

		if end == len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// cutPoint picks where to end the chunk [start, limit). A break is only
// taken in the second half of the window so chunks don't degenerate.
// The halfway comparison is done in bytes, the unit LastIndex reports in.
func cutPoint(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	half := len(window) / 2

	if i := strings.LastIndex(window, "\n\n"); i > half {
		return start + len([]rune(window[:i]))
	}
	if i := strings.LastIndex(window, ". "); i > half {
		return start + len([]rune(window[:i+1]))
	}
	return limit
}
