// ABOUTME: Builds the persisted vector index from plain-text source files
// ABOUTME: Chunks each file, embeds chunks in batches, and streams to a Writer
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/rohitadv/creator-counsel/internal/models"
	"github.com/rohitadv/creator-counsel/internal/store"
)

// embedBatchSize bounds how many chunks go to the provider per request.
const embedBatchSize = 64

// BatchEmbedder embeds several texts in one provider call. Satisfied by
// llm.Client.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Builder turns source files into an embedded, persisted index.
type Builder struct {
	chunker  Chunker
	embedder BatchEmbedder
	writer   store.Writer
	log      *logrus.Logger
}

// NewBuilder wires an index builder
func NewBuilder(chunker Chunker, embedder BatchEmbedder, writer store.Writer, log *logrus.Logger) *Builder {
	if log == nil {
		log = logrus.New()
	}
	return &Builder{chunker: chunker, embedder: embedder, writer: writer, log: log}
}

// Build indexes each file in turn and returns the total number of chunks
// written. A failure on any file aborts the build.
func (b *Builder) Build(ctx context.Context, paths []string) (int, error) {
	total := 0
	for _, path := range paths {
		n, err := b.buildFile(ctx, path)
		if err != nil {
			return total, fmt.Errorf("indexing %s: %w", path, err)
		}
		b.log.WithFields(logrus.Fields{
			"file":   filepath.Base(path),
			"chunks": n,
		}).Info("indexed file")
		total += n
	}
	return total, nil
}

func (b *Builder) buildFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	chunks := b.chunker.Split(string(data))
	if len(chunks) == 0 {
		b.log.WithField("file", filepath.Base(path)).Warn("file produced no chunks")
		return 0, nil
	}

	written := 0
	for batchStart := 0; batchStart < len(chunks); batchStart += embedBatchSize {
		batchEnd := batchStart + embedBatchSize
		if batchEnd > len(chunks) {
			batchEnd = len(chunks)
		}
		batch := chunks[batchStart:batchEnd]

		texts := make([]string, len(batch))
		docs := make([]models.Document, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
			docs[i] = models.Document{
				Content: c.Content,
				Source:  filepath.Base(path),
				Offset:  c.Offset,
			}
		}

		vectors, err := b.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return written, fmt.Errorf("embedding batch: %w", err)
		}

		if err := b.writer.Add(ctx, docs, vectors); err != nil {
			return written, fmt.Errorf("writing batch: %w", err)
		}
		written += len(batch)
	}

	return written, nil
}
