// ABOUTME: Tests for the index builder
// ABOUTME: Verifies chunk counts, batch plumbing, and failure propagation
package indexer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/rohitadv/creator-counsel/internal/models"
)

type fakeBatchEmbedder struct {
	err   error
	calls int
	texts []string
}

func (f *fakeBatchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	f.texts = append(f.texts, texts...)
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type captureWriter struct {
	err  error
	docs []models.Document
}

func (c *captureWriter) Add(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if c.err != nil {
		return c.err
	}
	c.docs = append(c.docs, docs...)
	return nil
}

func (c *captureWriter) Close() error { return nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuild_IndexesAllFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "policy.txt", "Covers need a license.\n\nShorts follow the same rules.")
	b := writeFile(t, dir, "contracts.txt", "Always read the exclusivity clause.")

	emb := &fakeBatchEmbedder{}
	w := &captureWriter{}
	builder := NewBuilder(NewChunker(), emb, w, quietLogger())

	total, err := builder.Build(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if total != len(w.docs) {
		t.Errorf("Build() = %d, writer received %d docs", total, len(w.docs))
	}
	if total < 2 {
		t.Errorf("total chunks = %d, want at least one per file", total)
	}

	sources := map[string]bool{}
	for _, d := range w.docs {
		sources[d.Source] = true
	}
	if !sources["policy.txt"] || !sources["contracts.txt"] {
		t.Errorf("sources = %v, want both file names", sources)
	}
}

func TestBuild_MissingFileAborts(t *testing.T) {
	builder := NewBuilder(NewChunker(), &fakeBatchEmbedder{}, &captureWriter{}, quietLogger())

	_, err := builder.Build(context.Background(), []string{"/nonexistent/file.txt"})
	if err == nil {
		t.Error("Build() with missing file = nil error, want error")
	}
}

func TestBuild_EmbedderFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "policy.txt", "Some policy text.")

	emb := &fakeBatchEmbedder{err: errors.New("provider down")}
	w := &captureWriter{}
	builder := NewBuilder(NewChunker(), emb, w, quietLogger())

	_, err := builder.Build(context.Background(), []string{path})
	if err == nil {
		t.Fatal("Build() = nil error, want embedding error")
	}
	if len(w.docs) != 0 {
		t.Errorf("writer received %d docs after embed failure, want 0", len(w.docs))
	}
}

func TestBuild_WriterFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "policy.txt", "Some policy text.")

	builder := NewBuilder(NewChunker(), &fakeBatchEmbedder{}, &captureWriter{err: errors.New("disk full")}, quietLogger())

	if _, err := builder.Build(context.Background(), []string{path}); err == nil {
		t.Error("Build() = nil error, want write error")
	}
}

func TestBuild_LargeFileUsesMultipleBatches(t *testing.T) {
	dir := t.TempDir()
	paragraphs := make([]string, 200)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("Community guidelines apply to every upload. ", 20)
	}
	path := writeFile(t, dir, "big.txt", strings.Join(paragraphs, "\n\n"))

	emb := &fakeBatchEmbedder{}
	w := &captureWriter{}
	builder := NewBuilder(NewChunker(), emb, w, quietLogger())

	total, err := builder.Build(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if total <= embedBatchSize {
		t.Fatalf("total = %d, want more than one batch (%d)", total, embedBatchSize)
	}
	if emb.calls < 2 {
		t.Errorf("embed calls = %d, want >= 2", emb.calls)
	}
}

func TestBuild_EmptyFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.txt", "   \n\n  ")

	emb := &fakeBatchEmbedder{}
	builder := NewBuilder(NewChunker(), emb, &captureWriter{}, quietLogger())

	total, err := builder.Build(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if emb.calls != 0 {
		t.Errorf("embed calls = %d, want 0", emb.calls)
	}
}
