// ABOUTME: Index command builds the vector knowledge base from text files
// ABOUTME: Chunks, embeds, and writes to the configured store backend
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rohitadv/creator-counsel/internal/config"
	"github.com/rohitadv/creator-counsel/internal/indexer"
	"github.com/rohitadv/creator-counsel/internal/llm"
	"github.com/rohitadv/creator-counsel/internal/store"
)

var (
	indexChunkSize int
	indexOverlap   int
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <file>...",
		Short: "Build the knowledge base from text files",
		Long: `Build the vector knowledge base from plain-text source files.

Each file is split into overlapping chunks, embedded through the
configured provider, and written to the store backend selected by
STORE_BACKEND (a local SQLite index by default).`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIndex,
		Example: `  # Index the policy corpus into the default local index
  advisor index docs/youtube-policies.txt docs/creator-law.txt

  # Index into a running Qdrant instance
  STORE_BACKEND=qdrant advisor index docs/*.txt`,
	}

	cmd.Flags().IntVar(&indexChunkSize, "chunk-size", indexer.DefaultChunkSize, "Chunk size in characters")
	cmd.Flags().IntVar(&indexOverlap, "overlap", indexer.DefaultChunkOverlap, "Overlap between chunks in characters")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := newLogger()

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    cfg.Temperature,
		Timeout:        cfg.Timeout,
		Dimension:      cfg.VectorDimension,
	})
	if err != nil {
		return fmt.Errorf("initializing provider client: %w", err)
	}

	var writer store.Writer
	switch cfg.StoreBackend {
	case config.BackendQdrant:
		writer, err = store.OpenQdrant(cmd.Context(), store.QdrantConfig{
			Host:       cfg.QdrantHost,
			Port:       cfg.QdrantPort,
			Collection: cfg.QdrantCollection,
			Dimension:  cfg.VectorDimension,
		}, client)
	default:
		writer, err = store.CreateSQLite(cfg.IndexPath)
	}
	if err != nil {
		return fmt.Errorf("opening index for writing: %w", err)
	}
	defer writer.Close()

	chunker := indexer.Chunker{Size: indexChunkSize, Overlap: indexOverlap}
	builder := indexer.NewBuilder(chunker, client, writer, log)

	total, err := builder.Build(cmd.Context(), args)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks from %d files\n", total, len(args))
	}
	return nil
}
