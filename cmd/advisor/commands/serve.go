// ABOUTME: Serve command starts the HTTP backend
// ABOUTME: Wires config, provider client, vector store, executor, and server
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rohitadv/creator-counsel/internal/config"
	"github.com/rohitadv/creator-counsel/internal/llm"
	"github.com/rohitadv/creator-counsel/internal/pdf"
	"github.com/rohitadv/creator-counsel/internal/prompts"
	"github.com/rohitadv/creator-counsel/internal/rag"
	"github.com/rohitadv/creator-counsel/internal/server"
	"github.com/rohitadv/creator-counsel/internal/store"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP backend",
		Long: `Start the advisor HTTP backend.

Loads the vector index, connects to the LLM provider, and serves the
advisor API. With STARTUP_MODE=degraded (the default) a missing or
corrupted index keeps the server up: retrieval-backed routes answer 503
while everything else works normally.`,
		RunE: runServe,
		Example: `  # Serve with settings from the environment / .env
  advisor serve

  # Abort instead of degrading when the index is missing
  STARTUP_MODE=strict advisor serve`,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
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

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	var st store.Store
	storeAvailable := false
	opened, err := openStore(cmd.Context(), cfg, client)
	if err != nil {
		var loadErr *store.LoadError
		if cfg.StartupMode == config.StartupStrict || !errors.As(err, &loadErr) {
			return fmt.Errorf("opening vector store: %w", err)
		}
		log.WithError(err).Warn("vector index unavailable; retrieval routes will answer 503")
	} else {
		st = opened
		storeAvailable = true
		defer st.Close()
		if n, err := st.Count(cmd.Context()); err == nil {
			log.WithField("documents", n).Info("vector index loaded")
		}
	}

	executor := rag.NewExecutor(st, client, registry, cfg.RetrievalK, cfg.MaxContextChars)

	var renderer *pdf.Renderer
	if cfg.PDFEnabled {
		renderer = pdf.NewRenderer()
	}

	srv := server.NewServer(executor, renderer, storeAvailable, versionInfo.Version, log)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("advisor backend listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadRegistry returns the prompt registry, with file overrides applied
// when PROMPTS_FILE is set.
func loadRegistry(cfg *config.Config) (*prompts.Registry, error) {
	if cfg.PromptsFile == "" {
		return prompts.NewRegistry(), nil
	}
	registry, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("loading prompt overrides: %w", err)
	}
	return registry, nil
}

// openStore opens the configured vector store backend for reading.
func openStore(ctx context.Context, cfg *config.Config, embedder store.Embedder) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendQdrant:
		return store.OpenQdrant(ctx, store.QdrantConfig{
			Host:       cfg.QdrantHost,
			Port:       cfg.QdrantPort,
			Collection: cfg.QdrantCollection,
			Dimension:  cfg.VectorDimension,
		}, embedder)
	default:
		return store.Open(cfg.IndexPath, embedder, cfg.VectorDimension)
	}
}
