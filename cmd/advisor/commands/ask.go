// ABOUTME: Ask command runs a one-shot advisor query from the terminal
// ABOUTME: Uses the same retrieval and generation pipeline as the HTTP API
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rohitadv/creator-counsel/internal/config"
	"github.com/rohitadv/creator-counsel/internal/llm"
	"github.com/rohitadv/creator-counsel/internal/prompts"
	"github.com/rohitadv/creator-counsel/internal/rag"
	"github.com/rohitadv/creator-counsel/internal/store"
)

var askTask string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the advisor a one-shot question",
		Long: `Ask the advisor a single question and print the answer.

Runs the same pipeline as the HTTP API: retrieval-backed tasks pull
context from the knowledge base before generation.`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
		Example: `  # Ask Rohit Advocate a creator-law question
  advisor ask "Can a brand cancel a signed sponsorship deal?"

  # Ask about YouTube policy specifically
  advisor ask --task policy-qa "Are reaction videos fair use?"

  # Simplify a contract snippet
  advisor ask --task contract-simplify "$(cat contract.txt)"`,
	}

	cmd.Flags().StringVar(&askTask, "task", prompts.TaskLegalAssistantQA, "Advisor task to run")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	var st store.Store
	if prompts.RequiresRetrieval(askTask) {
		opened, err := openStore(cmd.Context(), cfg, client)
		if err != nil {
			return fmt.Errorf("opening vector store: %w", err)
		}
		st = opened
		defer st.Close()
	}

	executor := rag.NewExecutor(st, client, registry, cfg.RetrievalK, cfg.MaxContextChars)

	log.WithField("task", askTask).Debug("running advisor task")
	answer, err := executor.Execute(cmd.Context(), askTask, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
