// ABOUTME: Command-line benchmark runner for retrieval-quality tests
// ABOUTME: Executes the golden scenarios against the configured store
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rohitadv/creator-counsel/benchmarks/retrieval"
	"github.com/rohitadv/creator-counsel/internal/config"
	"github.com/rohitadv/creator-counsel/internal/llm"
	"github.com/rohitadv/creator-counsel/internal/store"
)

func main() {
	// Command-line flags
	scenarioID := flag.String("scenario", "", "Run a single scenario by ID. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.APIKey == "" {
		log.Fatal("GROQ_API_KEY environment variable is required for benchmarks")
	}

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
		log.Fatalf("Failed to create provider client: %v", err)
	}

	ctx := context.Background()

	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendQdrant:
		st, err = store.OpenQdrant(ctx, store.QdrantConfig{
			Host:       cfg.QdrantHost,
			Port:       cfg.QdrantPort,
			Collection: cfg.QdrantCollection,
			Dimension:  cfg.VectorDimension,
		}, client)
	default:
		st, err = store.Open(cfg.IndexPath, client, cfg.VectorDimension)
	}
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}
	defer st.Close()

	// Print header
	fmt.Println("========================================")
	fmt.Println("Creator Counsel Retrieval Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner := retrieval.NewRunner(st, cfg.RetrievalK, *verbose)

	scenarios := retrieval.DefaultScenarios()
	if *scenarioID != "" {
		var picked []retrieval.Scenario
		for _, sc := range scenarios {
			if sc.ID == *scenarioID {
				picked = append(picked, sc)
			}
		}
		if len(picked) == 0 {
			log.Fatalf("Unknown scenario ID: %s", *scenarioID)
		}
		scenarios = picked
	}

	results, err := runner.RunAll(ctx, scenarios)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	// Print summary
	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.ScenarioID, result.ScenarioName)
		fmt.Printf("  Source Recall:    %.2f\n", result.SourceRecall)
		fmt.Printf("  Reciprocal Rank:  %.2f\n", result.ReciprocalRank)
		fmt.Printf("  Keyword Coverage: %.2f\n", result.KeywordCoverage)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Scenarios: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	// Export results
	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	// Exit with error code if any scenarios failed
	if failed > 0 {
		os.Exit(1)
	}
}
