// ABOUTME: Benchmark runner executing retrieval scenarios against a store
// ABOUTME: Produces per-scenario results and exports them as JSON
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rohitadv/creator-counsel/internal/store"
)

// Runner executes benchmark scenarios against a vector store.
type Runner struct {
	store   store.Store
	k       int
	verbose bool
}

// NewRunner creates a benchmark runner searching top-k per scenario
func NewRunner(st store.Store, k int, verbose bool) *Runner {
	if k <= 0 {
		k = 4
	}
	return &Runner{store: st, k: k, verbose: verbose}
}

// RunAll executes every scenario and returns the results in order.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		result, err := r.Run(ctx, sc)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", sc.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Run executes one scenario.
func (r *Runner) Run(ctx context.Context, sc Scenario) (Result, error) {
	result := Result{ScenarioID: sc.ID, ScenarioName: sc.Name}

	hits, err := r.store.SimilaritySearch(ctx, sc.Question, r.k)
	if err != nil {
		result.Status = "FAIL"
		result.ErrorMessage = err.Error()
		return result, err
	}

	for _, h := range hits {
		result.Retrieved = append(result.Retrieved, h.Document.Source)
	}

	result.SourceRecall = SourceRecall(hits, sc.ExpectedSources)
	result.ReciprocalRank = ReciprocalRank(hits, sc.ExpectedSources)
	result.KeywordCoverage = KeywordCoverage(hits, sc.ExpectedKeywords)
	result.OverallScore = Score(result.SourceRecall, result.ReciprocalRank, result.KeywordCoverage)

	if result.OverallScore >= passThreshold {
		result.Status = "PASS"
	} else {
		result.Status = "FAIL"
	}

	if r.verbose {
		fmt.Printf("%s: recall=%.2f rank=%.2f keywords=%.2f overall=%.2f [%s]\n",
			sc.ID, result.SourceRecall, result.ReciprocalRank,
			result.KeywordCoverage, result.OverallScore, result.Status)
	}

	return result, nil
}

// ExportResults writes results to a JSON file.
func (r *Runner) ExportResults(results []Result, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
