// ABOUTME: Deterministic retrieval-quality metrics over search results
// ABOUTME: Source recall, reciprocal rank, and keyword coverage of the context
package retrieval

import (
	"strings"

	"github.com/rohitadv/creator-counsel/internal/models"
)

// passThreshold is the overall score a scenario needs to pass.
const passThreshold = 0.5

// SourceRecall returns the fraction of expected sources present among the
// retrieved documents.
func SourceRecall(results []models.SearchResult, expected []string) float64 {
	if len(expected) == 0 {
		return 1.0
	}

	found := 0
	for _, want := range expected {
		for _, r := range results {
			if r.Document.Source == want {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(expected))
}

// ReciprocalRank returns 1/rank of the first retrieved document whose
// source is expected, or 0 when none is.
func ReciprocalRank(results []models.SearchResult, expected []string) float64 {
	for i, r := range results {
		for _, want := range expected {
			if r.Document.Source == want {
				return 1.0 / float64(i+1)
			}
		}
	}
	return 0.0
}

// KeywordCoverage returns the fraction of expected keywords appearing in
// the combined retrieved content, case-insensitively.
func KeywordCoverage(results []models.SearchResult, keywords []string) float64 {
	if len(keywords) == 0 {
		return 1.0
	}

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n")
	}
	haystack := strings.ToUpper(sb.String())

	found := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToUpper(kw)) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

// Score combines the metrics into one overall score, weighting recall and
// keyword coverage over rank position.
func Score(recall, rank, coverage float64) float64 {
	return 0.4*recall + 0.2*rank + 0.4*coverage
}
