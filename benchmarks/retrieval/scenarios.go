// ABOUTME: Benchmark scenario data structures for retrieval-quality tests
// ABOUTME: Defines golden questions with expected sources and context keywords
package retrieval

// Scenario represents one retrieval-quality benchmark case
type Scenario struct {
	ID       string
	Name     string
	Question string

	// Sources (file names) expected among the retrieved documents
	ExpectedSources []string

	// Keywords that should appear somewhere in the retrieved context
	ExpectedKeywords []string
}

// Result represents the outcome of a benchmark scenario
type Result struct {
	ScenarioID      string   `json:"scenario_id"`
	ScenarioName    string   `json:"scenario_name"`
	SourceRecall    float64  `json:"source_recall"`
	ReciprocalRank  float64  `json:"reciprocal_rank"`
	KeywordCoverage float64  `json:"keyword_coverage"`
	OverallScore    float64  `json:"overall_score"`
	Status          string   `json:"status"` // "PASS" or "FAIL"
	Retrieved       []string `json:"retrieved"`
	ErrorMessage    string   `json:"error_message,omitempty"`
}

// DefaultScenarios returns the built-in golden set covering the corpus the
// advisor is normally indexed with.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			ID:               "policy-monetization",
			Name:             "Monetization thresholds",
			Question:         "How many subscribers and watch hours do I need to monetize my channel?",
			ExpectedSources:  []string{"youtube-policies.txt"},
			ExpectedKeywords: []string{"monetization", "subscribers"},
		},
		{
			ID:               "policy-copyright",
			Name:             "Copyright strikes",
			Question:         "What happens after three copyright strikes?",
			ExpectedSources:  []string{"youtube-policies.txt"},
			ExpectedKeywords: []string{"copyright", "strike"},
		},
		{
			ID:               "law-sponsorship",
			Name:             "Sponsorship disclosure",
			Question:         "Do I have to disclose paid brand promotions in my videos?",
			ExpectedSources:  []string{"creator-law.txt"},
			ExpectedKeywords: []string{"disclosure", "sponsorship"},
		},
		{
			ID:               "law-gst",
			Name:             "GST on creator income",
			Question:         "Is GST applicable on my brand deal income?",
			ExpectedSources:  []string{"creator-law.txt"},
			ExpectedKeywords: []string{"GST"},
		},
	}
}
