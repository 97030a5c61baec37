// ABOUTME: Groq client for chat completions and embeddings
// ABOUTME: Uses the OpenAI-compatible API surface so any compatible endpoint works
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL points at Groq's OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the default model for chat completions
	DefaultModel = "deepseek-r1-distill-llama-70b"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// ClientConfig holds configuration for the provider client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float32
	Timeout        time.Duration

	// Dimension is the expected embedding dimensionality. When set,
	// vectors of any other size are rejected. Zero disables the check.
	Dimension int
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    0.2,
		Timeout:        60 * time.Second,
	}
}

// Client wraps the OpenAI-compatible API client. Calls are synchronous,
// bounded by the configured timeout, and never retried: provider failures
// surface immediately to the caller.
type Client struct {
	client         *openai.Client
	model          string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	timeout        time.Duration
	dimension      int
}

// NewClient creates a new provider client with custom configuration
func NewClient(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("provider API key is required")
	}

	cc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cc.BaseURL = config.BaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:         openai.NewClientWithConfig(cc),
		model:          config.Model,
		embeddingModel: openai.EmbeddingModel(config.EmbeddingModel),
		temperature:    config.Temperature,
		timeout:        timeout,
		dimension:      config.Dimension,
	}, nil
}

// Generate runs a single chat completion for a fully-formed prompt and
// returns the generated text verbatim.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Embed generates an embedding vector for a single text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding: no vectors returned")
	}

	vector := resp.Data[0].Embedding
	if err := c.checkDimension(vector); err != nil {
		return nil, err
	}

	return vector, nil
}

// EmbedBatch generates embedding vectors for multiple texts in one call
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding batch: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding batch: got %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if err := c.checkDimension(d.Embedding); err != nil {
			return nil, fmt.Errorf("embedding batch item %d: %w", i, err)
		}
		vectors[i] = d.Embedding
	}

	return vectors, nil
}

// checkDimension rejects vectors that don't match the configured
// dimensionality. Catches a misconfigured embedding model before its
// vectors poison similarity scores.
func (c *Client) checkDimension(vector []float32) error {
	if c.dimension > 0 && len(vector) != c.dimension {
		return fmt.Errorf("embedding dimension %d does not match configured dimension %d", len(vector), c.dimension)
	}
	return nil
}
