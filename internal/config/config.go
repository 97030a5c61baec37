// ABOUTME: Centralized configuration for the creator-counsel backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Startup modes controlling how a vector-index load failure is handled.
const (
	StartupStrict   = "strict"   // abort the process
	StartupDegraded = "degraded" // serve non-RAG routes, answer 503 on RAG routes
)

// Vector store backends.
const (
	BackendSQLite = "sqlite"
	BackendQdrant = "qdrant"
)

// Config holds all configuration for the advisor backend
type Config struct {
	// HTTP settings
	Addr string

	// LLM provider settings (Groq or any OpenAI-compatible endpoint)
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float32
	Timeout        time.Duration

	// Retrieval settings
	IndexPath       string
	VectorDimension int
	RetrievalK      int
	MaxContextChars int
	StoreBackend    string

	// Qdrant backend settings
	QdrantHost       string
	QdrantPort       int
	QdrantCollection string

	// Behavior toggles
	StartupMode string
	PDFEnabled  bool

	// Optional YAML file overriding the built-in prompt templates
	PromptsFile string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Addr:             getEnv("HTTP_ADDR", ":8080"),
		APIKey:           os.Getenv("GROQ_API_KEY"),
		BaseURL:          getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:            getEnv("LLM_MODEL", "deepseek-r1-distill-llama-70b"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		Temperature:      float32(getEnvFloat("LLM_TEMPERATURE", 0.2)),
		Timeout:          getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		IndexPath:        getEnv("VECTOR_INDEX_PATH", defaultIndexPath()),
		VectorDimension:  getEnvInt("VECTOR_DIMENSION", 1536),
		RetrievalK:       getEnvInt("RETRIEVAL_K", 4),
		MaxContextChars:  getEnvInt("MAX_CONTEXT_CHARS", 8000),
		StoreBackend:     getEnv("STORE_BACKEND", BackendSQLite),
		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "creator-counsel"),
		StartupMode:      getEnv("STARTUP_MODE", StartupDegraded),
		PDFEnabled:       getEnvBool("PDF_ENABLED", true),
		PromptsFile:      os.Getenv("PROMPTS_FILE"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.RetrievalK < 1 {
		return fmt.Errorf("RETRIEVAL_K must be >= 1, got %d", c.RetrievalK)
	}
	if c.VectorDimension < 1 {
		return fmt.Errorf("VECTOR_DIMENSION must be >= 1, got %d", c.VectorDimension)
	}
	if c.MaxContextChars < 1 {
		return fmt.Errorf("MAX_CONTEXT_CHARS must be >= 1, got %d", c.MaxContextChars)
	}
	if c.StartupMode != StartupStrict && c.StartupMode != StartupDegraded {
		return fmt.Errorf("STARTUP_MODE must be %q or %q, got %q", StartupStrict, StartupDegraded, c.StartupMode)
	}
	if c.StoreBackend != BackendSQLite && c.StoreBackend != BackendQdrant {
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendQdrant, c.StoreBackend)
	}
	return nil
}

// defaultIndexPath returns the XDG-compliant default location of the
// persisted vector index.
func defaultIndexPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "creator-counsel", "index.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
