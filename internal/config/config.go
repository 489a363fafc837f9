// ABOUTME: Centralized configuration for the dialrag retrieval engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the retrieval engine
type Config struct {
	// Data paths
	DataDir     string
	ArticlesDir string
	VectorsPath string
	IndexDir    string

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Indexing settings
	ChunkSize      int
	ChunkOverlap   int
	EmbedBatchSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dataDir := getEnv("DIALRAG_DATA_DIR", DefaultDataDir())

	cfg := &Config{
		DataDir:        dataDir,
		ArticlesDir:    getEnv("DIALRAG_ARTICLES_DIR", filepath.Join(dataDir, "articles")),
		VectorsPath:    getEnv("DIALRAG_VECTORS_PATH", filepath.Join(dataDir, "steering_vectors.json")),
		IndexDir:       getEnv("DIALRAG_INDEX_DIR", filepath.Join(dataDir, "vector_store")),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: getEnv("DIALRAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:      getEnvInt("DIALRAG_CHUNK_SIZE", 512),
		ChunkOverlap:   getEnvInt("DIALRAG_CHUNK_OVERLAP", 50),
		EmbedBatchSize: getEnvInt("DIALRAG_EMBED_BATCH", 32),
	}

	return cfg, cfg.Validate()
}

// DefaultDataDir returns the default data directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/dialrag"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "dialrag")
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("DIALRAG_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("DIALRAG_CHUNK_OVERLAP must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("DIALRAG_EMBED_BATCH must be positive, got %d", c.EmbedBatchSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
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
