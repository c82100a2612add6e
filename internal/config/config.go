// Package config holds the explicit application configuration.
// All components receive their settings through this value; there is no
// process-wide settings singleton.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrAPIKeyMissing indicates the required LLM API key is not configured.
var ErrAPIKeyMissing = errors.New("API key not set")

// DefaultPath is the config file consulted when no --config flag is given.
const DefaultPath = "docqa.yaml"

// ChunkingConfig controls the sentence-window chunking policy.
type ChunkingConfig struct {
	// WindowSize is the number of neighboring sentences attached on each
	// side of a chunk's primary sentence.
	WindowSize int `yaml:"window_size"`
}

// RetrievalConfig controls the query-time retrieval step.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// EmbeddingConfig selects the embedding model.
type EmbeddingConfig struct {
	Model     string `yaml:"model"`
	BatchSize int    `yaml:"batch_size"`
}

// LLMConfig configures the answer-synthesis backend.
type LLMConfig struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	// ProxyURL routes OpenAI traffic through an outbound proxy.
	// The PROXY_URL environment variable takes precedence.
	ProxyURL string `yaml:"proxy_url"`
}

// QdrantConfig contains connection details for the qdrant store backend.
type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
}

// StoreConfig selects where the built index is persisted.
type StoreConfig struct {
	// Type is "local" (JSON snapshot on disk) or "qdrant".
	Type   string       `yaml:"type"`
	Qdrant QdrantConfig `yaml:"qdrant"`
}

// Config is the root configuration threaded into every component.
type Config struct {
	CorpusDir  string          `yaml:"corpus_dir"`
	StorageDir string          `yaml:"storage_dir"`
	Chunking   ChunkingConfig  `yaml:"chunking"`
	Retrieval  RetrievalConfig `yaml:"retrieval"`
	Embedding  EmbeddingConfig `yaml:"embedding"`
	LLM        LLMConfig       `yaml:"llm"`
	Store      StoreConfig     `yaml:"store"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		CorpusDir:  "./data",
		StorageDir: "./storage",
		Chunking:   ChunkingConfig{WindowSize: 1},
		Retrieval:  RetrievalConfig{TopK: 3},
		Embedding:  EmbeddingConfig{Model: "text-embedding-3-small", BatchSize: 100},
		LLM:        LLMConfig{Model: "gpt-4o-mini", APIKeyEnv: "OPENAI_API_KEY"},
		Store: StoreConfig{
			Type:   "local",
			Qdrant: QdrantConfig{Host: "localhost", Port: 6334, Collection: "docqa"},
		},
	}
}

// Load reads the config file at path. A missing file yields defaults;
// a present but malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// APIKey resolves the LLM API key from the environment.
// Returns ErrAPIKeyMissing when the variable is unset or empty.
func (c *Config) APIKey() (string, error) {
	env := c.LLM.APIKeyEnv
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	key := os.Getenv(env)
	if key == "" {
		return "", fmt.Errorf("%w: set %s in the environment or .env file", ErrAPIKeyMissing, env)
	}
	return key, nil
}

// ProxyURL resolves the optional outbound proxy, PROXY_URL winning over
// the config file.
func (c *Config) ProxyURL() string {
	if v := os.Getenv("PROXY_URL"); v != "" {
		return v
	}
	return c.LLM.ProxyURL
}

func applyDefaults(cfg *Config) {
	if cfg.CorpusDir == "" {
		cfg.CorpusDir = "./data"
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "./storage"
	}
	if cfg.Chunking.WindowSize < 0 {
		cfg.Chunking.WindowSize = 0
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.BatchSize <= 0 {
		cfg.Embedding.BatchSize = 100
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "local"
	}
	if cfg.Store.Qdrant.Host == "" {
		cfg.Store.Qdrant.Host = "localhost"
	}
	if cfg.Store.Qdrant.Port == 0 {
		cfg.Store.Qdrant.Port = 6334
	}
	if cfg.Store.Qdrant.Collection == "" {
		cfg.Store.Qdrant.Collection = "docqa"
	}
}
