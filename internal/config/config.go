package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Service identity reported by /health. Fixed at build time, not configurable.
const (
	ServiceName    = "cortex-embedding-service"
	ServiceVersion = "2.1.0"
)

// Config holds the configuration for the embedding service.
// Environment variables are parsed from the EMBEDDING_ prefix.
type Config struct {
	// HTTP listener. Loopback by default; the service is meant to sit
	// behind whatever terminates TLS and auth.
	HTTPHost string `envconfig:"HTTP_HOST" default:"127.0.0.1"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8000"`

	// Embedding backend (Ollama-compatible embeddings API).
	OllamaURL  string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	EmbedModel string `envconfig:"EMBED_MODEL" default:"all-minilm"`

	// Per-call backend timeout and the startup probe budget. The probe
	// budget is larger because a cold backend may load model weights on
	// the first call.
	RequestTimeoutSeconds int `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"60"`
	InitTimeoutSeconds    int `envconfig:"INIT_TIMEOUT_SECONDS" default:"120"`
}

// New creates a Config by parsing environment variables.
// Example: EMBEDDING_HTTP_PORT, EMBEDDING_EMBED_MODEL.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EMBEDDING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("http_host", cfg.HTTPHost).
		Int("http_port", cfg.HTTPPort).
		Str("ollama_url", cfg.OllamaURL).
		Str("embed_model", cfg.EmbedModel).
		Int("request_timeout_seconds", cfg.RequestTimeoutSeconds).
		Int("init_timeout_seconds", cfg.InitTimeoutSeconds).
		Msg("Configuration loaded")

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.EmbedModel == "" {
		return fmt.Errorf("EMBED_MODEL must not be empty")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %d", c.RequestTimeoutSeconds)
	}
	if c.InitTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid INIT_TIMEOUT_SECONDS: %d", c.InitTimeoutSeconds)
	}
	return nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		HTTPHost:              "127.0.0.1",
		HTTPPort:              8000,
		OllamaURL:             "http://localhost:11434",
		EmbedModel:            "all-minilm",
		RequestTimeoutSeconds: 5,
		InitTimeoutSeconds:    5,
	}
}

// GetHTTPAddr returns the HTTP listener address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// RequestTimeout returns the per-call backend timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// InitTimeout returns the startup probe budget.
func (c *Config) InitTimeout() time.Duration {
	return time.Duration(c.InitTimeoutSeconds) * time.Second
}
