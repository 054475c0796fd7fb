package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Meilisearch MeilisearchConfig
	Ingest      IngestConfig
	HTTP        HTTPConfig
}

type MeilisearchConfig struct {
	// Host may be empty: the service then runs with search disabled and
	// ingestion still works.
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

type IngestConfig struct {
	FetchTimeout time.Duration
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Meilisearch: MeilisearchConfig{
			Host:      getEnvOrDefault("MEILISEARCH_HOST", ""),
			APIKey:    getEnvOrDefault("MEILISEARCH_API_KEY", ""),
			IndexName: getEnvOrDefault("MEILISEARCH_INDEX_NAME", "stories"),
			Timeout:   MeiliTimeout,
		},
		Ingest: IngestConfig{
			FetchTimeout: FeedFetchTimeout,
		},
		HTTP: HTTPConfig{
			Addr:              HTTPAddr,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	slog.Info("Configuration loaded",
		"meilisearch_host", cfg.Meilisearch.Host,
		"meilisearch_index", cfg.Meilisearch.IndexName,
		"http_addr", cfg.HTTP.Addr,
	)

	return cfg, nil
}

// SearchConfigured reports whether a search backend host was supplied.
func (c *Config) SearchConfigured() bool {
	return c.Meilisearch.Host != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	// Check for _FILE suffix (Docker Secrets)
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
