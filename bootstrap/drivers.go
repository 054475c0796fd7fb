package bootstrap

import (
	"fmt"
	"time"

	"feed-indexer/config"
	"feed-indexer/logger"
	"feed-indexer/search_engine"

	"github.com/cenkalti/backoff/v5"
	"github.com/meilisearch/meilisearch-go"
)

// initMeilisearchClient connects to Meilisearch, retrying with exponential
// backoff while the backend comes up.
func initMeilisearchClient(cfg *config.Config) (meilisearch.ServiceManager, error) {
	maxRetries := config.ConnectRetries

	logger.Logger.Info("Connecting to Meilisearch", "host", cfg.Meilisearch.Host)

	bo := newConnectBackoff()

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		msClient := search_engine.NewMeilisearchClient(cfg.Meilisearch.Host, cfg.Meilisearch.APIKey)

		if _, healthErr := msClient.Health(); healthErr != nil {
			lastErr = healthErr
			delay := bo.NextBackOff()
			logger.Logger.Warn("Meilisearch not ready, retrying",
				"attempt", attempt,
				"max", maxRetries,
				"retry_in", delay,
				"err", healthErr,
			)
			if attempt < maxRetries {
				time.Sleep(delay)
			}
			continue
		}

		logger.Logger.Info("Connected to Meilisearch successfully")
		return msClient, nil
	}

	return nil, fmt.Errorf("failed to connect to Meilisearch after %d attempts: %w", maxRetries, lastErr)
}

// newConnectBackoff creates the backoff policy for Meilisearch connection attempts.
func newConnectBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second
	bo.Multiplier = 2
	return bo
}
