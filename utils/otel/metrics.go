package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for feed-indexer.
var Metrics *FeedIndexerMetrics

// FeedIndexerMetrics contains all metric instruments.
type FeedIndexerMetrics struct {
	FeedsIngestedTotal  metric.Int64Counter
	StoriesIndexedTotal metric.Int64Counter
	ErrorsTotal         metric.Int64Counter
	IngestDuration      metric.Float64Histogram
	SearchDuration      metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("feed-indexer")

	feedsIngestedTotal, err := meter.Int64Counter("feed_indexer_feeds_ingested_total",
		metric.WithDescription("Total number of feeds ingested"),
	)
	if err != nil {
		return err
	}

	storiesIndexedTotal, err := meter.Int64Counter("feed_indexer_stories_indexed_total",
		metric.WithDescription("Total number of stories uploaded to the search index"),
	)
	if err != nil {
		return err
	}

	errorsTotal, err := meter.Int64Counter("feed_indexer_errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return err
	}

	ingestDuration, err := meter.Float64Histogram("feed_indexer_ingest_duration_seconds",
		metric.WithDescription("Feed ingestion duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("feed_indexer_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &FeedIndexerMetrics{
		FeedsIngestedTotal:  feedsIngestedTotal,
		StoriesIndexedTotal: storiesIndexedTotal,
		ErrorsTotal:         errorsTotal,
		IngestDuration:      ingestDuration,
		SearchDuration:      searchDuration,
	}

	return nil
}
