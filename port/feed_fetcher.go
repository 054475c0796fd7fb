package port

import (
	"context"

	"feed-indexer/domain"
)

// FeedFetcher reads one remote syndication feed and normalizes its entries.
// Implementations classify transport and parse failures into the domain
// feed sentinels; unclassifiable causes pass through opaque.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*domain.FeedReadResult, error)
}
