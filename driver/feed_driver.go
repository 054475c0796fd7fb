package driver

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultFeedUserAgent = "feed-indexer/1.0"

// FeedDriver fetches and parses remote syndication feeds. It owns the
// HTTP client so feed reads get a bounded timeout independent of other
// outbound traffic.
type FeedDriver struct {
	parser *gofeed.Parser
}

// NewFeedDriver creates a FeedDriver with the given fetch timeout.
func NewFeedDriver(fetchTimeout time.Duration) *FeedDriver {
	parser := gofeed.NewParser()
	parser.UserAgent = defaultFeedUserAgent
	parser.Client = &http.Client{
		Timeout: fetchTimeout,
	}

	return &FeedDriver{parser: parser}
}

// Fetch retrieves and parses the feed at feedURL. Errors are returned raw;
// classification into ingestion failure kinds happens in the gateway.
func (d *FeedDriver) Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	feed, err := d.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, &DriverError{
			Op:  "Fetch",
			Err: err,
		}
	}
	return feed, nil
}
