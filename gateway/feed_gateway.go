package gateway

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"feed-indexer/domain"
)

// FeedSource is the driver-side contract for fetching a raw feed.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error)
}

// FeedFetchGateway adapts raw gofeed output into domain records and
// classifies transport and parse failures into the ingestion sentinels.
type FeedFetchGateway struct {
	driver FeedSource
}

func NewFeedFetchGateway(driver FeedSource) *FeedFetchGateway {
	return &FeedFetchGateway{driver: driver}
}

// Fetch reads the feed and normalizes every entry into a Story. The
// emitted slice preserves source document order; sorting is the
// orchestrator's job. Every story carries the feed-level title, which is
// stamped after the read completes so item ordering inside the document
// cannot leak an item title into FeedTitle.
func (g *FeedFetchGateway) Fetch(ctx context.Context, feedURL string) (*domain.FeedReadResult, error) {
	feed, err := g.driver.Fetch(ctx, feedURL)
	if err != nil {
		return nil, classifyFeedError(err)
	}

	stories := make([]domain.Story, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		stories = append(stories, storyFromItem(item))
	}

	result := &domain.FeedReadResult{
		Title:   feed.Title,
		Stories: stories,
	}
	for i := range result.Stories {
		result.Stories[i].FeedTitle = feed.Title
	}

	return result, nil
}

// storyFromItem projects one feed entry. The entry's stable identifier is
// its GUID when present, otherwise its link. A missing or unparseable
// published date degrades to the zero-time sentinel instead of dropping
// the entry.
func storyFromItem(item *gofeed.Item) domain.Story {
	uri := item.GUID
	if uri == "" {
		uri = item.Link
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	}

	return domain.Story{
		URI:       uri,
		Title:     item.Title,
		Summary:   item.Description,
		Published: published,
	}
}

// classifyFeedError maps a raw fetch/parse error onto the domain
// sentinels by inspecting the innermost causes:
//
//   - DNS resolution failure -> ErrUnreachableHost
//   - HTTP error status      -> ErrFeedNotFound
//   - anything else from the parse stage -> ErrFeedParse (catch-all for
//     XML-shaped failures; gofeed surfaces malformed documents as plain
//     parser errors)
//
// Transport failures that are not DNS-shaped (connection refused, caller
// timeouts) do not match any ingestion kind and pass through opaque.
func classifyFeedError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &domain.FeedSourceError{Kind: domain.ErrUnreachableHost, Op: "Fetch", Err: err}
	}

	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &domain.FeedSourceError{Kind: domain.ErrFeedNotFound, Op: "Fetch", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Non-DNS transport failure; no ingestion kind matches.
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return &domain.FeedSourceError{Kind: domain.ErrFeedParse, Op: "Fetch", Err: err}
}
