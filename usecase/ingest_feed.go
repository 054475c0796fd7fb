package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"feed-indexer/domain"
	"feed-indexer/port"
)

// IngestFeedUsecase reads a remote feed, normalizes its entries into
// stories sorted newest first, and pushes them to the search index.
// The index upload is advisory; the stories are returned to the caller
// whether or not indexing succeeded.
type IngestFeedUsecase struct {
	fetcher port.FeedFetcher
	indexer *IndexStoriesUsecase
	log     *slog.Logger
}

type IngestResult struct {
	FeedTitle string
	Stories   []domain.Story
	Indexed   bool
}

func NewIngestFeedUsecase(fetcher port.FeedFetcher, indexer *IndexStoriesUsecase, log *slog.Logger) *IngestFeedUsecase {
	return &IngestFeedUsecase{
		fetcher: fetcher,
		indexer: indexer,
		log:     log,
	}
}

func (u *IngestFeedUsecase) Execute(ctx context.Context, feedURL string) (*IngestResult, error) {
	if err := validateFeedURL(feedURL); err != nil {
		return nil, err
	}

	result, err := u.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	stories := result.Stories
	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].Published.After(stories[j].Published)
	})

	indexed := u.indexer.Execute(ctx, stories, feedURL)

	u.log.InfoContext(ctx, "feed ingested",
		"feed_url", feedURL,
		"feed_title", result.Title,
		"stories", len(stories),
		"indexed", indexed,
	)

	return &IngestResult{
		FeedTitle: result.Title,
		Stories:   stories,
		Indexed:   indexed,
	}, nil
}

// validateFeedURL rejects anything that is not an absolute http(s) URL
// with a host, before any network traffic happens.
func validateFeedURL(feedURL string) error {
	parsed, err := url.ParseRequestURI(feedURL)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFeedAddress, feedURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidFeedAddress, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host in %q", domain.ErrInvalidFeedAddress, feedURL)
	}
	return nil
}
