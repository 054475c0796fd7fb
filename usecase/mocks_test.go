package usecase

import (
	"context"
	"log/slog"

	"feed-indexer/domain"
)

// mockSearchEngine implements port.SearchEngine for usecase tests.
type mockSearchEngine struct {
	docs  []domain.StoryDocument
	total int64
	err   error

	indexedBatches [][]domain.StoryDocument
	lastQuery      string
	lastOffset     int64
	lastLimit      int64
}

func (m *mockSearchEngine) EnsureIndex(ctx context.Context) error {
	return m.err
}

func (m *mockSearchEngine) IndexDocuments(ctx context.Context, docs []domain.StoryDocument) error {
	if m.err != nil {
		return m.err
	}
	m.indexedBatches = append(m.indexedBatches, docs)
	return nil
}

func (m *mockSearchEngine) Search(ctx context.Context, query string, offset, limit int64) ([]domain.StoryDocument, int64, error) {
	m.lastQuery = query
	m.lastOffset = offset
	m.lastLimit = limit
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.docs, m.total, nil
}

func (m *mockSearchEngine) Latest(ctx context.Context, limit int64) ([]domain.StoryDocument, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

// mockFeedFetcher implements port.FeedFetcher for usecase tests.
type mockFeedFetcher struct {
	result *domain.FeedReadResult
	err    error

	fetchedURLs []string
}

func (m *mockFeedFetcher) Fetch(ctx context.Context, feedURL string) (*domain.FeedReadResult, error) {
	m.fetchedURLs = append(m.fetchedURLs, feedURL)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
