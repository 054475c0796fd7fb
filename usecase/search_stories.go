package usecase

import (
	"context"
	"errors"
	"log/slog"

	"feed-indexer/domain"
	"feed-indexer/port"
	"feed-indexer/utils"
)

const maxSearchLimit = 1000

// SearchStoriesUsecase runs keyword queries against the story index.
// Invalid input is the caller's fault and comes back as an error; a
// disabled or failing backend is not, and comes back as Available=false
// with no hits.
type SearchStoriesUsecase struct {
	searchEngine port.SearchEngine
	state        domain.BackendState
	sanitizer    *utils.QuerySanitizer
	log          *slog.Logger
}

type SearchResult struct {
	Available          bool
	Query              string
	Hits               []domain.Story
	EstimatedTotalHits int64
}

func NewSearchStoriesUsecase(searchEngine port.SearchEngine, state domain.BackendState, log *slog.Logger) *SearchStoriesUsecase {
	return &SearchStoriesUsecase{
		searchEngine: searchEngine,
		state:        state,
		sanitizer:    utils.NewQuerySanitizer(),
		log:          log,
	}
}

func (u *SearchStoriesUsecase) Execute(ctx context.Context, query string, offset, limit int64) (*SearchResult, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	if offset < 0 {
		return nil, errors.New("offset cannot be negative")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}
	if limit > maxSearchLimit {
		return nil, errors.New("limit too large")
	}

	if err := u.sanitizer.ValidateQuery(ctx, query); err != nil {
		return nil, err
	}
	sanitizedQuery, err := u.sanitizer.SanitizeQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	if !u.state.Configured() {
		return &SearchResult{Available: false, Query: sanitizedQuery, Hits: []domain.Story{}}, nil
	}

	// A query that sanitizes away entirely matches nothing.
	if sanitizedQuery == "" {
		return &SearchResult{Available: true, Query: sanitizedQuery, Hits: []domain.Story{}}, nil
	}

	docs, total, err := u.searchEngine.Search(ctx, sanitizedQuery, offset, limit)
	if err != nil {
		u.log.ErrorContext(ctx, "search failed", "query", sanitizedQuery, "error", err)
		return &SearchResult{Available: false, Query: sanitizedQuery, Hits: []domain.Story{}}, nil
	}

	hits := make([]domain.Story, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, doc.Story())
	}

	return &SearchResult{
		Available:          true,
		Query:              sanitizedQuery,
		Hits:               hits,
		EstimatedTotalHits: total,
	}, nil
}
