package usecase

import (
	"context"
	"log/slog"

	"feed-indexer/domain"
	"feed-indexer/port"
)

const (
	defaultLatestCount = 20
	maxLatestCount     = 1000
)

// LatestStoriesUsecase returns the most recently published stories in the
// index, newest first. It never fails: a disabled backend or an engine
// error yields an empty slice, which renders as "nothing yet" instead of
// an error page.
type LatestStoriesUsecase struct {
	searchEngine port.SearchEngine
	state        domain.BackendState
	log          *slog.Logger
}

func NewLatestStoriesUsecase(searchEngine port.SearchEngine, state domain.BackendState, log *slog.Logger) *LatestStoriesUsecase {
	return &LatestStoriesUsecase{
		searchEngine: searchEngine,
		state:        state,
		log:          log,
	}
}

func (u *LatestStoriesUsecase) Execute(ctx context.Context, count int64) []domain.Story {
	if count <= 0 {
		count = defaultLatestCount
	}
	if count > maxLatestCount {
		count = maxLatestCount
	}

	if !u.state.Configured() {
		return []domain.Story{}
	}

	docs, err := u.searchEngine.Latest(ctx, count)
	if err != nil {
		u.log.ErrorContext(ctx, "failed to load latest stories", "count", count, "error", err)
		return []domain.Story{}
	}

	stories := make([]domain.Story, 0, len(docs))
	for _, doc := range docs {
		stories = append(stories, doc.Story())
	}
	return stories
}
