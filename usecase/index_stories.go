package usecase

import (
	"context"
	"log/slog"

	"feed-indexer/domain"
	"feed-indexer/port"
)

// IndexStoriesUsecase uploads story batches to the search index. Indexing
// is advisory: callers learn whether the batch landed, never an error, so
// a broken or absent backend cannot fail ingestion.
type IndexStoriesUsecase struct {
	searchEngine port.SearchEngine
	state        domain.BackendState
	log          *slog.Logger
}

func NewIndexStoriesUsecase(searchEngine port.SearchEngine, state domain.BackendState, log *slog.Logger) *IndexStoriesUsecase {
	return &IndexStoriesUsecase{
		searchEngine: searchEngine,
		state:        state,
		log:          log,
	}
}

// Execute projects the stories into index documents tagged with source and
// uploads them as one batch. Returns true only when every document is
// live in the index. A disabled backend or an empty batch returns false
// without touching the engine.
func (u *IndexStoriesUsecase) Execute(ctx context.Context, stories []domain.Story, source string) bool {
	if !u.state.Configured() {
		return false
	}
	if len(stories) == 0 {
		return false
	}

	docs := make([]domain.StoryDocument, 0, len(stories))
	for _, story := range stories {
		docs = append(docs, domain.NewStoryDocument(story, source))
	}

	if err := u.searchEngine.IndexDocuments(ctx, docs); err != nil {
		u.log.ErrorContext(ctx, "failed to index stories",
			"source", source,
			"count", len(docs),
			"error", err,
		)
		return false
	}

	u.log.InfoContext(ctx, "indexed stories", "source", source, "count", len(docs))
	return true
}
