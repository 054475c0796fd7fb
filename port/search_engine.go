package port

import (
	"context"

	"feed-indexer/domain"
)

// SearchEngine is the index-side contract shared by the index manager and
// the query paths.
type SearchEngine interface {
	// EnsureIndex idempotently creates or updates the index schema.
	EnsureIndex(ctx context.Context) error
	// IndexDocuments uploads one batch; documents with an existing id are
	// overwritten.
	IndexDocuments(ctx context.Context, docs []domain.StoryDocument) error
	// Search runs a full-text query ordered published-descending and
	// returns the page plus the estimated total hit count.
	Search(ctx context.Context, query string, offset, limit int64) ([]domain.StoryDocument, int64, error)
	// Latest returns the most recently published documents, newest first.
	Latest(ctx context.Context, limit int64) ([]domain.StoryDocument, error)
}
