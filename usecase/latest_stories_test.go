package usecase

import (
	"context"
	"testing"

	"feed-indexer/domain"
)

func TestLatestStoriesUsecase_Execute(t *testing.T) {
	doc := domain.NewStoryDocument(domain.Story{
		URI:   "https://example.com/a",
		Title: "A",
	}, "https://example.com/feed.xml")

	tests := []struct {
		name      string
		count     int64
		state     domain.BackendState
		mockDocs  []domain.StoryDocument
		mockErr   error
		wantCount int
		wantLimit int64
	}{
		{
			name:      "returns stories",
			count:     5,
			state:     domain.BackendConfigured,
			mockDocs:  []domain.StoryDocument{doc},
			wantCount: 1,
			wantLimit: 5,
		},
		{
			name:      "zero count falls back to default",
			count:     0,
			state:     domain.BackendConfigured,
			mockDocs:  []domain.StoryDocument{doc},
			wantCount: 1,
			wantLimit: defaultLatestCount,
		},
		{
			name:      "excess count is capped",
			count:     100000,
			state:     domain.BackendConfigured,
			mockDocs:  []domain.StoryDocument{doc},
			wantCount: 1,
			wantLimit: maxLatestCount,
		},
		{
			name:      "unconfigured backend yields empty",
			count:     5,
			state:     domain.BackendUnconfigured,
			wantCount: 0,
		},
		{
			name:      "engine failure yields empty",
			count:     5,
			state:     domain.BackendConfigured,
			mockErr:   &domain.SearchEngineError{Op: "Latest", Err: "engine down"},
			wantCount: 0,
			wantLimit: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockSearchEngine{docs: tt.mockDocs, err: tt.mockErr}
			u := NewLatestStoriesUsecase(engine, tt.state, testLogger())

			stories := u.Execute(context.Background(), tt.count)

			if stories == nil {
				t.Fatal("Execute() returned nil, want a slice")
			}
			if len(stories) != tt.wantCount {
				t.Errorf("stories = %d, want %d", len(stories), tt.wantCount)
			}
			if tt.wantLimit != 0 && engine.lastLimit != tt.wantLimit {
				t.Errorf("engine limit = %d, want %d", engine.lastLimit, tt.wantLimit)
			}
		})
	}
}
