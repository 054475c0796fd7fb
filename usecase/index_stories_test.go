package usecase

import (
	"context"
	"testing"
	"time"

	"feed-indexer/domain"
)

func TestIndexStoriesUsecase_Execute(t *testing.T) {
	story := domain.Story{
		URI:       "https://example.com/a",
		Title:     "A",
		Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		state   domain.BackendState
		stories []domain.Story
		mockErr error
		want    bool
	}{
		{
			name:    "successful upload",
			state:   domain.BackendConfigured,
			stories: []domain.Story{story},
			want:    true,
		},
		{
			name:    "unconfigured backend",
			state:   domain.BackendUnconfigured,
			stories: []domain.Story{story},
			want:    false,
		},
		{
			name:    "misconfigured backend",
			state:   domain.BackendMisconfigured,
			stories: []domain.Story{story},
			want:    false,
		},
		{
			name:    "empty batch",
			state:   domain.BackendConfigured,
			stories: nil,
			want:    false,
		},
		{
			name:    "engine failure",
			state:   domain.BackendConfigured,
			stories: []domain.Story{story},
			mockErr: &domain.SearchEngineError{Op: "IndexDocuments", Err: "index failed"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockSearchEngine{err: tt.mockErr}
			u := NewIndexStoriesUsecase(engine, tt.state, testLogger())

			got := u.Execute(context.Background(), tt.stories, "https://example.com/feed.xml")

			if got != tt.want {
				t.Errorf("Execute() = %v, want %v", got, tt.want)
			}
			if !tt.want && tt.mockErr == nil && len(engine.indexedBatches) != 0 {
				t.Error("engine should not be called when upload is skipped")
			}
		})
	}
}

func TestIndexStoriesUsecase_Execute_ProjectsDocuments(t *testing.T) {
	published := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	engine := &mockSearchEngine{}
	u := NewIndexStoriesUsecase(engine, domain.BackendConfigured, testLogger())

	ok := u.Execute(context.Background(), []domain.Story{
		{URI: "https://example.com/a", Title: "A", Published: published},
		{URI: "https://example.com/b", Title: "B", Published: published},
	}, "https://example.com/feed.xml")

	if !ok {
		t.Fatal("Execute() = false, want true")
	}
	if len(engine.indexedBatches) != 1 {
		t.Fatalf("expected a single batch, got %d", len(engine.indexedBatches))
	}

	batch := engine.indexedBatches[0]
	if len(batch) != 2 {
		t.Fatalf("batch size = %d, want 2", len(batch))
	}
	if batch[0].ID != domain.DeriveStoryID("https://example.com/a", published) {
		t.Errorf("document ID = %q, want derived id", batch[0].ID)
	}
	for _, doc := range batch {
		if doc.Source != "https://example.com/feed.xml" {
			t.Errorf("document Source = %q, want feed url", doc.Source)
		}
	}
}
