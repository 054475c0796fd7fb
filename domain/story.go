package domain

import "time"

// Story is the canonical normalized representation of one feed entry.
// It is created during a single feed read and immutable afterwards;
// re-ingestion replaces the corresponding index document instead of
// mutating the Story.
type Story struct {
	URI       string    `json:"uri"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Published time.Time `json:"published"`
	FeedTitle string    `json:"feed_title"`
}

// FeedReadResult holds the outcome of one complete feed read: the
// feed-level title and the entries in source document order.
type FeedReadResult struct {
	Title   string
	Stories []Story
}
