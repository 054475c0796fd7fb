package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"feed-indexer/domain"
	"feed-indexer/usecase"
)

// FeedIngestor ingests one feed by URL.
type FeedIngestor interface {
	Execute(ctx context.Context, feedURL string) (*usecase.IngestResult, error)
}

// FeedEventPayload is the payload carried by feed ingestion events.
type FeedEventPayload struct {
	FeedURL string `json:"feed_url"`
}

// IngestEventHandler processes feed ingestion events from the stream.
//
// Failure handling distinguishes the feed's fault from ours: a feed that
// is invalid, unreachable, missing, or unparseable will not get better on
// redelivery, so those events are logged and acknowledged. Anything else
// (engine down, transient transport trouble) is returned as an error so
// the message stays pending and gets retried.
type IngestEventHandler struct {
	ingestor FeedIngestor
	logger   *slog.Logger
}

// NewIngestEventHandler creates a new IngestEventHandler.
func NewIngestEventHandler(ingestor FeedIngestor, logger *slog.Logger) *IngestEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestEventHandler{
		ingestor: ingestor,
		logger:   logger,
	}
}

// HandleEvent processes a single event.
func (h *IngestEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case "FeedRegistered", "IngestFeed":
		return h.handleIngest(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *IngestEventHandler) handleIngest(ctx context.Context, event Event) error {
	var payload FeedEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal feed event payload",
			"event_id", event.EventID,
			"error", err,
		)
		// A malformed payload will never parse on redelivery.
		return nil
	}

	result, err := h.ingestor.Execute(ctx, payload.FeedURL)
	if err != nil {
		if domain.IsFeedError(err) {
			h.logger.Warn("feed rejected, not retrying",
				"event_id", event.EventID,
				"feed_url", payload.FeedURL,
				"error", err,
			)
			return nil
		}
		return err
	}

	h.logger.Info("feed ingested from event",
		"event_id", event.EventID,
		"feed_url", payload.FeedURL,
		"feed_title", result.FeedTitle,
		"stories", len(result.Stories),
		"indexed", result.Indexed,
	)
	return nil
}
