package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feed-indexer/domain"
	"feed-indexer/logger"
	"feed-indexer/usecase"
)

// User-facing ingestion error messages, keyed by failure kind.
const (
	msgInvalidFeedAddress = "There was a problem parsing the URL."
	msgUnreachableHost    = "Unknown host name."
	msgFeedNotFound       = "Syndication feed not found."
	msgFeedParse          = "There was a problem parsing the feed. Are you sure that URL is a syndication feed?"
	msgUnknown            = "An unknown error occurred."
	msgSearchUnavailable  = "search is currently unavailable"
)

const defaultSearchTake = 50

// FeedIngestor ingests one feed by URL.
type FeedIngestor interface {
	Execute(ctx context.Context, feedURL string) (*usecase.IngestResult, error)
}

// StorySearcher runs keyword queries against the story index.
type StorySearcher interface {
	Execute(ctx context.Context, query string, offset, limit int64) (*usecase.SearchResult, error)
}

// LatestLister returns the most recently published stories.
type LatestLister interface {
	Execute(ctx context.Context, count int64) []domain.Story
}

// Handler contains all HTTP handlers for the feed indexer.
type Handler struct {
	ingestor FeedIngestor
	searcher StorySearcher
	latest   LatestLister
}

func NewHandler(ingestor FeedIngestor, searcher StorySearcher, latest LatestLister) *Handler {
	return &Handler{
		ingestor: ingestor,
		searcher: searcher,
		latest:   latest,
	}
}

type IngestFeedRequest struct {
	FeedURL string `json:"feed_url"`
}

type IngestFeedResponse struct {
	FeedTitle string         `json:"feed_title"`
	Indexed   bool           `json:"indexed"`
	Stories   []domain.Story `json:"stories"`
}

type SearchStoriesResponse struct {
	Query              string         `json:"query"`
	Hits               []domain.Story `json:"hits"`
	EstimatedTotalHits int64          `json:"estimated_total_hits"`
}

type LatestStoriesResponse struct {
	Stories []domain.Story `json:"stories"`
}

func (h *Handler) IngestFeed(c echo.Context) error {
	var req IngestFeedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgInvalidFeedAddress})
	}

	ctx := logger.WithFeedURL(c.Request().Context(), req.FeedURL)

	result, err := h.ingestor.Execute(ctx, req.FeedURL)
	if err != nil {
		status, message := ingestErrorResponse(err)
		if status == http.StatusInternalServerError {
			logger.Logger.ErrorContext(ctx, "feed ingestion failed", "error", err)
		}
		return c.JSON(status, map[string]string{"error": message})
	}

	return c.JSON(http.StatusOK, IngestFeedResponse{
		FeedTitle: result.FeedTitle,
		Indexed:   result.Indexed,
		Stories:   result.Stories,
	})
}

// ingestErrorResponse maps a classified ingestion failure onto its HTTP
// status and user-facing message. Unclassified errors are a plain 500.
func ingestErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFeedAddress):
		return http.StatusBadRequest, msgInvalidFeedAddress
	case errors.Is(err, domain.ErrUnreachableHost):
		return http.StatusBadGateway, msgUnreachableHost
	case errors.Is(err, domain.ErrFeedNotFound):
		return http.StatusNotFound, msgFeedNotFound
	case errors.Is(err, domain.ErrFeedParse):
		return http.StatusUnprocessableEntity, msgFeedParse
	default:
		return http.StatusInternalServerError, msgUnknown
	}
}

func (h *Handler) SearchStories(c echo.Context) error {
	query := c.QueryParam("q")

	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid skip parameter"})
	}
	take, err := queryInt(c, "take", defaultSearchTake)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid take parameter"})
	}

	result, err := h.searcher.Execute(c.Request().Context(), query, skip, take)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if !result.Available {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": msgSearchUnavailable})
	}

	return c.JSON(http.StatusOK, SearchStoriesResponse{
		Query:              result.Query,
		Hits:               result.Hits,
		EstimatedTotalHits: result.EstimatedTotalHits,
	})
}

func (h *Handler) LatestStories(c echo.Context) error {
	count, err := queryInt(c, "count", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid count parameter"})
	}

	stories := h.latest.Execute(c.Request().Context(), count)

	return c.JSON(http.StatusOK, LatestStoriesResponse{Stories: stories})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func queryInt(c echo.Context, name string, fallback int64) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
