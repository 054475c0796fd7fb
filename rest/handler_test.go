package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-indexer/domain"
	"feed-indexer/logger"
	"feed-indexer/usecase"
)

func init() {
	logger.Init()
}

type stubIngestor struct {
	result  *usecase.IngestResult
	err     error
	feedURL string
}

func (s *stubIngestor) Execute(ctx context.Context, feedURL string) (*usecase.IngestResult, error) {
	s.feedURL = feedURL
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubSearcher struct {
	result *usecase.SearchResult
	err    error

	query  string
	offset int64
	limit  int64
}

func (s *stubSearcher) Execute(ctx context.Context, query string, offset, limit int64) (*usecase.SearchResult, error) {
	s.query, s.offset, s.limit = query, offset, limit
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubLatest struct {
	stories []domain.Story
	count   int64
}

func (s *stubLatest) Execute(ctx context.Context, count int64) []domain.Story {
	s.count = count
	return s.stories
}

func newTestServer(ingestor FeedIngestor, searcher StorySearcher, latest LatestLister) *echo.Echo {
	e := echo.New()
	RegisterRoutes(e, NewHandler(ingestor, searcher, latest))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_IngestFeed(t *testing.T) {
	ingestor := &stubIngestor{
		result: &usecase.IngestResult{
			FeedTitle: "Example Feed",
			Indexed:   true,
			Stories: []domain.Story{
				{URI: "https://example.com/a", Title: "A", Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), FeedTitle: "Example Feed"},
			},
		},
	}
	e := newTestServer(ingestor, &stubSearcher{}, &stubLatest{})

	rec := doRequest(e, http.MethodPost, "/v1/feeds/ingest", `{"feed_url":"https://example.com/feed.xml"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com/feed.xml", ingestor.feedURL)

	var resp IngestFeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Example Feed", resp.FeedTitle)
	assert.True(t, resp.Indexed)
	require.Len(t, resp.Stories, 1)
	assert.Equal(t, "A", resp.Stories[0].Title)
}

func TestHandler_IngestFeed_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid address",
			err:         domain.ErrInvalidFeedAddress,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "There was a problem parsing the URL.",
		},
		{
			name:        "unreachable host",
			err:         &domain.FeedSourceError{Kind: domain.ErrUnreachableHost, Op: "Fetch", Err: errors.New("no such host")},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Unknown host name.",
		},
		{
			name:        "feed not found",
			err:         &domain.FeedSourceError{Kind: domain.ErrFeedNotFound, Op: "Fetch", Err: errors.New("404")},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Syndication feed not found.",
		},
		{
			name:        "parse failure",
			err:         &domain.FeedSourceError{Kind: domain.ErrFeedParse, Op: "Fetch", Err: errors.New("bad xml")},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "There was a problem parsing the feed. Are you sure that URL is a syndication feed?",
		},
		{
			name:        "unclassified",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unknown error occurred.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&stubIngestor{err: tt.err}, &stubSearcher{}, &stubLatest{})

			rec := doRequest(e, http.MethodPost, "/v1/feeds/ingest", `{"feed_url":"https://example.com/feed.xml"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp["error"])
		})
	}
}

func TestHandler_IngestFeed_MalformedBody(t *testing.T) {
	e := newTestServer(&stubIngestor{}, &stubSearcher{}, &stubLatest{})

	rec := doRequest(e, http.MethodPost, "/v1/feeds/ingest", `{"feed_url":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SearchStories(t *testing.T) {
	searcher := &stubSearcher{
		result: &usecase.SearchResult{
			Available:          true,
			Query:              "golang",
			Hits:               []domain.Story{{URI: "https://example.com/a", Title: "A"}},
			EstimatedTotalHits: 7,
		},
	}
	e := newTestServer(&stubIngestor{}, searcher, &stubLatest{})

	rec := doRequest(e, http.MethodGet, "/v1/search?q=golang&skip=10&take=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "golang", searcher.query)
	assert.Equal(t, int64(10), searcher.offset)
	assert.Equal(t, int64(5), searcher.limit)

	var resp SearchStoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "golang", resp.Query)
	assert.Equal(t, int64(7), resp.EstimatedTotalHits)
	assert.Len(t, resp.Hits, 1)
}

func TestHandler_SearchStories_Defaults(t *testing.T) {
	searcher := &stubSearcher{result: &usecase.SearchResult{Available: true, Hits: []domain.Story{}}}
	e := newTestServer(&stubIngestor{}, searcher, &stubLatest{})

	rec := doRequest(e, http.MethodGet, "/v1/search?q=golang", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), searcher.offset)
	assert.Equal(t, int64(defaultSearchTake), searcher.limit)
}

func TestHandler_SearchStories_ValidationError(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("query cannot be empty")}
	e := newTestServer(&stubIngestor{}, searcher, &stubLatest{})

	rec := doRequest(e, http.MethodGet, "/v1/search", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SearchStories_Unavailable(t *testing.T) {
	searcher := &stubSearcher{result: &usecase.SearchResult{Available: false, Hits: []domain.Story{}}}
	e := newTestServer(&stubIngestor{}, searcher, &stubLatest{})

	rec := doRequest(e, http.MethodGet, "/v1/search?q=golang", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "search is currently unavailable", resp["error"])
}

func TestHandler_SearchStories_BadPagination(t *testing.T) {
	e := newTestServer(&stubIngestor{}, &stubSearcher{}, &stubLatest{})

	for _, target := range []string{"/v1/search?q=a&skip=x", "/v1/search?q=a&take=x"} {
		rec := doRequest(e, http.MethodGet, target, "")
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestHandler_LatestStories(t *testing.T) {
	latest := &stubLatest{stories: []domain.Story{{URI: "https://example.com/a", Title: "A"}}}
	e := newTestServer(&stubIngestor{}, &stubSearcher{}, latest)

	rec := doRequest(e, http.MethodGet, "/v1/latest?count=3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), latest.count)

	var resp LatestStoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Stories, 1)
}

func TestHandler_LatestStories_BadCount(t *testing.T) {
	e := newTestServer(&stubIngestor{}, &stubSearcher{}, &stubLatest{})

	rec := doRequest(e, http.MethodGet, "/v1/latest?count=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Health(t *testing.T) {
	e := newTestServer(&stubIngestor{}, &stubSearcher{}, &stubLatest{})

	rec := doRequest(e, http.MethodGet, "/v1/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
