package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feed-indexer/config"
	"feed-indexer/rest"
)

// newHTTPServer creates the REST HTTP server.
func newHTTPServer(cfg *config.Config, ingestor rest.FeedIngestor, searcher rest.StorySearcher, latest rest.LatestLister) *http.Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	rest.RegisterRoutes(e, rest.NewHandler(ingestor, searcher, latest))

	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           e,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}
