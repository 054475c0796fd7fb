package rest

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	custommiddleware "feed-indexer/middleware"
)

// RegisterRoutes wires the HTTP surface onto the echo instance.
func RegisterRoutes(e *echo.Echo, handler *Handler) {
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Recover())
	e.Use(custommiddleware.OTelStatus())

	v1 := e.Group("/v1")
	v1.GET("/health", handler.Health)
	v1.POST("/feeds/ingest", handler.IngestFeed)
	v1.GET("/search", handler.SearchStories)
	v1.GET("/latest", handler.LatestStories)
}
