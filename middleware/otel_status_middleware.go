package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OTelStatus traces each request and sets span status from the HTTP
// response code following the OpenTelemetry HTTP semantic conventions:
// - 1xx, 2xx, 3xx, 4xx: StatusCode = Unset (normal operation or client error)
// - 5xx: StatusCode = Error (server error)
func OTelStatus() echo.MiddlewareFunc {
	tracer := otel.Tracer("feed-indexer")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), c.Request().Method+" "+c.Path())
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			if err := next(c); err != nil {
				// Let echo's error handler write the response so the
				// recorded status is the one the client saw.
				c.Error(err)
			}

			status := c.Response().Status
			span.SetAttributes(
				semconv.HTTPResponseStatusCode(status),
			)
			if status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			return nil
		}
	}
}
