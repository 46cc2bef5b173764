package middleware

import (
	"relatedAttributes/business/related"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderTraceID = "X-Trace-Id"

// TraceID reuses the caller's X-Trace-Id or mints one, and threads it
// through the request context for the scoring logs.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(HeaderTraceID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(related.WithTraceID(req.Context(), traceID)))
			c.Response().Header().Set(HeaderTraceID, traceID)

			return next(c)
		}
	}
}
