package middleware

import (
	"errors"
	"net/http"
	"strings"

	"relatedAttributes/pkg/logger"

	jsonres "relatedAttributes/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape the handlers, including echo's
// own 404 and 405, in the same envelope as the auth middleware.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "path", c.Path(), "error", err)
	}

	status := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, jsonres.Error(status, message, nil))
	}
	if err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
