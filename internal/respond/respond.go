// Package respond is the single choke point for the API response envelope.
// Every response, success or failure, goes through it so that all endpoints
// share one shape: {success, message, data, errors}.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/logging"
)

type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Fail(c echo.Context, code int, message string, errs ...string) error {
	return c.JSON(code, Envelope{Success: false, Message: message, Data: nil, Errors: errs})
}

// ErrorHandler converts every error that escapes a handler into an envelope.
// Unexpected errors render a generic message; detail goes to the log only.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if code == http.StatusNotFound {
			message = "route not found"
		} else if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request_failed",
			"status", code, "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
		message = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = Fail(c, code, message)
}
