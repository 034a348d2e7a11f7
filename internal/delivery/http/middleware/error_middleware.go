package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/delivery/http/response"
	domainerrors "ratehub/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware centralizes error-to-envelope mapping.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates the centralized error handler.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler. Validation errors
// carry their field breakdown, AppErrors map to their HTTP status, and
// anything else is logged and hidden behind a generic 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.ValidationFailure(c, validationErr.HTTPCode(), validationErr.Message(), validationErr.Fields)

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		// Details never reach the client, but they matter for diagnosing
		// conflicts and database failures.
		if details := appErr.Details(); details != "" {
			logger.Warn("Request failed",
				slog.String("error_code", appErr.ErrorCode()),
				slog.String("details", details),
				slog.String("path", c.Request().URL.Path),
			)
		}

		_ = response.Failure(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Failure(c, httpErr.Code, message)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.Failure(c, http.StatusInternalServerError, "Internal server error")
}
