package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	// Reason is set for failures with a distinguishable cause, e.g. the
	// device-location errors, so the picker UI can react per reason.
	Reason string `json:"reason,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, errorResponse{Error: "tracking snapshot not found"}
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrFetchFailed):
		return http.StatusBadGateway, errorResponse{Error: "snapshot fetch failed"}
	case errors.Is(err, domain.ErrLocationPermissionDenied):
		return http.StatusForbidden, errorResponse{Error: err.Error(), Reason: "permission_denied"}
	case errors.Is(err, domain.ErrLocationTimeout):
		return http.StatusGatewayTimeout, errorResponse{Error: err.Error(), Reason: "timeout"}
	case errors.Is(err, domain.ErrLocationUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: err.Error(), Reason: "unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
