package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jyotish/backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes a JSON error body with the given status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

// writeServiceError maps service-level errors to HTTP responses. Messages
// stay generic; the underlying detail lives in the logs only.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return Error(c, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrNotFound):
		return Error(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		return Error(c, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrUnauthorized):
		return Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrStorageUnavailable):
		return Error(c, http.StatusServiceUnavailable, "service unavailable")
	case errors.Is(err, service.ErrChartUpstream):
		return Error(c, http.StatusBadGateway, "chart calculation failed")
	default:
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}
