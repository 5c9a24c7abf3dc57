package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/errors"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/service"
)

// parseUintParam parses a numeric path parameter.
func parseUintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// parsePositiveInt parses a positive integer query value.
func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	return n, nil
}

// respondDomainError maps service and domain errors to HTTP responses.
func respondDomainError(err error) error {
	switch err {
	case service.ErrInvalidPincode, service.ErrInvalidPrice, service.ErrInvalidMaxSpots:
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}

	var shrinkErr *service.ShrinkError
	if stderrors.As(err, &shrinkErr) {
		return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
			Error: shrinkErr.Error(),
			Code:  "INSUFFICIENT_FREE_SPOTS",
		})
	}

	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
