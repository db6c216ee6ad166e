package handler

import (
	"errors"
	"net/http"

	"paint-it-black-manufacturer/internal/service"

	"github.com/labstack/echo/v4"
)

// StatusClientClosedRequest is reported when the caller abandoned the request before it finished.
const StatusClientClosedRequest = 499

// respondError maps workflow errors to HTTP responses. Unknown errors never expose their text.
func respondError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidReference):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	case errors.Is(err, service.ErrAuthorizationDenied):
		return echo.NewHTTPError(http.StatusForbidden, service.ErrAuthorizationDenied.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotCancelable),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPaymentProcessor):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrCanceled):
		return echo.NewHTTPError(StatusClientClosedRequest, service.ErrCanceled.Error())
	case errors.Is(err, service.ErrTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, service.ErrTimeout.Error())
	case errors.Is(err, service.ErrTransactionFailure):
		return echo.NewHTTPError(http.StatusInternalServerError, service.ErrTransactionFailure.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return nil
}
