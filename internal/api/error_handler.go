package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/api/handler"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the shared envelope with success set to false.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.Envelope{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (router 404/405, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("echo error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return http.StatusBadRequest, insufficient.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, domain.ValidationMessage(err)
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, authMessage(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrSKUExists):
		return http.StatusConflict, "SKU already exists"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, domain.ErrDuplicateRequest.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// authMessage picks the most specific 401 message available.
func authMessage(err error) string {
	for _, known := range []error{
		domain.ErrInvalidCredentials,
		domain.ErrTokenMissing,
		domain.ErrTokenMalformed,
		domain.ErrTokenExpired,
		domain.ErrTokenInvalid,
	} {
		if errors.Is(err, known) {
			return strings.TrimPrefix(known.Error(), domain.ErrUnauthenticated.Error()+": ")
		}
	}
	return "authentication required"
}
