package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// HeaderIdempotencyKey is accepted on stock mutations.
const HeaderIdempotencyKey = "Idempotency-Key"

// CORS adapts rs/cors to echo.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, HeaderIdempotencyKey},
		ExposedHeaders: []string{echo.HeaderXRequestID},
		MaxAge:         86400,
	})
	return echo.WrapMiddleware(c.Handler)
}
