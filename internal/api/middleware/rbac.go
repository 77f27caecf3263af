package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// Require enforces the access level of a route. It must run after Auth:
// without an identity the request is unauthenticated (401), with one that
// lacks the level it is forbidden (403).
func Require(level domain.AccessLevel) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !domain.Authorize(identity, level) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
