package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shopwarehouse/warehouse-api/internal/api/middleware"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. A route
// registered without Auth has none and is reported as unauthenticated.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}
