package ports

import (
	"context"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

type AuthService interface {
	RegisterCustomer(ctx context.Context, email, password string) (*domain.User, string, error)
	CreateStaffAccount(ctx context.Context, actor *domain.Identity, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

// TokenVerifier turns an Authorization header into a verified identity.
type TokenVerifier interface {
	Verify(authorizationHeader string) (*domain.Identity, error)
}
