package ports

import (
	"context"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
// Create returns domain.ErrUserExists when the store rejects a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
