package ports

import (
	"context"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// ProductRepository handles catalog persistence and atomic stock mutations.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error

	// AddStock increments stock_quantity by qty in a single statement.
	AddStock(ctx context.Context, id int64, qty int) (*domain.Product, error)
	// RemoveStock decrements stock_quantity by qty only if enough is on hand.
	// It returns *domain.InsufficientStockError when it is not, leaving the row untouched.
	RemoveStock(ctx context.Context, id int64, qty int) (*domain.Product, error)
	// SetStock overwrites stock_quantity with qty.
	SetStock(ctx context.Context, id int64, qty int) (*domain.Product, error)

	// ListBelow returns products whose stock_quantity is strictly below threshold.
	ListBelow(ctx context.Context, threshold int) ([]domain.Product, error)
	Stats(ctx context.Context, threshold int) (*domain.InventoryStats, error)
}
