package ports

import (
	"context"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// CreateProductInput carries the fields accepted when creating a product.
// Zero values fall back to the catalog defaults.
type CreateProductInput struct {
	SKU           string
	Name          string
	Description   string
	Price         float64
	Category      string
	StockQuantity int
}

// ProductService defines the catalog management use cases.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
