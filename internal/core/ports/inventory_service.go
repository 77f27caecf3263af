package ports

import (
	"context"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// InventoryService applies stock mutations and computes inventory views.
// A threshold of 0 means the configured default.
type InventoryService interface {
	ListInventory(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	Receive(ctx context.Context, change domain.StockChange) (*domain.Product, error)
	Pick(ctx context.Context, change domain.StockChange) (*domain.Product, error)
	Adjust(ctx context.Context, change domain.StockChange) (*domain.Product, error)

	ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	Stats(ctx context.Context, threshold int) (*domain.InventoryStats, error)
}

// IdempotencyStore remembers client-supplied idempotency keys for a while.
// Claim reports false when the key was already claimed.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// LowStockNotifier accepts alerts without blocking the caller. Enqueue
// reports false when the alert was dropped.
type LowStockNotifier interface {
	Enqueue(alert domain.LowStockAlert) bool
}

// AlertSink is the final consumer of a low-stock alert.
type AlertSink interface {
	Handle(ctx context.Context, alert domain.LowStockAlert) error
}
