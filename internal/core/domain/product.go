package domain

import "time"

const (
	DefaultCategory          = "Uncategorized"
	DefaultLowStockThreshold = 20
)

// Product is a catalog record. StockQuantity is the single source of truth
// for on-hand quantity and never goes negative.
type Product struct {
	ID            int64   `json:"id"             db:"id"`
	SKU           string  `json:"sku"            db:"sku"`
	Name          string  `json:"name"           db:"name"`
	Description   string  `json:"description"    db:"description"`
	Price         float64 `json:"price"          db:"price"`
	Category      string  `json:"category"       db:"category"`
	StockQuantity int     `json:"stock_quantity" db:"stock_quantity"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name          *string
	SKU           *string
	Description   *string
	Price         *float64
	Category      *string
	StockQuantity *int
}

func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.SKU == nil && u.Description == nil &&
		u.Price == nil && u.Category == nil && u.StockQuantity == nil
}

// InventoryStats is the aggregate view over the catalog.
type InventoryStats struct {
	TotalProducts     int64 `json:"total_products"      db:"total_products"`
	TotalItemsInStock int64 `json:"total_items_in_stock" db:"total_items_in_stock"`
	LowStockItems     int64 `json:"low_stock_items"     db:"low_stock_items"`
}

// LowStockAlert is raised when a mutation leaves a product below the
// low-stock threshold. It is never persisted.
type LowStockAlert struct {
	ProductID     int64
	SKU           string
	Name          string
	StockQuantity int
	Threshold     int
	Operation     StockOperation
	RaisedAt      time.Time
}
