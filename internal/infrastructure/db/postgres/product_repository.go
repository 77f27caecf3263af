package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

const productColumns = "id, sku, name, description, price, category, stock_quantity"

// ProductRepository stores the catalog. Every stock mutation is a single
// UPDATE ... RETURNING, conditional where the result has a bound, so
// concurrent requests never observe or produce an intermediate value.
type ProductRepository struct {
	db *Database
}

func NewProductRepository(db *Database) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.StockQuantity > domain.MaxStockQuantity {
		return nil, domain.ErrQuantityTooLarge
	}
	var created domain.Product
	query := r.db.Rebind(`
		INSERT INTO products (sku, name, description, price, category, stock_quantity)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + productColumns)
	err := r.db.QueryRowxContext(ctx, query, p.SKU, p.Name, p.Description, p.Price, p.Category, p.StockQuantity).
		StructScan(&created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSKUExists
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.SKU != nil {
		add("sku", *upd.SKU)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.StockQuantity != nil {
		if *upd.StockQuantity > domain.MaxStockQuantity {
			return nil, domain.ErrQuantityTooLarge
		}
		add("stock_quantity", *upd.StockQuantity)
	}
	if len(sets) == 0 {
		return nil, domain.ErrNothingToUpdate
	}
	args = append(args, id)

	query := r.db.Rebind(`UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + productColumns)
	var p domain.Product
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&p); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrProductNotFound
		case isUniqueViolation(err):
			return nil, domain.ErrSKUExists
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AddStock increments only while the result still fits in stock_quantity.
func (r *ProductRepository) AddStock(ctx context.Context, id int64, qty int) (*domain.Product, error) {
	if qty > domain.MaxStockQuantity {
		return nil, domain.ErrQuantityTooLarge
	}
	return r.guardedStockUpdate(ctx, "receive", `
		UPDATE products SET stock_quantity = stock_quantity + ?
		WHERE id = ? AND stock_quantity <= ?
		RETURNING `+productColumns, id,
		func(int) error { return domain.ErrStockLimitExceeded },
		qty, id, domain.MaxStockQuantity-qty)
}

func (r *ProductRepository) SetStock(ctx context.Context, id int64, qty int) (*domain.Product, error) {
	if qty > domain.MaxStockQuantity {
		return nil, domain.ErrQuantityTooLarge
	}
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`UPDATE products SET stock_quantity = ? WHERE id = ? RETURNING `+productColumns), qty, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update stock: %w", err)
	}
	return &p, nil
}

// RemoveStock decrements only when enough stock is on hand.
func (r *ProductRepository) RemoveStock(ctx context.Context, id int64, qty int) (*domain.Product, error) {
	return r.guardedStockUpdate(ctx, "pick", `
		UPDATE products SET stock_quantity = stock_quantity - ?
		WHERE id = ? AND stock_quantity >= ?
		RETURNING `+productColumns, id,
		func(available int) error {
			return &domain.InsufficientStockError{Available: available, Requested: qty}
		},
		qty, id, qty)
}

// guardedStockUpdate runs a conditional stock UPDATE in a transaction. When
// the guard matches no row, the same transaction re-reads the product: a
// missing row is ErrProductNotFound, otherwise rejected explains the refusal
// from the stock actually on hand.
func (r *ProductRepository) guardedStockUpdate(ctx context.Context, op, query string, id int64, rejected func(available int) error, args ...any) (*domain.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin %s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	var p domain.Product
	err = tx.GetContext(ctx, &p, tx.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		var available int
		lookupErr := tx.GetContext(ctx, &available, tx.Rebind(`SELECT stock_quantity FROM products WHERE id = ?`), id)
		if errors.Is(lookupErr, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if lookupErr != nil {
			return nil, fmt.Errorf("%s lookup: %w", op, lookupErr)
		}
		return nil, rejected(available)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepository) ListBelow(ctx context.Context, threshold int) ([]domain.Product, error) {
	products := []domain.Product{}
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE stock_quantity < ? ORDER BY stock_quantity ASC, id ASC`)
	if err := r.db.SelectContext(ctx, &products, query, threshold); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Stats(ctx context.Context, threshold int) (*domain.InventoryStats, error) {
	var stats domain.InventoryStats
	query := r.db.Rebind(`
		SELECT
			COUNT(*) AS total_products,
			COALESCE(SUM(stock_quantity), 0) AS total_items_in_stock,
			COUNT(CASE WHEN stock_quantity < ? THEN 1 END) AS low_stock_items
		FROM products`)
	if err := r.db.GetContext(ctx, &stats, query, threshold); err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}
	return &stats, nil
}
