package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

type inventoryService struct {
	repo      ports.ProductRepository
	idem      ports.IdempotencyStore
	alerts    ports.LowStockNotifier
	threshold int
	log       zerolog.Logger
}

// InventoryOption customises the inventory service.
type InventoryOption func(*inventoryService)

// WithIdempotency enables Idempotency-Key handling on stock mutations.
func WithIdempotency(store ports.IdempotencyStore) InventoryOption {
	return func(s *inventoryService) { s.idem = store }
}

// WithLowStockAlerts enqueues an alert whenever a mutation leaves a product
// below the threshold.
func WithLowStockAlerts(n ports.LowStockNotifier) InventoryOption {
	return func(s *inventoryService) { s.alerts = n }
}

// NewInventoryService returns an InventoryService implementation. A
// threshold <= 0 falls back to domain.DefaultLowStockThreshold.
func NewInventoryService(repo ports.ProductRepository, threshold int, log zerolog.Logger, opts ...InventoryOption) ports.InventoryService {
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	s := &inventoryService{repo: repo, threshold: threshold, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inventoryService) ListInventory(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *inventoryService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidProductID
	}
	return s.repo.FindByID(ctx, id)
}

// Receive adds change.Quantity units to the product's stock.
func (s *inventoryService) Receive(ctx context.Context, change domain.StockChange) (*domain.Product, error) {
	return s.mutate(ctx, domain.OpReceive, change, s.repo.AddStock)
}

// Pick removes change.Quantity units; it fails with an
// *domain.InsufficientStockError when fewer are on hand.
func (s *inventoryService) Pick(ctx context.Context, change domain.StockChange) (*domain.Product, error) {
	return s.mutate(ctx, domain.OpPick, change, s.repo.RemoveStock)
}

// Adjust sets the product's stock to exactly change.Quantity.
func (s *inventoryService) Adjust(ctx context.Context, change domain.StockChange) (*domain.Product, error) {
	return s.mutate(ctx, domain.OpAdjust, change, s.repo.SetStock)
}

type stockWriter func(ctx context.Context, id int64, qty int) (*domain.Product, error)

func (s *inventoryService) mutate(ctx context.Context, op domain.StockOperation, change domain.StockChange, write stockWriter) (*domain.Product, error) {
	if err := change.Validate(op); err != nil {
		return nil, err
	}

	key := ""
	if change.IdempotencyKey != "" && s.idem != nil {
		key = idempotencyKey(op, change)
		claimed, err := s.idem.Claim(ctx, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("operation", string(op)).Msg("idempotency check failed, processing anyway")
			key = ""
		case !claimed:
			return nil, domain.ErrDuplicateRequest
		}
	}

	product, err := write(ctx, change.ProductID, change.Quantity)
	if err != nil {
		if key != "" {
			if relErr := s.idem.Release(ctx, key); relErr != nil {
				s.log.Warn().Err(relErr).Str("operation", string(op)).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("%s stock: %w", op, err)
	}

	s.log.Info().
		Str("operation", string(op)).
		Int64("product_id", product.ID).
		Int("quantity", change.Quantity).
		Int("stock_quantity", product.StockQuantity).
		Msg("stock updated")

	s.raiseLowStock(op, product)
	return product, nil
}

// idempotencyKey scopes a client key to the caller, the operation and the
// product, so unrelated requests that happen to reuse a key never collide.
func idempotencyKey(op domain.StockOperation, change domain.StockChange) string {
	return fmt.Sprintf("stock:%d:%s:%d:%s", change.ActorID, op, change.ProductID, change.IdempotencyKey)
}

func (s *inventoryService) raiseLowStock(op domain.StockOperation, p *domain.Product) {
	if s.alerts == nil || p.StockQuantity >= s.threshold {
		return
	}
	alert := domain.LowStockAlert{
		ProductID:     p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		Threshold:     s.threshold,
		Operation:     op,
		RaisedAt:      time.Now().UTC(),
	}
	if !s.alerts.Enqueue(alert) {
		s.log.Warn().Int64("product_id", p.ID).Msg("low-stock alert dropped, queue full")
	}
}

// ListLowStock returns products strictly below threshold.
func (s *inventoryService) ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	threshold, err := s.resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListBelow(ctx, threshold)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Stats counts low-stock items with the same strict comparison as ListLowStock.
func (s *inventoryService) Stats(ctx context.Context, threshold int) (*domain.InventoryStats, error) {
	threshold, err := s.resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, threshold)
}

func (s *inventoryService) resolveThreshold(threshold int) (int, error) {
	switch {
	case threshold == 0:
		return s.threshold, nil
	case threshold < 0:
		return 0, domain.ErrInvalidThreshold
	default:
		return threshold, nil
	}
}
