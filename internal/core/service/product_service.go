package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

type productService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

// NewProductService returns a ProductService implementation.
func NewProductService(repo ports.ProductRepository, log zerolog.Logger) ports.ProductService {
	return &productService{repo: repo, log: log}
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidProductID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	p := &domain.Product{
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		Category:      strings.TrimSpace(in.Category),
		StockQuantity: in.StockQuantity,
	}
	if p.Name == "" || p.SKU == "" {
		return nil, fmt.Errorf("%w: name and sku are required", domain.ErrValidation)
	}
	if p.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if p.StockQuantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	if p.StockQuantity > domain.MaxStockQuantity {
		return nil, domain.ErrQuantityTooLarge
	}
	if p.Category == "" {
		p.Category = domain.DefaultCategory
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("product_id", created.ID).Str("sku", created.SKU).Msg("product created")
	return created, nil
}

func (s *productService) Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidProductID
	}
	if upd.Empty() {
		return nil, domain.ErrNothingToUpdate
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	if upd.SKU != nil && strings.TrimSpace(*upd.SKU) == "" {
		return nil, fmt.Errorf("%w: sku must not be empty", domain.ErrValidation)
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if upd.StockQuantity != nil {
		switch {
		case *upd.StockQuantity < 0:
			return nil, domain.ErrNegativeQuantity
		case *upd.StockQuantity > domain.MaxStockQuantity:
			return nil, domain.ErrQuantityTooLarge
		}
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidProductID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
