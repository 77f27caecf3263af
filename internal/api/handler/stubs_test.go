package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopwarehouse/warehouse-api/internal/api/middleware"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password string) (*domain.User, string, error)
	staffFn    func(ctx context.Context, actor *domain.Identity, email, password string, role domain.Role) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
	currentFn  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) RegisterCustomer(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) CreateStaffAccount(ctx context.Context, actor *domain.Identity, email, password string, role domain.Role) (*domain.User, error) {
	return s.staffFn(ctx, actor, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

type stubInventoryService struct {
	products  map[int64]*domain.Product
	lastKey   string
	lastActor int64
	lastLow   int
	err       error
}

func newStubInventory(products ...domain.Product) *stubInventoryService {
	s := &stubInventoryService{products: make(map[int64]*domain.Product)}
	for i := range products {
		p := products[i]
		s.products[p.ID] = &p
	}
	return s
}

func (s *stubInventoryService) ListInventory(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, s.err
}

func (s *stubInventoryService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubInventoryService) apply(op domain.StockOperation, change domain.StockChange, fn func(p *domain.Product) error) (*domain.Product, error) {
	s.lastKey = change.IdempotencyKey
	s.lastActor = change.ActorID
	if err := change.Validate(op); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[change.ProductID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (s *stubInventoryService) Receive(ctx context.Context, change domain.StockChange) (*domain.Product, error) {
	return s.apply(domain.OpReceive, change, func(p *domain.Product) error {
		p.StockQuantity += change.Quantity
		return nil
	})
}

func (s *stubInventoryService) Pick(ctx context.Context, change domain.StockChange) (*domain.Product, error) {
	return s.apply(domain.OpPick, change, func(p *domain.Product) error {
		if p.StockQuantity < change.Quantity {
			return &domain.InsufficientStockError{Available: p.StockQuantity, Requested: change.Quantity}
		}
		p.StockQuantity -= change.Quantity
		return nil
	})
}

func (s *stubInventoryService) Adjust(ctx context.Context, change domain.StockChange) (*domain.Product, error) {
	return s.apply(domain.OpAdjust, change, func(p *domain.Product) error {
		p.StockQuantity = change.Quantity
		return nil
	})
}

func (s *stubInventoryService) ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	s.lastLow = threshold
	if threshold == 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	out := []domain.Product{}
	for _, p := range s.products {
		if p.StockQuantity < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubInventoryService) Stats(ctx context.Context, threshold int) (*domain.InventoryStats, error) {
	s.lastLow = threshold
	return &domain.InventoryStats{TotalProducts: int64(len(s.products))}, nil
}

type stubProductService struct {
	createFn func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error)
	deleted  []int64
	catalog  []domain.Product
}

func (s *stubProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.catalog, nil
}

func (s *stubProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range s.catalog {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
	return s.updateFn(ctx, id, upd)
}

func (s *stubProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, id int64, role domain.Role) {
	c.Set(middleware.IdentityKey, &domain.Identity{UserID: id, Email: "staff@example.com", Role: role})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	return resp
}
