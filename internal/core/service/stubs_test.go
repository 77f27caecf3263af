package service

import (
	"context"
	"sort"
	"sync"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubProductRepo keeps products in memory and applies stock changes under a
// mutex, mirroring the single-statement semantics of the SQL repository.
type stubProductRepo struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
	failNext error
}

func newStubProductRepo(products ...domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		p := p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.products[p.ID] = &p
	}
	return r
}

func (r *stubProductRepo) stock(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].StockQuantity
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return nil, domain.ErrSKUExists
		}
	}
	r.nextID++
	stored := *p
	stored.ID = r.nextID
	r.products[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.SKU != nil {
		p.SKU = *upd.SKU
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.StockQuantity != nil {
		p.StockQuantity = *upd.StockQuantity
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) apply(id int64, fn func(p *domain.Product) error) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) AddStock(_ context.Context, id int64, qty int) (*domain.Product, error) {
	return r.apply(id, func(p *domain.Product) error {
		p.StockQuantity += qty
		return nil
	})
}

func (r *stubProductRepo) RemoveStock(_ context.Context, id int64, qty int) (*domain.Product, error) {
	return r.apply(id, func(p *domain.Product) error {
		if p.StockQuantity < qty {
			return &domain.InsufficientStockError{Available: p.StockQuantity, Requested: qty}
		}
		p.StockQuantity -= qty
		return nil
	})
}

func (r *stubProductRepo) SetStock(_ context.Context, id int64, qty int) (*domain.Product, error) {
	return r.apply(id, func(p *domain.Product) error {
		p.StockQuantity = qty
		return nil
	})
}

func (r *stubProductRepo) ListBelow(_ context.Context, threshold int) ([]domain.Product, error) {
	all, _ := r.List(context.Background())
	var out []domain.Product
	for _, p := range all {
		if p.StockQuantity < threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Stats(_ context.Context, threshold int) (*domain.InventoryStats, error) {
	all, _ := r.List(context.Background())
	stats := &domain.InventoryStats{TotalProducts: int64(len(all))}
	for _, p := range all {
		stats.TotalItemsInStock += int64(p.StockQuantity)
		if p.StockQuantity < threshold {
			stats.LowStockItems++
		}
	}
	return stats, nil
}

type stubIdempotency struct {
	mu       sync.Mutex
	keys     map[string]bool
	err      error
	released []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]bool)}
}

func (s *stubIdempotency) Claim(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *stubIdempotency) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

type stubNotifier struct {
	mu     sync.Mutex
	alerts []domain.LowStockAlert
	full   bool
}

func (n *stubNotifier) Enqueue(alert domain.LowStockAlert) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.full {
		return false
	}
	n.alerts = append(n.alerts, alert)
	return true
}
