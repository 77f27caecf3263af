package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

func TestProductHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			if in.SKU != "SKU-9" || in.Name != "Bolt" || in.Price != 1.5 || in.StockQuantity != 40 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Product{ID: 9, SKU: in.SKU, Name: in.Name, Price: in.Price, Category: domain.DefaultCategory, StockQuantity: in.StockQuantity}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newContext(e, http.MethodPost, "/products/create",
		strings.NewReader(`{"sku":"SKU-9","name":"Bolt","price":1.5,"stock_quantity":40}`))
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Product created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if data := resp["data"].(map[string]any); data["category"] != domain.DefaultCategory {
		t.Fatalf("unexpected product: %+v", data)
	}
}

func TestProductHandler_Create_Invalid(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	bodies := []string{
		`{"name":"Bolt"}`,
		`{"sku":"SKU-9","name":"Bolt","price":-1}`,
		`{"sku":"SKU-9","name":"Bolt","stock_quantity":-5}`,
	}
	for _, body := range bodies {
		c, _ := newContext(e, http.MethodPost, "/products/create", strings.NewReader(body))
		if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %s: expected validation error, got %v", body, err)
		}
	}
}

func TestProductHandler_Create_DuplicateSKU(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			return nil, domain.ErrSKUExists
		},
	}
	h := NewProductHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/products/create", strings.NewReader(`{"sku":"SKU-1","name":"Dup"}`))
	if err := h.Create(c); !errors.Is(err, domain.ErrSKUExists) {
		t.Fatalf("expected ErrSKUExists, got %v", err)
	}
}

func TestProductHandler_Update_Partial(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
			if id != 4 {
				t.Fatalf("unexpected id %d", id)
			}
			if upd.Name == nil || *upd.Name != "Renamed" {
				t.Fatalf("expected name update, got %+v", upd)
			}
			if upd.SKU != nil || upd.Price != nil || upd.StockQuantity != nil {
				t.Fatalf("untouched fields must stay nil: %+v", upd)
			}
			return &domain.Product{ID: id, Name: *upd.Name}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newContext(e, http.MethodPut, "/products/update?id=4", strings.NewReader(`{"name":"Renamed"}`))
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Product updated successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	c, _ = newContext(e, http.MethodPut, "/products/update?id=4", strings.NewReader(`{"price":-2}`))
	if err := h.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	c, _ = newContext(e, http.MethodPut, "/products/update", strings.NewReader(`{"name":"x"}`))
	if err := h.Update(c); !errors.Is(err, domain.ErrInvalidProductID) {
		t.Fatalf("expected ErrInvalidProductID, got %v", err)
	}
}

func TestProductHandler_ReadsAndDelete(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{catalog: []domain.Product{{ID: 1, SKU: "SKU-1", Name: "Widget"}}}
	h := NewProductHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/products/allProducts", nil)
	if err := h.All(c); err != nil {
		t.Fatalf("all: %v", err)
	}
	if items := decodeEnvelope(t, rec)["data"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 product, got %d", len(items))
	}

	c, _ = newContext(e, http.MethodGet, "/products/product?id=2", nil)
	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	c, rec = newContext(e, http.MethodDelete, "/products/delete?id=1", nil)
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Product deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != 1 {
		t.Fatalf("unexpected deletions: %v", stub.deleted)
	}
}
