package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopwarehouse/warehouse-api/internal/api/metrics"
	"github.com/shopwarehouse/warehouse-api/internal/api/middleware"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List returns every product with its current stock.
//
// @Summary      List inventory
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	products, err := h.inventory.ListInventory(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, products, "")
}

// Product returns a single product's stock.
//
// @Summary      Get product stock
// @Tags         inventory
// @Produce      json
// @Param        id   query     int  true  "Product ID"
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /inventory/product [get]
func (h *InventoryHandler) Product(c echo.Context) error {
	id, err := domain.ParseProductID(c.QueryParam("id"))
	if err != nil {
		return err
	}
	product, err := h.inventory.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product, "")
}

// LowStock lists products strictly below the threshold.
//
// @Summary      Low-stock products
// @Tags         inventory
// @Produce      json
// @Param        threshold  query     int  false  "Threshold (default 20)"
// @Success      200        {object}  Envelope
// @Failure      400        {object}  Envelope
// @Router       /inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c echo.Context) error {
	threshold, err := domain.ParseThreshold(c.QueryParam("threshold"))
	if err != nil {
		return err
	}
	products, err := h.inventory.ListLowStock(c.Request().Context(), threshold)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, products, "")
}

// Stats returns aggregate inventory counts.
//
// @Summary      Inventory stats
// @Tags         inventory
// @Produce      json
// @Param        threshold  query     int  false  "Threshold (default 20)"
// @Success      200        {object}  Envelope
// @Failure      400        {object}  Envelope
// @Router       /inventory/stats [get]
func (h *InventoryHandler) Stats(c echo.Context) error {
	threshold, err := domain.ParseThreshold(c.QueryParam("threshold"))
	if err != nil {
		return err
	}
	stats, err := h.inventory.Stats(c.Request().Context(), threshold)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats, "")
}

// Receive increments stock.
//
// @Summary      Receive stock
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id               query     int     true   "Product ID"
// @Param        quant            query     int     true   "Units received"
// @Param        Idempotency-Key  header    string  false  "Client-supplied idempotency key"
// @Success      200              {object}  Envelope
// @Failure      400              {object}  Envelope
// @Failure      401              {object}  Envelope
// @Failure      403              {object}  Envelope
// @Failure      404              {object}  Envelope
// @Failure      409              {object}  Envelope
// @Router       /inventory/receive [put]
func (h *InventoryHandler) Receive(c echo.Context) error {
	return h.mutate(c, domain.OpReceive, h.inventory.Receive)
}

// Pick decrements stock, rejecting requests larger than what is on hand.
//
// @Summary      Pick stock
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id               query     int     true   "Product ID"
// @Param        quant            query     int     true   "Units picked"
// @Param        Idempotency-Key  header    string  false  "Client-supplied idempotency key"
// @Success      200              {object}  Envelope
// @Failure      400              {object}  Envelope
// @Failure      401              {object}  Envelope
// @Failure      403              {object}  Envelope
// @Failure      404              {object}  Envelope
// @Failure      409              {object}  Envelope
// @Router       /inventory/pick [put]
func (h *InventoryHandler) Pick(c echo.Context) error {
	return h.mutate(c, domain.OpPick, h.inventory.Pick)
}

// Adjust sets stock to an absolute value.
//
// @Summary      Adjust stock
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id               query     int     true   "Product ID"
// @Param        quant            query     int     true   "New stock level"
// @Param        Idempotency-Key  header    string  false  "Client-supplied idempotency key"
// @Success      200              {object}  Envelope
// @Failure      400              {object}  Envelope
// @Failure      401              {object}  Envelope
// @Failure      403              {object}  Envelope
// @Failure      404              {object}  Envelope
// @Failure      409              {object}  Envelope
// @Router       /inventory/adjust [put]
func (h *InventoryHandler) Adjust(c echo.Context) error {
	return h.mutate(c, domain.OpAdjust, h.inventory.Adjust)
}

type stockFunc func(ctx context.Context, change domain.StockChange) (*domain.Product, error)

func (h *InventoryHandler) mutate(c echo.Context, op domain.StockOperation, apply stockFunc) error {
	id, qty, err := domain.ParseStockParams(c.QueryParam("id"), c.QueryParam("quant"))
	if err != nil {
		recordMutation(op, err)
		return err
	}

	change := domain.StockChange{
		ProductID:      id,
		Quantity:       qty,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(middleware.HeaderIdempotencyKey)),
	}
	if identity, ok := middleware.IdentityFrom(c); ok {
		change.ActorID = identity.UserID
	}
	product, err := apply(c.Request().Context(), change)
	recordMutation(op, err)
	if err != nil {
		return err
	}
	if op != domain.OpAdjust {
		metrics.StockUnitsTotal.WithLabelValues(string(op)).Add(float64(qty))
	}
	return respond(c, http.StatusOK, product, stockMessage(op, qty, product.StockQuantity))
}

func stockMessage(op domain.StockOperation, qty, stock int) string {
	switch op {
	case domain.OpReceive:
		return fmt.Sprintf("Successfully received %d units. New stock: %d", qty, stock)
	case domain.OpPick:
		return fmt.Sprintf("Successfully picked %d units. New stock: %d", qty, stock)
	default:
		return fmt.Sprintf("Stock adjusted to %d", stock)
	}
}

func recordMutation(op domain.StockOperation, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInsufficientStock):
		result = "insufficient"
	case errors.Is(err, domain.ErrProductNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrValidation):
		result = "invalid"
	case errors.Is(err, domain.ErrDuplicateRequest):
		result = "duplicate"
	default:
		result = "error"
	}
	metrics.StockMutationsTotal.WithLabelValues(string(op), result).Inc()
}
