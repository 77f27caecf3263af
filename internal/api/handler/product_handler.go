package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	SKU           string  `json:"sku"            validate:"required"`
	Name          string  `json:"name"           validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"          validate:"gte=0"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0,lte=2147483647"`
}

type updateProductRequest struct {
	SKU           *string  `json:"sku"`
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"          validate:"omitempty,gte=0"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0,lte=2147483647"`
}

// All lists the catalog.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /products/allProducts [get]
func (h *ProductHandler) All(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, products, "")
}

// Get returns one product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   query     int  true  "Product ID"
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /products/product [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := domain.ParseProductID(c.QueryParam("id"))
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product, "")
}

// Create adds a product to the catalog.
//
// @Summary      Create product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /products/create [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.products.Create(c.Request().Context(), ports.CreateProductInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, product, "Product created successfully")
}

// Update applies a partial update.
//
// @Summary      Update product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    query     int                   true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /products/update [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := domain.ParseProductID(c.QueryParam("id"))
	if err != nil {
		return err
	}
	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.products.Update(c.Request().Context(), id, domain.ProductUpdate{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   query     int  true  "Product ID"
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /products/delete [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := domain.ParseProductID(c.QueryParam("id"))
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Product deleted successfully")
}
