package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/moldshop/erp/internal/application/catalog"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// productForm is the form encoding of a product create or update
type productForm struct {
	Name         string `form:"name"`
	SKU          string `form:"sku"`
	Description  string `form:"description"`
	Category     string `form:"category"`
	Quantity     string `form:"quantity"`
	UnitPrice    string `form:"unit_price"`
	ReorderLevel string `form:"reorder_level"`
	SupplierID   string `form:"supplier_id"`
}

func (f productForm) toCreate() (catalogapp.CreateProductRequest, error) {
	update, err := f.toUpdate()
	if err != nil {
		return catalogapp.CreateProductRequest{}, err
	}
	var quantity int64
	opening, err := parseOptionalInt64("quantity", f.Quantity)
	if err != nil {
		return catalogapp.CreateProductRequest{}, err
	}
	if opening != nil {
		quantity = *opening
	}
	return catalogapp.CreateProductRequest{
		Name:         update.Name,
		SKU:          update.SKU,
		Description:  update.Description,
		Category:     update.Category,
		Quantity:     quantity,
		UnitPrice:    update.UnitPrice,
		ReorderLevel: update.ReorderLevel,
		SupplierID:   update.SupplierID,
	}, nil
}

func (f productForm) toUpdate() (catalogapp.UpdateProductRequest, error) {
	req := catalogapp.UpdateProductRequest{
		Name:        f.Name,
		SKU:         f.SKU,
		Description: f.Description,
		Category:    f.Category,
	}
	price, err := parseOptionalDecimal("unit_price", f.UnitPrice)
	if err != nil {
		return req, err
	}
	if price != nil {
		req.UnitPrice = *price
	}
	if req.ReorderLevel, err = parseOptionalInt64("reorder_level", f.ReorderLevel); err != nil {
		return req, err
	}
	if req.SupplierID, err = parseOptionalUUID("supplier_id", f.SupplierID); err != nil {
		return req, err
	}
	return req, nil
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !decodeBody(&h.BaseHandler, c, &req, productForm.toCreate) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.pathID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pagination(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// ListForAPI handles GET /api/products. The body is a bare JSON array of
// {id, name, sku, unit_price, quantity}, without the response envelope.
func (h *ProductHandler) ListForAPI(c *gin.Context) {
	items, err := h.productService.ListForAPI(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// LowStock handles GET /products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.pathID(c, "product")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if !decodeBody(&h.BaseHandler, c, &req, productForm.toUpdate) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.pathID(c, "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
