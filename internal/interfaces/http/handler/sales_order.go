package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/moldshop/erp/internal/application/trade"
)

// SalesOrderHandler handles sales order API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

type salesOrderForm struct {
	orderLinesForm
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	Notes      string `form:"notes"`
}

func (f salesOrderForm) toRequest() (tradeapp.CreateSalesOrderRequest, error) {
	req := tradeapp.CreateSalesOrderRequest{
		Status: f.Status,
		Notes:  f.Notes,
	}
	var err error
	if req.CustomerID, err = parseUUID("customer_id", f.CustomerID); err != nil {
		return req, err
	}
	if req.Items, err = f.lines(); err != nil {
		return req, err
	}
	return req, nil
}

// Create handles POST /sales-orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
	if !decodeBody(&h.BaseHandler, c, &req, salesOrderForm.toRequest) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID handles GET /sales-orders/:id
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	orderID, ok := h.pathID(c, "sales order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List handles GET /sales-orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	var filter tradeapp.SalesOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pagination(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Complete handles POST /sales-orders/:id/complete
func (h *SalesOrderHandler) Complete(c *gin.Context) {
	orderID, ok := h.pathID(c, "sales order")
	if !ok {
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel handles POST /sales-orders/:id/cancel
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	orderID, ok := h.pathID(c, "sales order")
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
