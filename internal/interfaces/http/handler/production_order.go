package handler

import (
	"github.com/gin-gonic/gin"
	productionapp "github.com/moldshop/erp/internal/application/production"
)

// ProductionOrderHandler handles production order API endpoints
type ProductionOrderHandler struct {
	BaseHandler
	orderService *productionapp.ProductionOrderService
}

// NewProductionOrderHandler creates a new ProductionOrderHandler
func NewProductionOrderHandler(orderService *productionapp.ProductionOrderService) *ProductionOrderHandler {
	return &ProductionOrderHandler{orderService: orderService}
}

type productionOrderForm struct {
	ProductID        string `form:"product_id"`
	MoldID           string `form:"mold_id"`
	MachineID        string `form:"machine_id"`
	PlannedQuantity  string `form:"planned_quantity"`
	PlannedStartDate string `form:"planned_start_date"`
	PlannedEndDate   string `form:"planned_end_date"`
	Notes            string `form:"notes"`
}

func (f productionOrderForm) toRequest() (productionapp.CreateProductionOrderRequest, error) {
	req := productionapp.CreateProductionOrderRequest{Notes: f.Notes}
	var err error
	if req.ProductID, err = parseUUID("product_id", f.ProductID); err != nil {
		return req, err
	}
	if req.MoldID, err = parseUUID("mold_id", f.MoldID); err != nil {
		return req, err
	}
	if req.MachineID, err = parseOptionalUUID("machine_id", f.MachineID); err != nil {
		return req, err
	}
	if req.PlannedQuantity, err = parseInt64("planned_quantity", f.PlannedQuantity); err != nil {
		return req, err
	}
	if req.PlannedStartDate, err = parseOptionalDate("planned_start_date", f.PlannedStartDate); err != nil {
		return req, err
	}
	if req.PlannedEndDate, err = parseOptionalDate("planned_end_date", f.PlannedEndDate); err != nil {
		return req, err
	}
	return req, nil
}

type completeForm struct {
	ProducedQuantity string `form:"produced_quantity"`
	ScrapQuantity    string `form:"scrap_quantity"`
	RawMaterialUsed  string `form:"raw_material_used"`
}

func (f completeForm) toRequest() (productionapp.CompleteProductionOrderRequest, error) {
	var req productionapp.CompleteProductionOrderRequest
	produced, err := parseInt64("produced_quantity", f.ProducedQuantity)
	if err != nil {
		return req, err
	}
	scrap, err := parseInt64("scrap_quantity", f.ScrapQuantity)
	if err != nil {
		return req, err
	}
	material, err := parseDecimal("raw_material_used", f.RawMaterialUsed)
	if err != nil {
		return req, err
	}
	req.ProducedQuantity, req.ScrapQuantity, req.RawMaterialUsed = &produced, &scrap, &material
	return req, nil
}

// Create handles POST /production-orders
func (h *ProductionOrderHandler) Create(c *gin.Context) {
	var req productionapp.CreateProductionOrderRequest
	if !decodeBody(&h.BaseHandler, c, &req, productionOrderForm.toRequest) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID handles GET /production-orders/:id
func (h *ProductionOrderHandler) GetByID(c *gin.Context) {
	orderID, ok := h.pathID(c, "production order")
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

// List handles GET /production-orders
func (h *ProductionOrderHandler) List(c *gin.Context) {
	var filter productionapp.ProductionOrderListFilter
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

// Start handles POST /production-orders/:id/start
func (h *ProductionOrderHandler) Start(c *gin.Context) {
	orderID, ok := h.pathID(c, "production order")
	if !ok {
		return
	}

	order, err := h.orderService.Start(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Complete handles POST /production-orders/:id/complete
func (h *ProductionOrderHandler) Complete(c *gin.Context) {
	orderID, ok := h.pathID(c, "production order")
	if !ok {
		return
	}

	var req productionapp.CompleteProductionOrderRequest
	if !decodeBody(&h.BaseHandler, c, &req, completeForm.toRequest) {
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// InspectQuality handles POST /production-orders/:id/quality
func (h *ProductionOrderHandler) InspectQuality(c *gin.Context) {
	orderID, ok := h.pathID(c, "production order")
	if !ok {
		return
	}

	var req productionapp.InspectProductionOrderRequest
	if !h.bind(c, &req) {
		return
	}

	order, err := h.orderService.InspectQuality(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
