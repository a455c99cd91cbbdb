package handler

import (
	"github.com/gin-gonic/gin"
	productionapp "github.com/moldshop/erp/internal/application/production"
)

// MoldHandler handles mold-related API endpoints
type MoldHandler struct {
	BaseHandler
	moldService *productionapp.MoldService
}

// NewMoldHandler creates a new MoldHandler
func NewMoldHandler(moldService *productionapp.MoldService) *MoldHandler {
	return &MoldHandler{moldService: moldService}
}

type moldForm struct {
	Code                string `form:"code"`
	Name                string `form:"name"`
	ProductID           string `form:"product_id"`
	CavityCount         string `form:"cavity_count"`
	MaintenanceInterval string `form:"maintenance_interval"`
	Status              string `form:"status"`
	Notes               string `form:"notes"`
}

func (f moldForm) toRequest() (productionapp.MoldRequest, error) {
	req := productionapp.MoldRequest{
		Code:   f.Code,
		Name:   f.Name,
		Status: f.Status,
		Notes:  f.Notes,
	}
	var err error
	if req.ProductID, err = parseOptionalUUID("product_id", f.ProductID); err != nil {
		return req, err
	}
	cavities, err := parseOptionalInt64("cavity_count", f.CavityCount)
	if err != nil {
		return req, err
	}
	if cavities != nil {
		req.CavityCount = int(*cavities)
	}
	interval, err := parseOptionalInt64("maintenance_interval", f.MaintenanceInterval)
	if err != nil {
		return req, err
	}
	if interval != nil {
		req.MaintenanceInterval = *interval
	}
	return req, nil
}

// Create handles POST /molds
func (h *MoldHandler) Create(c *gin.Context) {
	var req productionapp.MoldRequest
	if !decodeBody(&h.BaseHandler, c, &req, moldForm.toRequest) {
		return
	}

	mold, err := h.moldService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, mold)
}

// GetByID handles GET /molds/:id
func (h *MoldHandler) GetByID(c *gin.Context) {
	moldID, ok := h.pathID(c, "mold")
	if !ok {
		return
	}

	mold, err := h.moldService.GetByID(c.Request.Context(), moldID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mold)
}

// List handles GET /molds
func (h *MoldHandler) List(c *gin.Context) {
	var filter productionapp.EquipmentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	molds, total, err := h.moldService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pagination(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, molds, total, page, pageSize)
}

// Update handles PUT /molds/:id
func (h *MoldHandler) Update(c *gin.Context) {
	moldID, ok := h.pathID(c, "mold")
	if !ok {
		return
	}

	var req productionapp.MoldRequest
	if !decodeBody(&h.BaseHandler, c, &req, moldForm.toRequest) {
		return
	}

	mold, err := h.moldService.Update(c.Request.Context(), moldID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mold)
}

// MachineHandler handles machine-related API endpoints
type MachineHandler struct {
	BaseHandler
	machineService *productionapp.MachineService
}

// NewMachineHandler creates a new MachineHandler
func NewMachineHandler(machineService *productionapp.MachineService) *MachineHandler {
	return &MachineHandler{machineService: machineService}
}

// Create handles POST /machines
func (h *MachineHandler) Create(c *gin.Context) {
	var req productionapp.MachineRequest
	if !h.bind(c, &req) {
		return
	}

	machine, err := h.machineService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, machine)
}

// GetByID handles GET /machines/:id
func (h *MachineHandler) GetByID(c *gin.Context) {
	machineID, ok := h.pathID(c, "machine")
	if !ok {
		return
	}

	machine, err := h.machineService.GetByID(c.Request.Context(), machineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, machine)
}

// List handles GET /machines
func (h *MachineHandler) List(c *gin.Context) {
	var filter productionapp.EquipmentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	machines, total, err := h.machineService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pagination(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, machines, total, page, pageSize)
}

// Update handles PUT /machines/:id
func (h *MachineHandler) Update(c *gin.Context) {
	machineID, ok := h.pathID(c, "machine")
	if !ok {
		return
	}

	var req productionapp.MachineRequest
	if !h.bind(c, &req) {
		return
	}

	machine, err := h.machineService.Update(c.Request.Context(), machineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, machine)
}
