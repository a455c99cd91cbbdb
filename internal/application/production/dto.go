package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoldRequest creates or fully updates a mold. Code is only read on create.
type MoldRequest struct {
	Code                string     `json:"code" binding:"required,min=1,max=50"`
	Name                string     `json:"name" binding:"required,min=1,max=200"`
	ProductID           *uuid.UUID `json:"product_id"`
	CavityCount         int        `json:"cavity_count" binding:"omitempty,min=1"`
	MaintenanceInterval int64      `json:"maintenance_interval" binding:"min=0"`
	Status              string     `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes               string     `json:"notes" binding:"max=2000"`
}

func (r MoldRequest) details() production.MoldDetails {
	return production.MoldDetails{
		Name:                r.Name,
		ProductID:           r.ProductID,
		CavityCount:         r.CavityCount,
		MaintenanceInterval: r.MaintenanceInterval,
		Status:              production.MoldStatus(r.Status),
		Notes:               r.Notes,
	}
}

// MachineRequest creates or fully updates a machine. Code is only read on create.
type MachineRequest struct {
	Code    string `json:"code" form:"code" binding:"required,min=1,max=50"`
	Name    string `json:"name" form:"name" binding:"required,min=1,max=200"`
	Tonnage int    `json:"tonnage" form:"tonnage" binding:"min=0"`
	Status  string `json:"status" form:"status" binding:"omitempty,oneof=idle running maintenance"`
	Notes   string `json:"notes" form:"notes" binding:"max=2000"`
}

func (r MachineRequest) details() production.MachineDetails {
	return production.MachineDetails{
		Name:    r.Name,
		Tonnage: r.Tonnage,
		Status:  production.MachineStatus(r.Status),
		Notes:   r.Notes,
	}
}

// EquipmentListFilter represents filter options for mold and machine listings
type EquipmentListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateProductionOrderRequest plans a production run
type CreateProductionOrderRequest struct {
	ProductID        uuid.UUID  `json:"product_id" binding:"required"`
	MoldID           uuid.UUID  `json:"mold_id" binding:"required"`
	MachineID        *uuid.UUID `json:"machine_id"`
	PlannedQuantity  int64      `json:"planned_quantity" binding:"required,min=1"`
	PlannedStartDate *time.Time `json:"planned_start_date"`
	PlannedEndDate   *time.Time `json:"planned_end_date"`
	Notes            string     `json:"notes" binding:"max=2000"`
}

// CompleteProductionOrderRequest reports the output of a finished run.
// All three figures are required; zero is a valid report.
type CompleteProductionOrderRequest struct {
	ProducedQuantity *int64           `json:"produced_quantity" binding:"required,min=0"`
	ScrapQuantity    *int64           `json:"scrap_quantity" binding:"required,min=0"`
	RawMaterialUsed  *decimal.Decimal `json:"raw_material_used" binding:"required"`
}

func (r CompleteProductionOrderRequest) toInput() (production.CompletionInput, error) {
	switch {
	case r.ProducedQuantity == nil:
		return production.CompletionInput{}, shared.NewValidationError("produced_quantity", "is required")
	case r.ScrapQuantity == nil:
		return production.CompletionInput{}, shared.NewValidationError("scrap_quantity", "is required")
	case r.RawMaterialUsed == nil:
		return production.CompletionInput{}, shared.NewValidationError("raw_material_used", "is required")
	}
	input := production.CompletionInput{
		ProducedQuantity: *r.ProducedQuantity,
		ScrapQuantity:    *r.ScrapQuantity,
		RawMaterialUsed:  *r.RawMaterialUsed,
	}
	return input, input.Validate()
}

// InspectProductionOrderRequest records a quality inspection
type InspectProductionOrderRequest struct {
	Result    string `json:"result" form:"result" binding:"required,oneof=passed failed"`
	Inspector string `json:"inspector" form:"inspector" binding:"required,max=200"`
	Notes     string `json:"notes" form:"notes" binding:"max=2000"`
}

// ProductionOrderListFilter represents filter options for production order listings
type ProductionOrderListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=planned in_progress completed"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	MoldID    string `form:"mold_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MoldResponse represents a mold in API responses
type MoldResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Code                  string     `json:"code"`
	Name                  string     `json:"name"`
	ProductID             *uuid.UUID `json:"product_id,omitempty"`
	CavityCount           int        `json:"cavity_count"`
	TotalShots            int64      `json:"total_shots"`
	ShotsSinceMaintenance int64      `json:"shots_since_maintenance"`
	MaintenanceInterval   int64      `json:"maintenance_interval"`
	NeedsMaintenance      bool       `json:"needs_maintenance"`
	Status                string     `json:"status"`
	Notes                 string     `json:"notes"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// MachineResponse represents a machine in API responses
type MachineResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Tonnage   int       `json:"tonnage"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductionOrderResponse represents a production order in API responses
type ProductionOrderResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrderNumber      string          `json:"order_number"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	MoldID           uuid.UUID       `json:"mold_id"`
	MachineID        *uuid.UUID      `json:"machine_id,omitempty"`
	PlannedQuantity  int64           `json:"planned_quantity"`
	ProducedQuantity int64           `json:"produced_quantity"`
	ScrapQuantity    int64           `json:"scrap_quantity"`
	RawMaterialUsed  decimal.Decimal `json:"raw_material_used"`
	YieldRate        decimal.Decimal `json:"yield_rate"`
	Status           string          `json:"status"`
	QualityStatus    string          `json:"quality_status"`
	PlannedStartDate *time.Time      `json:"planned_start_date,omitempty"`
	PlannedEndDate   *time.Time      `json:"planned_end_date,omitempty"`
	ActualStartDate  *time.Time      `json:"actual_start_date,omitempty"`
	ActualEndDate    *time.Time      `json:"actual_end_date,omitempty"`
	QualityInspector string          `json:"quality_inspector,omitempty"`
	QualityNotes     string          `json:"quality_notes,omitempty"`
	InspectedAt      *time.Time      `json:"inspected_at,omitempty"`
	Notes            string          `json:"notes"`
	CreatedBy        *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToMoldResponse converts a domain Mold to MoldResponse
func ToMoldResponse(m *production.Mold) MoldResponse {
	return MoldResponse{
		ID:                    m.ID,
		Code:                  m.Code,
		Name:                  m.Name,
		ProductID:             m.ProductID,
		CavityCount:           m.CavityCount,
		TotalShots:            m.TotalShots,
		ShotsSinceMaintenance: m.ShotsSinceMaintenance,
		MaintenanceInterval:   m.MaintenanceInterval,
		NeedsMaintenance:      m.NeedsMaintenance(),
		Status:                string(m.Status),
		Notes:                 m.Notes,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// ToMachineResponse converts a domain Machine to MachineResponse
func ToMachineResponse(m *production.Machine) MachineResponse {
	return MachineResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Tonnage:   m.Tonnage,
		Status:    string(m.Status),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToProductionOrderResponse converts a domain ProductionOrder to its response
func ToProductionOrderResponse(o *production.ProductionOrder) ProductionOrderResponse {
	return ProductionOrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		ProductID:        o.ProductID,
		MoldID:           o.MoldID,
		MachineID:        o.MachineID,
		PlannedQuantity:  o.PlannedQuantity,
		ProducedQuantity: o.ProducedQuantity,
		ScrapQuantity:    o.ScrapQuantity,
		RawMaterialUsed:  o.RawMaterialUsed,
		YieldRate:        o.YieldRate(),
		Status:           string(o.Status),
		QualityStatus:    string(o.QualityStatus),
		PlannedStartDate: o.PlannedStartDate,
		PlannedEndDate:   o.PlannedEndDate,
		ActualStartDate:  o.ActualStartDate,
		ActualEndDate:    o.ActualEndDate,
		QualityInspector: o.QualityInspector,
		QualityNotes:     o.QualityNotes,
		InspectedAt:      o.InspectedAt,
		Notes:            o.Notes,
		CreatedBy:        o.CreatedBy,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Version:          o.Version,
	}
}
