package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/shopspring/decimal"
)

// MoldModel is the persistence model for the Mold aggregate root.
type MoldModel struct {
	AggregateModel
	Code                  string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_molds_code"`
	Name                  string                `gorm:"type:varchar(200);not null"`
	ProductID             *uuid.UUID            `gorm:"type:uuid;index"`
	CavityCount           int                   `gorm:"not null;default:1"`
	TotalShots            int64                 `gorm:"not null;default:0"`
	ShotsSinceMaintenance int64                 `gorm:"not null;default:0"`
	MaintenanceInterval   int64                 `gorm:"not null;default:0"`
	Status                production.MoldStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes                 string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MoldModel) TableName() string {
	return "molds"
}

// ToDomain converts the persistence model to a domain Mold.
func (m *MoldModel) ToDomain() *production.Mold {
	return &production.Mold{
		BaseAggregateRoot:     m.ToAggregateRoot(),
		Code:                  m.Code,
		Name:                  m.Name,
		ProductID:             m.ProductID,
		CavityCount:           m.CavityCount,
		TotalShots:            m.TotalShots,
		ShotsSinceMaintenance: m.ShotsSinceMaintenance,
		MaintenanceInterval:   m.MaintenanceInterval,
		Status:                m.Status,
		Notes:                 m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Mold.
func (m *MoldModel) FromDomain(d *production.Mold) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Code = d.Code
	m.Name = d.Name
	m.ProductID = d.ProductID
	m.CavityCount = d.CavityCount
	m.TotalShots = d.TotalShots
	m.ShotsSinceMaintenance = d.ShotsSinceMaintenance
	m.MaintenanceInterval = d.MaintenanceInterval
	m.Status = d.Status
	m.Notes = d.Notes
}

// MachineModel is the persistence model for the Machine entity.
type MachineModel struct {
	AggregateModel
	Code    string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_machines_code"`
	Name    string                   `gorm:"type:varchar(200);not null"`
	Tonnage int                      `gorm:"not null;default:0"`
	Status  production.MachineStatus `gorm:"type:varchar(20);not null;default:'idle'"`
	Notes   string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MachineModel) TableName() string {
	return "machines"
}

// ToDomain converts the persistence model to a domain Machine.
func (m *MachineModel) ToDomain() *production.Machine {
	return &production.Machine{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Tonnage:           m.Tonnage,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Machine.
func (m *MachineModel) FromDomain(d *production.Machine) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Code = d.Code
	m.Name = d.Name
	m.Tonnage = d.Tonnage
	m.Status = d.Status
	m.Notes = d.Notes
}

// ProductionOrderModel is the persistence model for the ProductionOrder aggregate root.
type ProductionOrderModel struct {
	AggregateModel
	OrderNumber      string                   `gorm:"type:varchar(20);not null;uniqueIndex:idx_production_orders_number"`
	ProductID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	MoldID           uuid.UUID                `gorm:"type:uuid;not null;index"`
	MachineID        *uuid.UUID               `gorm:"type:uuid;index"`
	PlannedQuantity  int64                    `gorm:"not null"`
	ProducedQuantity int64                    `gorm:"not null;default:0"`
	ScrapQuantity    int64                    `gorm:"not null;default:0"`
	RawMaterialUsed  decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Status           production.OrderStatus   `gorm:"type:varchar(20);not null;default:'planned';index"`
	QualityStatus    production.QualityStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	ActualStartDate  *time.Time
	ActualEndDate    *time.Time
	QualityInspector string `gorm:"type:varchar(100)"`
	QualityNotes     string `gorm:"type:text"`
	InspectedAt      *time.Time
	Notes            string     `gorm:"type:text"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the persistence model to a domain ProductionOrder.
func (m *ProductionOrderModel) ToDomain() *production.ProductionOrder {
	return &production.ProductionOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		ProductID:         m.ProductID,
		MoldID:            m.MoldID,
		MachineID:         m.MachineID,
		PlannedQuantity:   m.PlannedQuantity,
		ProducedQuantity:  m.ProducedQuantity,
		ScrapQuantity:     m.ScrapQuantity,
		RawMaterialUsed:   m.RawMaterialUsed,
		Status:            m.Status,
		QualityStatus:     m.QualityStatus,
		PlannedStartDate:  m.PlannedStartDate,
		PlannedEndDate:    m.PlannedEndDate,
		ActualStartDate:   m.ActualStartDate,
		ActualEndDate:     m.ActualEndDate,
		QualityInspector:  m.QualityInspector,
		QualityNotes:      m.QualityNotes,
		InspectedAt:       m.InspectedAt,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain ProductionOrder.
func (m *ProductionOrderModel) FromDomain(o *production.ProductionOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.ProductID = o.ProductID
	m.MoldID = o.MoldID
	m.MachineID = o.MachineID
	m.PlannedQuantity = o.PlannedQuantity
	m.ProducedQuantity = o.ProducedQuantity
	m.ScrapQuantity = o.ScrapQuantity
	m.RawMaterialUsed = o.RawMaterialUsed
	m.Status = o.Status
	m.QualityStatus = o.QualityStatus
	m.PlannedStartDate = o.PlannedStartDate
	m.PlannedEndDate = o.PlannedEndDate
	m.ActualStartDate = o.ActualStartDate
	m.ActualEndDate = o.ActualEndDate
	m.QualityInspector = o.QualityInspector
	m.QualityNotes = o.QualityNotes
	m.InspectedAt = o.InspectedAt
	m.Notes = o.Notes
	m.CreatedBy = o.CreatedBy
}
