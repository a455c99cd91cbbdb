package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	AggregateModel
	OrderNumber string                 `gorm:"type:varchar(20);not null;uniqueIndex:idx_sales_orders_number"`
	CustomerID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	OrderDate   time.Time              `gorm:"not null;index"`
	Status      trade.SalesOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string                 `gorm:"type:text"`
	CreatedBy   *uuid.UUID             `gorm:"type:uuid"`
	Items       []SalesOrderItemModel  `gorm:"foreignKey:SalesOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	o := &trade.SalesOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		OrderDate:         m.OrderDate,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		Items:             make([]trade.OrderLine, 0, len(m.Items)),
	}
	for i := range m.Items {
		o.Items = append(o.Items, m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain SalesOrder.
func (m *SalesOrderModel) FromDomain(o *trade.SalesOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.OrderDate = o.OrderDate
	m.Status = o.Status
	m.TotalAmount = o.TotalAmount
	m.Notes = o.Notes
	m.CreatedBy = o.CreatedBy
	m.Items = make([]SalesOrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		m.Items = append(m.Items, SalesOrderItemModel{
			ID:           it.ID,
			SalesOrderID: o.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
			CreatedAt:    o.CreatedAt,
		})
	}
}

// SalesOrderItemModel is one line of a sales order.
type SalesOrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	SalesOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     int64           `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the persistence model to a domain OrderLine.
func (m *SalesOrderItemModel) ToDomain() trade.OrderLine {
	return trade.OrderLine{
		ID:        m.ID,
		OrderID:   m.SalesOrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Subtotal:  m.Subtotal,
	}
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	PONumber    string                    `gorm:"column:po_number;type:varchar(20);not null;uniqueIndex:idx_purchase_orders_number"`
	SupplierID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	OrderDate   time.Time                 `gorm:"not null;index"`
	Status      trade.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string                    `gorm:"type:text"`
	ReceivedAt  *time.Time
	CreatedBy   *uuid.UUID               `gorm:"type:uuid"`
	Items       []PurchaseOrderItemModel `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	o := &trade.PurchaseOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		PONumber:          m.PONumber,
		SupplierID:        m.SupplierID,
		OrderDate:         m.OrderDate,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		Notes:             m.Notes,
		ReceivedAt:        m.ReceivedAt,
		CreatedBy:         m.CreatedBy,
		Items:             make([]trade.OrderLine, 0, len(m.Items)),
	}
	for i := range m.Items {
		o.Items = append(o.Items, m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain PurchaseOrder.
func (m *PurchaseOrderModel) FromDomain(o *trade.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.PONumber = o.PONumber
	m.SupplierID = o.SupplierID
	m.OrderDate = o.OrderDate
	m.Status = o.Status
	m.TotalAmount = o.TotalAmount
	m.Notes = o.Notes
	m.ReceivedAt = o.ReceivedAt
	m.CreatedBy = o.CreatedBy
	m.Items = make([]PurchaseOrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		m.Items = append(m.Items, PurchaseOrderItemModel{
			ID:              it.ID,
			PurchaseOrderID: o.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			Subtotal:        it.Subtotal,
			CreatedAt:       o.CreatedAt,
		})
	}
}

// PurchaseOrderItemModel is one line of a purchase order.
type PurchaseOrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        int64           `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain OrderLine.
func (m *PurchaseOrderItemModel) ToDomain() trade.OrderLine {
	return trade.OrderLine{
		ID:        m.ID,
		OrderID:   m.PurchaseOrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Subtotal:  m.Subtotal,
	}
}
