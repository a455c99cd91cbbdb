package models

import (
	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	SKU          string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_products_sku"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	Quantity     int64           `gorm:"not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel int64           `gorm:"not null;default:10"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		SKU:               m.SKU,
		Description:       m.Description,
		Category:          m.Category,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		ReorderLevel:      m.ReorderLevel,
		SupplierID:        m.SupplierID,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Description = p.Description
	m.Category = p.Category
	m.Quantity = p.Quantity
	m.UnitPrice = p.UnitPrice
	m.ReorderLevel = p.ReorderLevel
	m.SupplierID = p.SupplierID
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
