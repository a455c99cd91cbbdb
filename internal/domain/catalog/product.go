// Package catalog holds the product aggregate: the sellable and
// manufacturable items whose on-hand quantity the order workflows move.
package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultReorderLevel is applied when a product is created without one
const DefaultReorderLevel int64 = 10

// Product is a stock keeping unit with an on-hand quantity.
// Quantity is only moved by order workflows, never by Update, and may go
// negative when completed sales outrun stock.
type Product struct {
	shared.BaseAggregateRoot
	Name         string
	SKU          string
	Description  string
	Category     string
	Quantity     int64
	UnitPrice    decimal.Decimal
	ReorderLevel int64
	SupplierID   *uuid.UUID
}

// ProductDetails carries the editable attributes of a product
type ProductDetails struct {
	Name         string
	SKU          string
	Description  string
	Category     string
	UnitPrice    decimal.Decimal
	ReorderLevel *int64
	SupplierID   *uuid.UUID
}

// NewProduct creates a product with an opening quantity
func NewProduct(d ProductDetails, openingQuantity int64) (*Product, error) {
	if openingQuantity < 0 {
		return nil, shared.NewValidationError("quantity", "cannot be negative")
	}
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Quantity:          openingQuantity,
		ReorderLevel:      DefaultReorderLevel,
	}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable attributes
func (p *Product) Update(d ProductDetails) error {
	if err := p.apply(d); err != nil {
		return err
	}
	p.Touch()
	return nil
}

func (p *Product) apply(d ProductDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("name", "is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	sku := strings.TrimSpace(d.SKU)
	if sku == "" {
		return shared.NewValidationError("sku", "is required")
	}
	if len(sku) > 64 {
		return shared.NewValidationError("sku", "cannot exceed 64 characters")
	}
	if d.UnitPrice.IsNegative() {
		return shared.NewValidationError("unit_price", "cannot be negative")
	}
	reorder := p.ReorderLevel
	if d.ReorderLevel != nil {
		if *d.ReorderLevel < 0 {
			return shared.NewValidationError("reorder_level", "cannot be negative")
		}
		reorder = *d.ReorderLevel
	}

	p.Name = name
	p.SKU = sku
	p.Description = strings.TrimSpace(d.Description)
	p.Category = NormalizeCategory(d.Category)
	p.UnitPrice = d.UnitPrice
	p.ReorderLevel = reorder
	p.SupplierID = d.SupplierID
	return nil
}

// NormalizeCategory title-cases a category so reports group consistently
func NormalizeCategory(category string) string {
	category = strings.Join(strings.Fields(category), " ")
	if category == "" {
		return ""
	}
	return cases.Title(language.Und).String(category)
}

// IsLowStock reports whether the product is at or below its reorder level
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// StockValue is quantity times unit price
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// FindAll returns products ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	FindLowStock(ctx context.Context) ([]Product, error)
	ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustQuantity adds delta to the on-hand quantity in a single
	// statement so concurrent adjustments never lose an update.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int64) error
}
