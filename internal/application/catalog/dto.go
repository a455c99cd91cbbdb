package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	SKU          string          `json:"sku" binding:"required,min=1,max=64"`
	Description  string          `json:"description" binding:"max=2000"`
	Category     string          `json:"category" binding:"max=100"`
	Quantity     int64           `json:"quantity" binding:"min=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel *int64          `json:"reorder_level" binding:"omitempty,min=0"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
}

// UpdateProductRequest replaces every attribute of a product except its quantity
type UpdateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	SKU          string          `json:"sku" binding:"required,min=1,max=64"`
	Description  string          `json:"description" binding:"max=2000"`
	Category     string          `json:"category" binding:"max=100"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel *int64          `json:"reorder_level" binding:"omitempty,min=0"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
}

func (r CreateProductRequest) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:         r.Name,
		SKU:          r.SKU,
		Description:  r.Description,
		Category:     r.Category,
		UnitPrice:    r.UnitPrice,
		ReorderLevel: r.ReorderLevel,
		SupplierID:   r.SupplierID,
	}
}

func (r UpdateProductRequest) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:         r.Name,
		SKU:          r.SKU,
		Description:  r.Description,
		Category:     r.Category,
		UnitPrice:    r.UnitPrice,
		ReorderLevel: r.ReorderLevel,
		SupplierID:   r.SupplierID,
	}
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int64           `json:"reorder_level"`
	SupplierID   *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	LowStock     bool            `json:"low_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ProductAPIItem is one row of the public product listing: id, name, sku,
// unit_price, quantity, in that order.
type ProductAPIItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int64     `json:"quantity"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		Category:     p.Category,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		ReorderLevel: p.ReorderLevel,
		SupplierID:   p.SupplierID,
		LowStock:     p.IsLowStock(),
		StockValue:   p.StockValue(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToProductAPIItem converts a domain Product to its public listing row
func ToProductAPIItem(p *catalog.Product) ProductAPIItem {
	return ProductAPIItem{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: p.UnitPrice.InexactFloat64(),
		Quantity:  p.Quantity,
	}
}
