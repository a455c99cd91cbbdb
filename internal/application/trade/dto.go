package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line of a sales or purchase order submission
type OrderLineRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	Status     string             `json:"status" binding:"omitempty,oneof=pending completed"`
	Notes      string             `json:"notes" binding:"max=2000"`
	Items      []OrderLineRequest `json:"items" binding:"dive"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID          `json:"supplier_id" binding:"required"`
	Notes      string             `json:"notes" binding:"max=2000"`
	Items      []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// toLineInputs rejects a line without a unit price; a price of zero must
// be entered explicitly.
func toLineInputs(items []OrderLineRequest) ([]trade.LineInput, error) {
	lines := make([]trade.LineInput, len(items))
	for i, it := range items {
		if it.UnitPrice == nil {
			return nil, shared.NewValidationError(fmt.Sprintf("items[%d].unit_price", i), "is required")
		}
		lines[i] = trade.LineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: *it.UnitPrice,
		}
	}
	return lines, nil
}

// SalesOrderListFilter represents filter options for sales order listings
type SalesOrderListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseOrderListFilter represents filter options for purchase order listings
type PurchaseOrderListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=pending received cancelled"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse represents a sales order in API responses.
// Items are only populated on single-order reads.
type SalesOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	OrderDate    time.Time           `json:"order_date"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Notes        string              `json:"notes"`
	CreatedBy    *uuid.UUID          `json:"created_by,omitempty"`
	Items        []OrderLineResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	PONumber     string              `json:"po_number"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	SupplierName string              `json:"supplier_name,omitempty"`
	OrderDate    time.Time           `json:"order_date"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Notes        string              `json:"notes"`
	ReceivedAt   *time.Time          `json:"received_at,omitempty"`
	CreatedBy    *uuid.UUID          `json:"created_by,omitempty"`
	Items        []OrderLineResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// ToOrderLineResponses converts order lines, naming products from names
func ToOrderLineResponses(items []trade.OrderLine, names map[uuid.UUID]string) []OrderLineResponse {
	out := make([]OrderLineResponse, len(items))
	for i, it := range items {
		out[i] = OrderLineResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		}
	}
	return out
}

// ToSalesOrderResponse converts a domain SalesOrder to SalesOrderResponse
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder to PurchaseOrderResponse
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          o.ID,
		PONumber:    o.PONumber,
		SupplierID:  o.SupplierID,
		OrderDate:   o.OrderDate,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		ReceivedAt:  o.ReceivedAt,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}
