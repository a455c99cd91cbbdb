package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
)

// SalesOrderFilter narrows sales order listings
type SalesOrderFilter struct {
	shared.Filter
	Status     *SalesOrderStatus
	CustomerID *uuid.UUID
}

// SalesOrderRepository persists sales orders with their items
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	// FindAll returns orders newest first, items not loaded
	FindAll(ctx context.Context, filter SalesOrderFilter) ([]SalesOrder, int64, error)
	// Create inserts the header and all items
	Create(ctx context.Context, order *SalesOrder) error
	// UpdateStatus writes status changes with an optimistic version check
	UpdateStatus(ctx context.Context, order *SalesOrder) error
}

// PurchaseOrderFilter narrows purchase order listings
type PurchaseOrderFilter struct {
	shared.Filter
	Status     *PurchaseOrderStatus
	SupplierID *uuid.UUID
}

// PurchaseOrderRepository persists purchase orders with their items
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	// FindAll returns orders newest first, items not loaded
	FindAll(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrder, int64, error)
	Create(ctx context.Context, order *PurchaseOrder) error
	// UpdateStatus writes status changes with an optimistic version check
	UpdateStatus(ctx context.Context, order *PurchaseOrder) error
}
