package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "pending"
	SalesOrderStatusCompleted SalesOrderStatus = "completed"
	SalesOrderStatusCancelled SalesOrderStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusPending, SalesOrderStatusCompleted, SalesOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can move to the target status
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	return s == SalesOrderStatusPending &&
		(target == SalesOrderStatusCompleted || target == SalesOrderStatusCancelled)
}

const salesOrderEntity = "sales order"

// SalesOrder is a customer order. TotalAmount always equals the sum of the
// item subtotals.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string
	CustomerID  uuid.UUID
	OrderDate   time.Time
	Status      SalesOrderStatus
	TotalAmount decimal.Decimal
	Notes       string
	CreatedBy   *uuid.UUID
	Items       []OrderLine
}

// SalesOrderInput is a fully typed sales order submission
type SalesOrderInput struct {
	CustomerID uuid.UUID
	Status     SalesOrderStatus
	Notes      string
	Lines      []LineInput
	CreatedBy  *uuid.UUID
}

// Validate checks the whole submission
func (in SalesOrderInput) Validate() error {
	if in.CustomerID == uuid.Nil {
		return shared.NewValidationError("customer_id", "is required")
	}
	if in.Status != "" && in.Status != SalesOrderStatusPending && in.Status != SalesOrderStatusCompleted {
		return shared.NewValidationError("status", "must be pending or completed")
	}
	return ValidateLines(in.Lines)
}

// NewSalesOrder builds a sales order with its lines and total
func NewSalesOrder(orderNumber string, in SalesOrderInput) (*SalesOrder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewValidationError("order_number", "is required")
	}
	status := in.Status
	if status == "" {
		status = SalesOrderStatusPending
	}

	o := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        in.CustomerID,
		Status:            status,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedBy:         in.CreatedBy,
	}
	o.OrderDate = o.CreatedAt
	o.Items, o.TotalAmount = newOrderLines(o.ID, in.Lines)
	o.AddDomainEvent(NewSalesOrderEvent(EventTypeSalesOrderCreated, o))
	return o, nil
}

// IsCompleted reports whether the order's goods have left stock
func (o *SalesOrder) IsCompleted() bool {
	return o.Status == SalesOrderStatusCompleted
}

// Complete marks a pending order as completed. The caller debits stock.
func (o *SalesOrder) Complete() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCompleted) {
		return shared.NewInvalidTransitionError(salesOrderEntity, string(o.Status), "complete")
	}
	o.Status = SalesOrderStatusCompleted
	o.Touch()
	o.AddDomainEvent(NewSalesOrderEvent(EventTypeSalesOrderCompleted, o))
	return nil
}

// Cancel cancels a pending order
func (o *SalesOrder) Cancel() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCancelled) {
		return shared.NewInvalidTransitionError(salesOrderEntity, string(o.Status), "cancel")
	}
	o.Status = SalesOrderStatusCancelled
	o.Touch()
	o.AddDomainEvent(NewSalesOrderEvent(EventTypeSalesOrderCancelled, o))
	return nil
}

// ItemsTotal recomputes the sum of item subtotals
func (o *SalesOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}
