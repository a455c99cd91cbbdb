package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can move to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	return s == PurchaseOrderStatusPending &&
		(target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled)
}

const purchaseOrderEntity = "purchase order"

// PurchaseOrder is an order placed with a supplier
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber    string
	SupplierID  uuid.UUID
	OrderDate   time.Time
	Status      PurchaseOrderStatus
	TotalAmount decimal.Decimal
	Notes       string
	ReceivedAt  *time.Time
	CreatedBy   *uuid.UUID
	Items       []OrderLine
}

// PurchaseOrderInput is a fully typed purchase order submission
type PurchaseOrderInput struct {
	SupplierID uuid.UUID
	Notes      string
	Lines      []LineInput
	CreatedBy  *uuid.UUID
}

// Validate checks the whole submission
func (in PurchaseOrderInput) Validate() error {
	if in.SupplierID == uuid.Nil {
		return shared.NewValidationError("supplier_id", "is required")
	}
	if len(in.Lines) == 0 {
		return shared.NewValidationError("items", "at least one line is required")
	}
	return ValidateLines(in.Lines)
}

// NewPurchaseOrder builds a pending purchase order
func NewPurchaseOrder(poNumber string, in PurchaseOrderInput) (*PurchaseOrder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(poNumber) == "" {
		return nil, shared.NewValidationError("po_number", "is required")
	}
	o := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		SupplierID:        in.SupplierID,
		Status:            PurchaseOrderStatusPending,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedBy:         in.CreatedBy,
	}
	o.OrderDate = o.CreatedAt
	o.Items, o.TotalAmount = newOrderLines(o.ID, in.Lines)
	return o, nil
}

// Receive marks the goods as arrived. The caller adds them to stock.
func (o *PurchaseOrder) Receive(now time.Time) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusReceived) {
		return shared.NewInvalidTransitionError(purchaseOrderEntity, string(o.Status), "receive")
	}
	o.Status = PurchaseOrderStatusReceived
	o.ReceivedAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o))
	return nil
}

// Cancel cancels a pending purchase order
func (o *PurchaseOrder) Cancel() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewInvalidTransitionError(purchaseOrderEntity, string(o.Status), "cancel")
	}
	o.Status = PurchaseOrderStatusCancelled
	o.Touch()
	return nil
}
