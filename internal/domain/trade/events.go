package trade

import (
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate types
const (
	AggregateTypeSalesOrder    = "SalesOrder"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Event types
const (
	EventTypeSalesOrderCreated     = "SalesOrderCreated"
	EventTypeSalesOrderCompleted   = "SalesOrderCompleted"
	EventTypeSalesOrderCancelled   = "SalesOrderCancelled"
	EventTypePurchaseOrderReceived = "PurchaseOrderReceived"
)

// SalesOrderEvent is published for sales order lifecycle changes
type SalesOrderEvent struct {
	shared.BaseDomainEvent
	OrderNumber string           `json:"order_number"`
	Status      SalesOrderStatus `json:"status"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// NewSalesOrderEvent creates a sales order event of the given type
func NewSalesOrderEvent(eventType string, o *SalesOrder) *SalesOrderEvent {
	return &SalesOrderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeSalesOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
	}
}

// PurchaseOrderReceivedEvent is published when supplier goods arrive
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	PONumber    string          `json:"po_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderReceivedEvent creates the received event
func NewPurchaseOrderReceivedEvent(o *PurchaseOrder) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, o.ID),
		PONumber:        o.PONumber,
		TotalAmount:     o.TotalAmount,
	}
}
